package api

import (
	"net/http"
	"time"

	limits "github.com/gin-contrib/size"
	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"

	"github.com/stafflane/backoffice-backend/usecases"
)

func timeoutMiddleware(duration time.Duration) gin.HandlerFunc {
	return timeout.New(
		timeout.WithTimeout(duration),
		timeout.WithHandler(func(c *gin.Context) {
			c.Next()
		}),
		timeout.WithResponse(func(c *gin.Context) {
			c.String(http.StatusRequestTimeout, "timeout")
		}),
	)
}

func addRoutes(r *gin.Engine, conf Configuration, uc usecases.Usecases) {
	r.GET("/liveness", handleLivenessProbe(uc))
	r.GET("/version", handleVersion(uc))

	r.POST("/imports/:entity_type",
		limits.RequestSizeLimiter(conf.MaxFileSize),
		handleUploadImportFile(uc))

	r.GET("/import-sessions/:session_id", handleGetImportSession(uc))
	r.POST("/import-sessions/:session_id/mapping", handleSaveImportMapping(uc))
	r.POST("/import-sessions/:session_id/execute",
		timeoutMiddleware(conf.ExecuteTimeout),
		handleExecuteImport(uc))
}

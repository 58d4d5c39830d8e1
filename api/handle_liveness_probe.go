package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stafflane/backoffice-backend/usecases"
)

func handleLivenessProbe(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usecase := uc.NewLivenessUsecase()
		if err := usecase.Liveness(ctx); presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func handleVersion(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		usecase := uc.NewVersionUsecase()
		c.JSON(http.StatusOK, gin.H{"version": usecase.ApiVersion})
	}
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stafflane/backoffice-backend/dto"
	"github.com/stafflane/backoffice-backend/usecases"
)

type importSessionUriInput struct {
	SessionId string `uri:"session_id" binding:"required,uuid"`
}

func handleUploadImportFile(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.APIErrorResponse{Message: "missing multipart field 'file'"})
			return
		}
		file, err := fileHeader.Open()
		if presentError(ctx, c, err) {
			return
		}
		defer file.Close()

		usecase := uc.NewImportUsecase()
		result, err := usecase.Upload(ctx,
			c.Param("entity_type"),
			fileHeader.Filename,
			file,
			fileHeader.Header.Get("Content-Type"),
		)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"session": dto.AdaptImportSessionDto(result.Session),
			"sample":  dto.AdaptColumnSampleDto(result.Sample),
		})
	}
}

func handleSaveImportMapping(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var uriInput importSessionUriInput
		if err := c.ShouldBindUri(&uriInput); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		var body dto.SaveMappingBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		usecase := uc.NewImportUsecase()
		session, err := usecase.SaveMapping(ctx, uriInput.SessionId, dto.AdaptFieldMapping(body))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"session": dto.AdaptImportSessionDto(session)})
	}
}

func handleExecuteImport(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var uriInput importSessionUriInput
		if err := c.ShouldBindUri(&uriInput); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		var body dto.ExecuteBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		usecase := uc.NewImportUsecase()
		summary, err := usecase.Execute(ctx, uriInput.SessionId, dto.AdaptExecutionOptions(body))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"summary": dto.AdaptImportSummaryDto(summary)})
	}
}

func handleGetImportSession(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var uriInput importSessionUriInput
		if err := c.ShouldBindUri(&uriInput); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		usecase := uc.NewImportUsecase()
		session, err := usecase.GetImportSession(ctx, uriInput.SessionId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"session": dto.AdaptImportSessionDto(session)})
	}
}

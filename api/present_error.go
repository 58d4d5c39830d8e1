package api

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/stafflane/backoffice-backend/dto"
	"github.com/stafflane/backoffice-backend/models"
	"github.com/stafflane/backoffice-backend/utils"
)

// presentError translates a usecase error to the matching http status.
// Returns true when the error was presented so the handler can stop.
func presentError(ctx context.Context, c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var invalidMapping models.InvalidMappingError
	if errors.As(err, &invalidMapping) {
		c.JSON(http.StatusBadRequest, dto.APIErrorResponse{
			Message:   invalidMapping.Error(),
			ErrorCode: dto.InvalidMapping,
			FieldKeys: invalidMapping.FieldKeys,
		})
		return true
	}

	switch {
	case errors.Is(err, models.BadParameterError):
		c.JSON(http.StatusBadRequest, dto.APIErrorResponse{Message: err.Error()})
	case errors.Is(err, models.UnAuthorizedError):
		c.JSON(http.StatusUnauthorized, dto.APIErrorResponse{Message: err.Error()})
	case errors.Is(err, models.ForbiddenError):
		c.JSON(http.StatusForbidden, dto.APIErrorResponse{Message: err.Error()})
	case errors.Is(err, models.NotFoundError):
		c.JSON(http.StatusNotFound, dto.APIErrorResponse{Message: err.Error()})
	case errors.Is(err, models.ConflictError):
		c.JSON(http.StatusConflict, dto.APIErrorResponse{Message: err.Error()})
	default:
		utils.LogAndReportSentryError(ctx, err)
		c.JSON(http.StatusInternalServerError, dto.APIErrorResponse{Message: "an unexpected error occurred"})
	}
	return true
}

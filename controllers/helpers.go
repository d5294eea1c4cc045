package controllers

import (
	"errors"
	"net/http"

	"jewelry-backend/apperrors"
	"jewelry-backend/logger"

	"github.com/gin-gonic/gin"
)

// respondError maps application errors onto the {success:false, message}
// envelope; anything unrecognized becomes a logged 500.
func respondError(ctx *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		if appErr.Code >= http.StatusInternalServerError {
			logger.Error(ctx, "Request failed", appErr.Err)
		}
		ctx.JSON(appErr.Code, gin.H{"success": false, "message": appErr.Message})
		return
	}
	logger.Error(ctx, "Unexpected error", err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
}

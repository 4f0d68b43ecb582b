package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"caption-studio-server/pkg/logger"
	"caption-studio-server/pkg/styles"
	"caption-studio-server/pkg/timeline"
	"caption-studio-server/services"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrExportJobNotFound),
		errors.Is(err, timeline.ErrUnknownSegment),
		errors.Is(err, timeline.ErrUnknownAsset),
		errors.Is(err, styles.ErrUnknownStyle):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUploadInProgress):
		return http.StatusConflict
	case errors.Is(err, timeline.ErrUnknownField),
		errors.Is(err, timeline.ErrInvalidBound),
		errors.Is(err, timeline.ErrInvalidValue),
		errors.Is(err, styles.ErrInvalidValue),
		errors.Is(err, styles.ErrUnknownField),
		errors.Is(err, services.ErrInvalidExportSettings),
		errors.Is(err, services.ErrUnsupportedFormat),
		errors.Is(err, services.ErrInvalidDocument),
		errors.Is(err, services.ErrEmptyStyleUpdate),
		errors.Is(err, services.ErrInvalidStageRect),
		errors.Is(err, services.ErrUnsupportedMedia),
		errors.Is(err, services.ErrEmptyUpload),
		errors.Is(err, services.ErrUnsupportedImage):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respondError(ctx *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Errorf("Request %s %s failed: %v", ctx.Request.Method, ctx.FullPath(), err)
		ctx.JSON(status, gin.H{
			"error": "Internal server error",
		})
		return
	}
	ctx.JSON(status, gin.H{
		"error": err.Error(),
	})
}

func badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request data",
		"details": err.Error(),
	})
}

func sessionID(ctx *gin.Context) string {
	return ctx.Param("session_id")
}

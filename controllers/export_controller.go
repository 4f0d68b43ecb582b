package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caption-studio-server/models"
	"caption-studio-server/services"
)

type ExportController struct {
	exports *services.ExportService
}

func NewExportController(exports *services.ExportService) *ExportController {
	return &ExportController{exports: exports}
}

// @Summary Create export
// @Description Resolve the overlay for every frame and queue it for encoding
// @Tags exports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Param export body models.ExportJobCreateRequest false "Export settings"
// @Success 202 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/sessions/{session_id}/exports [post]
func (c *ExportController) CreateExport(ctx *gin.Context) {
	var req models.ExportJobCreateRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequest(ctx, err)
			return
		}
	}

	job, err := c.exports.CreateExport(ctx.Request.Context(), sessionID(ctx), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusAccepted, gin.H{
		"message": "Export queued",
		"job":     job,
	})
}

// @Summary List exports
// @Tags exports
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/sessions/{session_id}/exports [get]
func (c *ExportController) ListExports(ctx *gin.Context) {
	jobs, err := c.exports.ListJobs(ctx.Request.Context(), sessionID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"jobs":  jobs,
		"total": len(jobs),
	})
}

// @Summary Get export
// @Tags exports
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Param job_id path string true "Job ID"
// @Success 200 {object} models.ExportJob
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/sessions/{session_id}/exports/{job_id} [get]
func (c *ExportController) GetExport(ctx *gin.Context) {
	job, err := c.exports.GetJob(ctx.Request.Context(), sessionID(ctx), ctx.Param("job_id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, job)
}

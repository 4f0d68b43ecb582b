package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caption-studio-server/models"
	"caption-studio-server/pkg/styles"
	"caption-studio-server/services"
)

type StyleController struct {
	editor *services.EditorService
}

func NewStyleController(editor *services.EditorService) *StyleController {
	return &StyleController{editor: editor}
}

type updateStyleRequest struct {
	Changes []services.StyleFieldChange `json:"changes" binding:"required,min=1,dive"`
}

type activeStyleRequest struct {
	Style models.CaptionStyle `json:"style" binding:"required"`
}

// @Summary List caption styles
// @Description Current config of every style plus the active one
// @Tags styles
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/sessions/{session_id}/styles [get]
func (c *StyleController) ListStyles(ctx *gin.Context) {
	configs, active, err := c.editor.ListStyles(sessionID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"styles": configs,
		"active": active,
	})
}

// @Summary Get caption style
// @Tags styles
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Param style path string true "Style ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/sessions/{session_id}/styles/{style} [get]
func (c *StyleController) GetStyle(ctx *gin.Context) {
	id := models.CaptionStyle(ctx.Param("style"))
	cfg, err := c.editor.GetStyle(sessionID(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	c.respondStyle(ctx, id, cfg)
}

// @Summary Update caption style
// @Description Apply field edits to one style; all edits apply or none do
// @Tags styles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Param style path string true "Style ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/sessions/{session_id}/styles/{style} [patch]
func (c *StyleController) UpdateStyle(ctx *gin.Context) {
	var req updateStyleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	id := models.CaptionStyle(ctx.Param("style"))
	cfg, err := c.editor.UpdateStyle(sessionID(ctx), id, req.Changes)
	if err != nil {
		respondError(ctx, err)
		return
	}
	c.respondStyle(ctx, id, cfg)
}

// @Summary Reset caption style
// @Tags styles
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Param style path string true "Style ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/sessions/{session_id}/styles/{style}/reset [post]
func (c *StyleController) ResetStyle(ctx *gin.Context) {
	id := models.CaptionStyle(ctx.Param("style"))
	cfg, err := c.editor.ResetStyle(sessionID(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	c.respondStyle(ctx, id, cfg)
}

// @Summary Select active caption style
// @Tags styles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/sessions/{session_id}/styles/active [put]
func (c *StyleController) SetActive(ctx *gin.Context) {
	var req activeStyleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	cfg, err := c.editor.SetActiveStyle(sessionID(ctx), req.Style)
	if err != nil {
		respondError(ctx, err)
		return
	}
	c.respondStyle(ctx, req.Style, cfg)
}

func (c *StyleController) respondStyle(ctx *gin.Context, id models.CaptionStyle, cfg models.StyleConfig) {
	ctx.JSON(http.StatusOK, gin.H{
		"style":      id,
		"config":     cfg,
		"decoration": styles.DecorationFor(id),
	})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caption-studio-server/pkg/timeline"
	"caption-studio-server/services"
)

type CaptionController struct {
	editor *services.EditorService
}

func NewCaptionController(editor *services.EditorService) *CaptionController {
	return &CaptionController{editor: editor}
}

type addCaptionRequest struct {
	Text string `json:"text"`
}

type importScriptRequest struct {
	Script string `json:"script"`
}

type captionTextRequest struct {
	Text string `json:"text"`
}

type retimeRequest struct {
	Bound string  `json:"bound" binding:"required"`
	Value float64 `json:"value"`
}

type adjustRequest struct {
	Bound string  `json:"bound" binding:"required"`
	Delta float64 `json:"delta"`
}

type syncRequest struct {
	Bound string `json:"bound" binding:"required"`
}

// @Summary List captions
// @Tags captions
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/sessions/{session_id}/captions [get]
func (c *CaptionController) ListCaptions(ctx *gin.Context) {
	captions, err := c.editor.ListCaptions(sessionID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"captions": captions,
		"total":    len(captions),
	})
}

// @Summary Add caption
// @Description Append a two second caption after the playhead or the last caption
// @Tags captions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Success 201 {object} map[string]interface{}
// @Router /api/v1/sessions/{session_id}/captions [post]
func (c *CaptionController) AddCaption(ctx *gin.Context) {
	var req addCaptionRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequest(ctx, err)
			return
		}
	}
	seg, err := c.editor.AddCaption(sessionID(ctx), req.Text)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"caption": seg,
	})
}

// @Summary Import script
// @Description Replace all captions with one caption per non-blank line
// @Tags captions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/sessions/{session_id}/captions/import [post]
func (c *CaptionController) ImportScript(ctx *gin.Context) {
	var req importScriptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	captions, err := c.editor.ImportScript(sessionID(ctx), req.Script)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"captions": captions,
		"total":    len(captions),
	})
}

// @Summary Update caption text
// @Tags captions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Param id path string true "Caption ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/sessions/{session_id}/captions/{id}/text [patch]
func (c *CaptionController) UpdateText(ctx *gin.Context) {
	var req captionTextRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	seg, err := c.editor.UpdateCaptionText(sessionID(ctx), ctx.Param("id"), req.Text)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"caption": seg,
	})
}

// @Summary Retime segment
// @Description Set the start or end of a caption or asset; the playhead follows
// @Tags captions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Param id path string true "Segment ID"
// @Success 200 {object} services.Bounds
// @Router /api/v1/sessions/{session_id}/captions/{id}/retime [post]
func (c *CaptionController) Retime(ctx *gin.Context) {
	var req retimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	bound, err := timeline.ParseBound(req.Bound)
	if err != nil {
		respondError(ctx, err)
		return
	}
	c.respondBounds(ctx)(c.editor.Retime(sessionID(ctx), ctx.Param("id"), bound, req.Value))
}

// @Summary Nudge segment bound
// @Tags captions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Param id path string true "Segment ID"
// @Success 200 {object} services.Bounds
// @Router /api/v1/sessions/{session_id}/captions/{id}/adjust [post]
func (c *CaptionController) Adjust(ctx *gin.Context) {
	var req adjustRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	bound, err := timeline.ParseBound(req.Bound)
	if err != nil {
		respondError(ctx, err)
		return
	}
	c.respondBounds(ctx)(c.editor.Adjust(sessionID(ctx), ctx.Param("id"), bound, req.Delta))
}

// @Summary Snap segment bound to playhead
// @Tags captions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Param id path string true "Segment ID"
// @Success 200 {object} services.Bounds
// @Router /api/v1/sessions/{session_id}/captions/{id}/sync [post]
func (c *CaptionController) Sync(ctx *gin.Context) {
	var req syncRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	bound, err := timeline.ParseBound(req.Bound)
	if err != nil {
		respondError(ctx, err)
		return
	}
	c.respondBounds(ctx)(c.editor.Sync(sessionID(ctx), ctx.Param("id"), bound))
}

func (c *CaptionController) respondBounds(ctx *gin.Context) func(services.Bounds, error) {
	return func(b services.Bounds, err error) {
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, b)
	}
}

// @Summary Delete caption
// @Tags captions
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Param id path string true "Caption ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/sessions/{session_id}/captions/{id} [delete]
func (c *CaptionController) DeleteCaption(ctx *gin.Context) {
	if err := c.editor.RemoveCaption(sessionID(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Caption deleted",
	})
}

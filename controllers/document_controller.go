package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"caption-studio-server/services"
)

// maxDocumentBytes bounds a document upload; assets are embedded as data URLs.
const maxDocumentBytes = 64 << 20

type DocumentController struct {
	editor *services.EditorService
}

func NewDocumentController(editor *services.EditorService) *DocumentController {
	return &DocumentController{editor: editor}
}

// @Summary Export document
// @Description Serialize captions, assets and styles as json or yaml
// @Tags document
// @Produce json
// @Produce application/yaml
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Param format query string false "json or yaml"
// @Success 200 {object} models.Document
// @Router /api/v1/sessions/{session_id}/document [get]
func (c *DocumentController) GetDocument(ctx *gin.Context) {
	data, contentType, err := c.editor.EncodeDocument(sessionID(ctx), ctx.DefaultQuery("format", "json"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, contentType, data)
}

// @Summary Load document
// @Description Replace the session with a serialized document
// @Tags document
// @Accept json
// @Accept application/yaml
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Param format query string false "json or yaml; defaults to the request content type"
// @Success 200 {object} models.Document
// @Router /api/v1/sessions/{session_id}/document [put]
func (c *DocumentController) PutDocument(ctx *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxDocumentBytes))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read document",
		})
		return
	}

	format := ctx.Query("format")
	if format == "" {
		format = "json"
		if strings.Contains(ctx.ContentType(), "yaml") {
			format = "yaml"
		}
	}

	doc, err := c.editor.LoadDocument(sessionID(ctx), format, data)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, doc)
}

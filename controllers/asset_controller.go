package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"caption-studio-server/models"
	"caption-studio-server/services"
)

type AssetController struct {
	editor         *services.EditorService
	assets         *services.AssetService
	maxUploadBytes int64
}

func NewAssetController(editor *services.EditorService, assets *services.AssetService, maxUploadBytes int64) *AssetController {
	return &AssetController{
		editor:         editor,
		assets:         assets,
		maxUploadBytes: maxUploadBytes,
	}
}

type updateAssetRequest struct {
	Changes []services.AssetFieldChange `json:"changes" binding:"required,min=1,dive"`
}

// moveAssetRequest takes either stage percentages or a pointer position
// together with the stage rectangle.
type moveAssetRequest struct {
	X       *float64            `json:"x"`
	Y       *float64            `json:"y"`
	ClientX float64             `json:"client_x"`
	ClientY float64             `json:"client_y"`
	Stage   *services.StageRect `json:"stage"`
}

// @Summary List assets
// @Tags assets
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/sessions/{session_id}/assets [get]
func (c *AssetController) ListAssets(ctx *gin.Context) {
	assets, err := c.editor.ListAssets(sessionID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"assets": assets,
		"total":  len(assets),
	})
}

// @Summary Upload asset
// @Description Upload an image or video; images get their background removed when possible
// @Tags assets
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Param file formData file true "Image or video file"
// @Success 201 {object} services.UploadResult
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/sessions/{session_id}/assets/upload [post]
func (c *AssetController) UploadAsset(ctx *gin.Context) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxUploadBytes)

	header, err := ctx.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "File is too large",
			})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "File is required",
		})
		return
	}

	file, err := header.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read uploaded file",
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read uploaded file",
		})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	result, err := c.assets.Upload(ctx.Request.Context(), sessionID(ctx), services.Upload{
		Filename: header.Filename,
		MIMEType: contentType,
		Data:     data,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, result)
}

// @Summary Update asset
// @Description Apply field edits to an asset; all edits apply or none do
// @Tags assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Param id path string true "Asset ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/sessions/{session_id}/assets/{id} [patch]
func (c *AssetController) UpdateAsset(ctx *gin.Context) {
	var req updateAssetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	asset, err := c.editor.UpdateAsset(sessionID(ctx), ctx.Param("id"), req.Changes)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"asset": asset,
	})
}

// @Summary Move asset
// @Tags assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Param id path string true "Asset ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/sessions/{session_id}/assets/{id}/move [post]
func (c *AssetController) MoveAsset(ctx *gin.Context) {
	var req moveAssetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	sid, id := sessionID(ctx), ctx.Param("id")
	var (
		asset models.AssetSegment
		err   error
	)
	switch {
	case req.Stage != nil:
		asset, err = c.editor.DragAsset(sid, id, req.ClientX, req.ClientY, *req.Stage)
	case req.X != nil && req.Y != nil:
		asset, err = c.editor.MoveAsset(sid, id, *req.X, *req.Y)
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Either x and y or a stage rect is required",
		})
		return
	}
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"asset": asset,
	})
}

// @Summary Delete asset
// @Tags assets
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Param id path string true "Asset ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/sessions/{session_id}/assets/{id} [delete]
func (c *AssetController) DeleteAsset(ctx *gin.Context) {
	if err := c.editor.RemoveAsset(sessionID(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Asset deleted",
	})
}

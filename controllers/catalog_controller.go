package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"caption-studio-server/models"
	"caption-studio-server/pkg/styles"
)

type CatalogController struct {
	version string
}

func NewCatalogController(version string) *CatalogController {
	return &CatalogController{version: version}
}

type styleEntry struct {
	ID         models.CaptionStyle `json:"id"`
	Defaults   models.StyleConfig  `json:"defaults"`
	Decoration styles.Decoration   `json:"decoration"`
}

// @Summary Editor catalog
// @Description Styles with their defaults, animation presets, fonts and export options
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/catalog [get]
func (c *CatalogController) GetCatalog(ctx *gin.Context) {
	entries := make([]styleEntry, 0, len(models.CaptionStyles))
	for _, id := range models.CaptionStyles {
		def, err := styles.DefaultConfig(id)
		if err != nil {
			respondError(ctx, err)
			return
		}
		entries = append(entries, styleEntry{
			ID:         id,
			Defaults:   def,
			Decoration: styles.DecorationFor(id),
		})
	}

	looping := make([]models.CaptionAnimation, 0, 2)
	for _, a := range models.CaptionAnimations {
		if a.IsLooping() {
			looping = append(looping, a)
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"styles":             entries,
		"animations":         models.CaptionAnimations,
		"looping_animations": looping,
		"fonts":              models.FontCatalog,
		"export": gin.H{
			"resolutions": models.ExportResolutions,
			"formats":     models.ExportFormats,
			"qualities":   models.ExportQualities,
			"frame_rates": models.ExportFrameRates,
			"defaults":    models.DefaultExportSettings(),
		},
	})
}

func (c *CatalogController) Health(ctx *gin.Context) {
	now := time.Now().UTC()
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": c.version,
		"timestamp": gin.H{
			"unix":      now.Unix(),
			"formatted": now.Format(time.RFC3339),
		},
	})
}

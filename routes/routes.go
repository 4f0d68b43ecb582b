package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caption-studio-server/controllers"
	"caption-studio-server/middleware"
	"caption-studio-server/pkg/auth"
	"caption-studio-server/services"
)

// Dependencies are the long-lived services the handlers share.
type Dependencies struct {
	Version        string
	Tokens         *auth.TokenManager
	Editor         *services.EditorService
	Assets         *services.AssetService
	Exports        *services.ExportService
	MaxUploadBytes int64
	UploadsPerMin  int
}

func SetupRoutes(r *gin.Engine, deps Dependencies) {
	sessionController := controllers.NewSessionController(deps.Editor, deps.Tokens)
	captionController := controllers.NewCaptionController(deps.Editor)
	assetController := controllers.NewAssetController(deps.Editor, deps.Assets, deps.MaxUploadBytes)
	styleController := controllers.NewStyleController(deps.Editor)
	playbackController := controllers.NewPlaybackController(deps.Editor)
	documentController := controllers.NewDocumentController(deps.Editor)
	exportController := controllers.NewExportController(deps.Exports)
	catalogController := controllers.NewCatalogController(deps.Version)

	r.GET("/health", catalogController.Health)
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Caption Studio Server API",
			"version": deps.Version,
			"status":  "running",
		})
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/catalog", catalogController.GetCatalog)
		v1.POST("/sessions", sessionController.CreateSession)

		session := v1.Group("/sessions/:session_id")
		session.Use(middleware.SessionRequired(deps.Tokens))
		{
			session.DELETE("", sessionController.DeleteSession)

			captions := session.Group("/captions")
			{
				captions.GET("", captionController.ListCaptions)
				captions.POST("", captionController.AddCaption)
				captions.POST("/import", captionController.ImportScript)
				captions.PATCH("/:id/text", captionController.UpdateText)
				captions.POST("/:id/retime", captionController.Retime)
				captions.POST("/:id/adjust", captionController.Adjust)
				captions.POST("/:id/sync", captionController.Sync)
				captions.DELETE("/:id", captionController.DeleteCaption)
			}

			assets := session.Group("/assets")
			{
				assets.GET("", assetController.ListAssets)
				assets.POST("/upload", middleware.UploadRateLimit(deps.UploadsPerMin), assetController.UploadAsset)
				assets.PATCH("/:id", assetController.UpdateAsset)
				assets.POST("/:id/move", assetController.MoveAsset)
				assets.DELETE("/:id", assetController.DeleteAsset)
			}

			styles := session.Group("/styles")
			{
				styles.GET("", styleController.ListStyles)
				styles.PUT("/active", styleController.SetActive)
				styles.GET("/:style", styleController.GetStyle)
				styles.PATCH("/:style", styleController.UpdateStyle)
				styles.POST("/:style/reset", styleController.ResetStyle)
			}

			session.POST("/clock/seek", playbackController.Seek)
			session.GET("/frame", playbackController.Frame)
			session.GET("/ws", playbackController.Stream)

			session.GET("/document", documentController.GetDocument)
			session.PUT("/document", documentController.PutDocument)

			exports := session.Group("/exports")
			{
				exports.POST("", exportController.CreateExport)
				exports.GET("", exportController.ListExports)
				exports.GET("/:job_id", exportController.GetExport)
			}
		}
	}
}

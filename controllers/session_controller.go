package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caption-studio-server/pkg/auth"
	"caption-studio-server/pkg/logger"
	"caption-studio-server/services"
)

type SessionController struct {
	editor *services.EditorService
	tokens *auth.TokenManager
}

func NewSessionController(editor *services.EditorService, tokens *auth.TokenManager) *SessionController {
	return &SessionController{
		editor: editor,
		tokens: tokens,
	}
}

// @Summary Create editing session
// @Description Open a new editing session and return a token scoped to it
// @Tags sessions
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Router /api/v1/sessions [post]
func (c *SessionController) CreateSession(ctx *gin.Context) {
	sess := c.editor.CreateSession()

	token, expiresAt, err := c.tokens.GenerateToken(sess.ID)
	if err != nil {
		logger.Errorf("Failed to generate token: %v", err)
		_ = c.editor.DeleteSession(sess.ID)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate session token",
		})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"session_id": sess.ID,
		"token":      token,
		"expires_at": expiresAt,
		"created_at": sess.CreatedAt,
	})
}

// @Summary Close editing session
// @Tags sessions
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/sessions/{session_id} [delete]
func (c *SessionController) DeleteSession(ctx *gin.Context) {
	if err := c.editor.DeleteSession(sessionID(ctx)); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Session closed",
	})
}

package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"caption-studio-server/pkg/compositor"
	"caption-studio-server/pkg/logger"
	"caption-studio-server/services"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

type PlaybackController struct {
	editor   *services.EditorService
	upgrader websocket.Upgrader
}

func NewPlaybackController(editor *services.EditorService) *PlaybackController {
	return &PlaybackController{
		editor: editor,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Origins are enforced by the CORS middleware and the session token.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

type seekRequest struct {
	Time float64 `json:"time"`
}

// playbackMessage is sent by the client on every clock tick.
type playbackMessage struct {
	Type string   `json:"type"`
	Time *float64 `json:"time"`
}

// @Summary Seek playhead
// @Tags playback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/sessions/{session_id}/clock/seek [post]
func (c *PlaybackController) Seek(ctx *gin.Context) {
	var req seekRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	t, err := c.editor.Seek(sessionID(ctx), req.Time)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"time": t,
	})
}

// @Summary Resolve frame
// @Description Resolve the overlay visible at t, or at the playhead when t is omitted
// @Tags playback
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Param t query number false "Time in seconds"
// @Success 200 {object} compositor.Frame
// @Router /api/v1/sessions/{session_id}/frame [get]
func (c *PlaybackController) Frame(ctx *gin.Context) {
	var at *float64
	if raw := ctx.Query("t"); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error": "t must be a number of seconds",
			})
			return
		}
		at = &t
	}
	frame, err := c.editor.Frame(sessionID(ctx), at)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, frame)
}

// wsRenderer pushes resolved frames to a websocket client.
type wsRenderer struct {
	conn *websocket.Conn
}

func (r *wsRenderer) Render(_ context.Context, frame compositor.Frame) error {
	if err := r.conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
		return err
	}
	return r.conn.WriteJSON(frame)
}

// @Summary Playback channel
// @Description Websocket: send {"type":"tick","time":t} and receive the resolved frame
// @Tags playback
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Router /api/v1/sessions/{session_id}/ws [get]
func (c *PlaybackController) Stream(ctx *gin.Context) {
	sid := sessionID(ctx)
	if _, err := c.editor.GetSession(sid); err != nil {
		respondError(ctx, err)
		return
	}

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		logger.WithSession(sid).Warnf("Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log := logger.WithSession(sid)
	log.Debug("Playback channel opened")

	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	reqCtx, cancel := context.WithCancel(ctx.Request.Context())
	defer cancel()

	renderer := &wsRenderer{conn: conn}
	msgs := make(chan playbackMessage)
	go func() {
		defer cancel()
		for {
			var msg playbackMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Warnf("Playback channel read failed: %v", err)
				}
				return
			}
			select {
			case msgs <- msg:
			case <-reqCtx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-reqCtx.Done():
			log.Debug("Playback channel closed")
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		case msg := <-msgs:
			if msg.Type != "tick" && msg.Type != "seek" {
				continue
			}
			err := c.editor.RenderAt(reqCtx, sid, msg.Time, renderer)
			if errors.Is(err, services.ErrSessionNotFound) {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"),
					time.Now().Add(wsWriteWait))
				return
			}
			if err != nil {
				log.Warnf("Playback frame failed: %v", err)
				return
			}
		}
	}
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
	"gopkg.in/yaml.v3"

	"caption-studio-server/models"
	"caption-studio-server/pkg/compositor"
	"caption-studio-server/pkg/logger"
	"caption-studio-server/pkg/styles"
	"caption-studio-server/pkg/timeline"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrInvalidDocument   = errors.New("invalid document")
	ErrEmptyStyleUpdate  = errors.New("no style fields given")
	ErrInvalidStageRect  = errors.New("stage rect must have a positive size")
)

// Session is one editing workspace. Every collaborator is owned by the
// session and never shared with another one.
type Session struct {
	ID        string
	CreatedAt time.Time

	Engine  *timeline.Engine
	Styles  *styles.Registry
	Clock   *timeline.ManualClock
	Tracker *compositor.Tracker

	uploads *semaphore.Weighted
}

func newSession() *Session {
	clock := timeline.NewManualClock()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Engine:    timeline.NewEngine(clock),
		Styles:    styles.NewRegistry(),
		Clock:     clock,
		Tracker:   compositor.NewTracker(),
		uploads:   semaphore.NewWeighted(1),
	}
}

// Scene captures the current segments and active style for resolution.
func (s *Session) Scene() compositor.Scene {
	style, cfg := s.Styles.ActiveConfig()
	return compositor.Scene{
		Snapshot:    s.Engine.Snapshot(),
		Style:       style,
		StyleConfig: cfg,
	}
}

func (s *Session) log() *logrus.Entry {
	return logger.WithSession(s.ID)
}

// StyleFieldChange is the wire form of a single style edit.
type StyleFieldChange struct {
	Field string          `json:"field" binding:"required"`
	Value json.RawMessage `json:"value" binding:"required"`
}

// AssetFieldChange is the wire form of a single asset edit.
type AssetFieldChange struct {
	Field string          `json:"field" binding:"required"`
	Value json.RawMessage `json:"value" binding:"required"`
}

// StageRect is the on-screen rectangle of the preview stage.
type StageRect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bounds is the result of a retime: the segment's new interval and the
// position the playhead was moved to.
type Bounds struct {
	ID       string  `json:"id"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Playhead float64 `json:"playhead"`
}

type EditorService struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewEditorService() *EditorService {
	return &EditorService{sessions: make(map[string]*Session)}
}

func (s *EditorService) CreateSession() *Session {
	sess := newSession()

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	sess.log().Info("Editing session created")
	return sess
}

func (s *EditorService) GetSession(sessionID string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return sess, nil
}

func (s *EditorService) DeleteSession(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	delete(s.sessions, sessionID)
	logger.WithSession(sessionID).Info("Editing session closed")
	return nil
}

func (s *EditorService) ListCaptions(sessionID string) ([]models.CaptionSegment, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.Captions(), nil
}

func (s *EditorService) AddCaption(sessionID, text string) (models.CaptionSegment, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return models.CaptionSegment{}, err
	}
	seg := sess.Engine.AddCaption(text)
	sess.log().WithField("segment_id", seg.ID).Debug("Caption added")
	return seg, nil
}

func (s *EditorService) ImportScript(sessionID, raw string) ([]models.CaptionSegment, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	segs := sess.Engine.ImportScript(raw)
	sess.log().Infof("Script imported: %d captions", len(segs))
	return segs, nil
}

func (s *EditorService) UpdateCaptionText(sessionID, segmentID, text string) (models.CaptionSegment, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return models.CaptionSegment{}, err
	}
	return sess.Engine.UpdateCaptionText(segmentID, text)
}

func (s *EditorService) RemoveCaption(sessionID, segmentID string) error {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return err
	}
	if err := sess.Engine.RemoveCaption(segmentID); err != nil {
		return err
	}
	sess.log().WithField("segment_id", segmentID).Debug("Caption removed")
	return nil
}

// Retime sets one bound of a caption or asset to value.
func (s *EditorService) Retime(sessionID, segmentID string, which timeline.Bound, value float64) (Bounds, error) {
	return s.retime(sessionID, segmentID, func(e *timeline.Engine) (float64, float64, error) {
		return e.Retime(segmentID, which, value)
	})
}

// Adjust nudges one bound by delta seconds.
func (s *EditorService) Adjust(sessionID, segmentID string, which timeline.Bound, delta float64) (Bounds, error) {
	return s.retime(sessionID, segmentID, func(e *timeline.Engine) (float64, float64, error) {
		return e.AdjustTime(segmentID, which, delta)
	})
}

// Sync snaps one bound to the playhead.
func (s *EditorService) Sync(sessionID, segmentID string, which timeline.Bound) (Bounds, error) {
	return s.retime(sessionID, segmentID, func(e *timeline.Engine) (float64, float64, error) {
		return e.SyncToPlayhead(segmentID, which)
	})
}

func (s *EditorService) retime(sessionID, segmentID string, op func(*timeline.Engine) (float64, float64, error)) (Bounds, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return Bounds{}, err
	}
	start, end, err := op(sess.Engine)
	if err != nil {
		return Bounds{}, err
	}
	return Bounds{
		ID:       segmentID,
		Start:    start,
		End:      end,
		Playhead: sess.Clock.CurrentTime(),
	}, nil
}

func (s *EditorService) ListAssets(sessionID string) ([]models.AssetSegment, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.Assets(), nil
}

// UpdateAsset applies every change or none of them.
func (s *EditorService) UpdateAsset(sessionID, assetID string, changes []AssetFieldChange) (models.AssetSegment, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return models.AssetSegment{}, err
	}
	updates := make([]timeline.AssetUpdate, 0, len(changes))
	for _, ch := range changes {
		u, err := timeline.ParseAssetUpdate(ch.Field, ch.Value)
		if err != nil {
			return models.AssetSegment{}, err
		}
		updates = append(updates, u)
	}
	return sess.Engine.UpdateAsset(assetID, updates...)
}

// MoveAsset places an asset at stage percentages.
func (s *EditorService) MoveAsset(sessionID, assetID string, x, y float64) (models.AssetSegment, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return models.AssetSegment{}, err
	}
	return sess.Engine.MoveAssetTo(assetID, x, y)
}

// DragAsset converts a pointer position inside rect into stage
// percentages and moves the asset there.
func (s *EditorService) DragAsset(sessionID, assetID string, clientX, clientY float64, rect StageRect) (models.AssetSegment, error) {
	x, y, err := PointerToStage(clientX, clientY, rect)
	if err != nil {
		return models.AssetSegment{}, err
	}
	return s.MoveAsset(sessionID, assetID, x, y)
}

// PointerToStage maps a pointer position to percentages of rect. The
// engine clamps the result into [0, 100].
func PointerToStage(clientX, clientY float64, rect StageRect) (float64, float64, error) {
	if rect.Width <= 0 || rect.Height <= 0 {
		return 0, 0, ErrInvalidStageRect
	}
	x := (clientX - rect.Left) / rect.Width * 100
	y := (clientY - rect.Top) / rect.Height * 100
	return x, y, nil
}

func (s *EditorService) RemoveAsset(sessionID, assetID string) error {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return err
	}
	if err := sess.Engine.RemoveAsset(assetID); err != nil {
		return err
	}
	sess.log().WithField("asset_id", assetID).Debug("Asset removed")
	return nil
}

func (s *EditorService) ListStyles(sessionID string) (map[models.CaptionStyle]models.StyleConfig, models.CaptionStyle, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return nil, "", err
	}
	return sess.Styles.All(), sess.Styles.Active(), nil
}

func (s *EditorService) GetStyle(sessionID string, id models.CaptionStyle) (models.StyleConfig, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return models.StyleConfig{}, err
	}
	return sess.Styles.Get(id)
}

// UpdateStyle applies every change or none of them.
func (s *EditorService) UpdateStyle(sessionID string, id models.CaptionStyle, changes []StyleFieldChange) (models.StyleConfig, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return models.StyleConfig{}, err
	}
	if len(changes) == 0 {
		return models.StyleConfig{}, ErrEmptyStyleUpdate
	}
	updates := make([]styles.FieldUpdate, 0, len(changes))
	for _, ch := range changes {
		u, err := styles.ParseFieldUpdate(ch.Field, ch.Value)
		if err != nil {
			return models.StyleConfig{}, err
		}
		updates = append(updates, u)
	}
	cfg, err := sess.Styles.Update(id, updates...)
	if err != nil {
		return models.StyleConfig{}, err
	}
	sess.log().WithField("style", id).Debugf("Style updated: %d fields", len(updates))
	return cfg, nil
}

func (s *EditorService) ResetStyle(sessionID string, id models.CaptionStyle) (models.StyleConfig, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return models.StyleConfig{}, err
	}
	return sess.Styles.Reset(id)
}

func (s *EditorService) SetActiveStyle(sessionID string, id models.CaptionStyle) (models.StyleConfig, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return models.StyleConfig{}, err
	}
	if err := sess.Styles.SetActive(id); err != nil {
		return models.StyleConfig{}, err
	}
	return sess.Styles.Get(id)
}

// Seek moves the session clock and returns the clamped position.
func (s *EditorService) Seek(sessionID string, t float64) (float64, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return 0, err
	}
	sess.Clock.Seek(t)
	return sess.Clock.CurrentTime(), nil
}

// Frame resolves the overlay visible at t, or at the clock when t is nil,
// and marks animation replays against the previous playback frame.
func (s *EditorService) Frame(sessionID string, t *float64) (compositor.Frame, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return compositor.Frame{}, err
	}
	at := sess.Clock.CurrentTime()
	if t != nil {
		sess.Clock.Seek(*t)
		at = sess.Clock.CurrentTime()
	}
	frame := compositor.Resolve(at, sess.Scene())
	sess.Tracker.Mark(&frame)
	return frame, nil
}

// RenderAt resolves the frame at t and hands it to r.
func (s *EditorService) RenderAt(ctx context.Context, sessionID string, t *float64, r compositor.Renderer) error {
	frame, err := s.Frame(sessionID, t)
	if err != nil {
		return err
	}
	return r.Render(ctx, frame)
}

// Document snapshots the whole session model.
func (s *EditorService) Document(sessionID string) (models.Document, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return models.Document{}, err
	}
	snap := sess.Engine.Snapshot()
	return models.Document{
		Version:     models.DocumentVersion,
		Captions:    snap.Captions,
		Assets:      snap.Assets,
		Styles:      sess.Styles.All(),
		ActiveStyle: sess.Styles.Active(),
	}, nil
}

// EncodeDocument serializes the session as json or yaml and returns the
// content type to serve it with.
func (s *EditorService) EncodeDocument(sessionID, format string) ([]byte, string, error) {
	doc, err := s.Document(sessionID)
	if err != nil {
		return nil, "", err
	}
	switch normalizeFormat(format) {
	case "json":
		data, err := json.MarshalIndent(doc, "", "  ")
		return data, "application/json", err
	case "yaml":
		data, err := yaml.Marshal(doc)
		return data, "application/yaml", err
	}
	return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// LoadDocument replaces the session model with a serialized document.
// Styles are validated before anything is replaced.
func (s *EditorService) LoadDocument(sessionID, format string, data []byte) (models.Document, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return models.Document{}, err
	}

	var doc models.Document
	switch normalizeFormat(format) {
	case "json":
		err = json.Unmarshal(data, &doc)
	case "yaml":
		err = yaml.Unmarshal(data, &doc)
	default:
		return models.Document{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if doc.Version > models.DocumentVersion {
		return models.Document{}, fmt.Errorf("%w: version %d is newer than %d", ErrInvalidDocument, doc.Version, models.DocumentVersion)
	}

	if err := timeline.ValidateAssets(doc.Assets); err != nil {
		return models.Document{}, err
	}
	if err := sess.Styles.Load(doc.Styles, doc.ActiveStyle); err != nil {
		return models.Document{}, err
	}
	if err := sess.Engine.Replace(doc.Captions, doc.Assets); err != nil {
		return models.Document{}, err
	}
	sess.Tracker.Reset()

	sess.log().Infof("Document loaded: %d captions, %d assets", len(doc.Captions), len(doc.Assets))
	return s.Document(sessionID)
}

func normalizeFormat(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	}
	return format
}

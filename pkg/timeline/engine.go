package timeline

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"

	"caption-studio-server/models"
)

var (
	ErrUnknownSegment = errors.New("unknown segment")
	ErrUnknownAsset   = errors.New("unknown asset")
	ErrUnknownField   = errors.New("unknown field")
	ErrInvalidBound   = errors.New("bound must be start or end")
	ErrInvalidValue   = errors.New("invalid field value")
)

// Bound selects which end of a segment interval an edit targets.
type Bound string

const (
	BoundStart Bound = "start"
	BoundEnd   Bound = "end"
)

func ParseBound(s string) (Bound, error) {
	switch Bound(s) {
	case BoundStart, BoundEnd:
		return Bound(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidBound, s)
}

// Snapshot is a consistent copy of both segment collections.
type Snapshot struct {
	Captions []models.CaptionSegment
	Assets   []models.AssetSegment
}

// ActiveCaption returns the first caption in stored order containing t.
func (s Snapshot) ActiveCaption(t float64) (models.CaptionSegment, bool) {
	for _, c := range s.Captions {
		if c.IsActive(t) {
			return c, true
		}
	}
	return models.CaptionSegment{}, false
}

// ActiveAssets returns every asset whose interval contains t, in stored order.
func (s Snapshot) ActiveAssets(t float64) []models.AssetSegment {
	var active []models.AssetSegment
	for _, a := range s.Assets {
		if a.IsActive(t) {
			active = append(active, a)
		}
	}
	return active
}

// Duration is the latest end time across all segments.
func (s Snapshot) Duration() float64 {
	var d float64
	for _, c := range s.Captions {
		d = math.Max(d, c.End)
	}
	for _, a := range s.Assets {
		d = math.Max(d, a.End)
	}
	return d
}

// Engine owns the caption and asset collections of one editing session.
// Every read and write goes through its lock, so a render read never
// observes a half-applied edit.
type Engine struct {
	mu       sync.RWMutex
	clock    Clock
	captions []models.CaptionSegment
	assets   []models.AssetSegment
	newID    func() string
}

func NewEngine(clock Clock) *Engine {
	if clock == nil {
		clock = NewManualClock()
	}
	return &Engine{
		clock: clock,
		newID: uuid.NewString,
	}
}

func (e *Engine) Clock() Clock {
	return e.clock
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Snapshot{
		Captions: append([]models.CaptionSegment(nil), e.captions...),
		Assets:   append([]models.AssetSegment(nil), e.assets...),
	}
}

func (e *Engine) Captions() []models.CaptionSegment {
	return e.Snapshot().Captions
}

func (e *Engine) Assets() []models.AssetSegment {
	return e.Snapshot().Assets
}

func (e *Engine) ActiveCaption(t float64) (models.CaptionSegment, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Snapshot{Captions: e.captions}.ActiveCaption(t)
}

func (e *Engine) ActiveAssets(t float64) []models.AssetSegment {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Snapshot{Assets: e.assets}.ActiveAssets(t)
}

// AddCaption appends a 2s caption starting at the later of the playhead
// and the end of the current last caption.
func (e *Engine) AddCaption(text string) models.CaptionSegment {
	if text == "" {
		text = models.DefaultCaptionText
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	start := e.clock.CurrentTime()
	if n := len(e.captions); n > 0 {
		start = math.Max(start, e.captions[n-1].End)
	}
	start = RoundTime(start)

	seg := models.CaptionSegment{
		ID:    e.newID(),
		Start: start,
		End:   RoundTime(start + models.DefaultCaptionDuration),
		Text:  text,
	}
	e.captions = append(e.captions, seg)
	return seg
}

// ImportScript replaces all captions with one 2s caption per non-blank
// line, laid back to back from zero. A script with no text leaves the
// captions untouched and returns them.
func (e *Engine) ImportScript(raw string) []models.CaptionSegment {
	lines := ParseScript(raw)
	if len(lines) == 0 {
		return e.Captions()
	}
	captions := make([]models.CaptionSegment, 0, len(lines))
	for i, line := range lines {
		start := float64(i) * models.DefaultCaptionDuration
		captions = append(captions, models.CaptionSegment{
			ID:    e.newID(),
			Start: RoundTime(start),
			End:   RoundTime(start + models.DefaultCaptionDuration),
			Text:  line,
		})
	}

	e.mu.Lock()
	e.captions = captions
	e.mu.Unlock()

	return append([]models.CaptionSegment(nil), captions...)
}

// Retime writes a rounded, non-negative bound in place and seeks the
// playback clock to it. An edit that would invert the interval swaps
// the two bounds instead.
func (e *Engine) Retime(id string, which Bound, value float64) (float64, float64, error) {
	return e.retime(id, which, func(float64) float64 { return value })
}

// AdjustTime nudges a bound by delta seconds.
func (e *Engine) AdjustTime(id string, which Bound, delta float64) (float64, float64, error) {
	if math.IsNaN(delta) {
		delta = 0
	}
	return e.retime(id, which, func(current float64) float64 { return current + delta })
}

// retime reads the current bound and writes next(current) in one
// critical section.
func (e *Engine) retime(id string, which Bound, next func(current float64) float64) (float64, float64, error) {
	e.mu.Lock()
	start, end, err := e.bounds(id)
	if err != nil {
		e.mu.Unlock()
		return 0, 0, err
	}
	var value float64
	switch which {
	case BoundStart:
		value = RoundTime(next(*start))
		*start = value
	case BoundEnd:
		value = RoundTime(next(*end))
		*end = value
	default:
		e.mu.Unlock()
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidBound, which)
	}
	if *end < *start {
		*start, *end = *end, *start
	}
	s, en := *start, *end
	e.mu.Unlock()

	e.clock.Seek(value)
	return s, en, nil
}

// SyncToPlayhead sets a bound to the current playback time.
func (e *Engine) SyncToPlayhead(id string, which Bound) (float64, float64, error) {
	return e.Retime(id, which, e.clock.CurrentTime())
}

func (e *Engine) UpdateCaptionText(id, text string) (models.CaptionSegment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.captions {
		if e.captions[i].ID == id {
			e.captions[i].Text = text
			return e.captions[i], nil
		}
	}
	return models.CaptionSegment{}, fmt.Errorf("%w: %s", ErrUnknownSegment, id)
}

func (e *Engine) RemoveCaption(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.captions {
		if e.captions[i].ID == id {
			e.captions = append(e.captions[:i:i], e.captions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownSegment, id)
}

// AddAsset normalizes and appends an asset, assigning an id when empty.
func (e *Engine) AddAsset(a models.AssetSegment) models.AssetSegment {
	if a.ID == "" {
		a.ID = "asset-" + e.newID()
	}
	a = normalizeAsset(a)

	e.mu.Lock()
	e.assets = append(e.assets, a)
	e.mu.Unlock()
	return a
}

func (e *Engine) UpdateAsset(id string, updates ...AssetUpdate) (models.AssetSegment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.assetIndex(id)
	if i < 0 {
		return models.AssetSegment{}, fmt.Errorf("%w: %s", ErrUnknownAsset, id)
	}
	for _, u := range updates {
		u.applyTo(&e.assets[i])
	}
	return e.assets[i], nil
}

// MoveAssetTo places an asset at stage percentages clamped to [0, 100].
func (e *Engine) MoveAssetTo(id string, x, y float64) (models.AssetSegment, error) {
	return e.UpdateAsset(id, SetAssetX(x), SetAssetY(y))
}

func (e *Engine) RemoveAsset(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.assetIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownAsset, id)
	}
	e.assets = append(e.assets[:i:i], e.assets[i+1:]...)
	return nil
}

// ValidateAssets rejects assets whose type or animation is not a known
// value. Empty values are allowed and take defaults.
func ValidateAssets(assets []models.AssetSegment) error {
	for _, a := range assets {
		if a.Type != "" && !a.Type.Valid() {
			return fmt.Errorf("%w: asset %s: type %q", ErrInvalidValue, a.ID, a.Type)
		}
		if a.Animation != "" && !a.Animation.Valid() {
			return fmt.Errorf("%w: asset %s: animation %q", ErrInvalidValue, a.ID, a.Animation)
		}
	}
	return nil
}

// Replace swaps in whole collections, e.g. when a document is loaded.
// Nothing changes when an asset fails ValidateAssets.
func (e *Engine) Replace(captions []models.CaptionSegment, assets []models.AssetSegment) error {
	if err := ValidateAssets(assets); err != nil {
		return err
	}
	cs := make([]models.CaptionSegment, 0, len(captions))
	for _, c := range captions {
		if c.ID == "" {
			c.ID = e.newID()
		}
		c.Start, c.End = orderedBounds(RoundTime(c.Start), RoundTime(c.End))
		cs = append(cs, c)
	}
	as := make([]models.AssetSegment, 0, len(assets))
	for _, a := range assets {
		if a.ID == "" {
			a.ID = "asset-" + e.newID()
		}
		as = append(as, normalizeAsset(a))
	}

	e.mu.Lock()
	e.captions = cs
	e.assets = as
	e.mu.Unlock()
	return nil
}

func (e *Engine) bounds(id string) (*float64, *float64, error) {
	for i := range e.captions {
		if e.captions[i].ID == id {
			return &e.captions[i].Start, &e.captions[i].End, nil
		}
	}
	if i := e.assetIndex(id); i >= 0 {
		return &e.assets[i].Start, &e.assets[i].End, nil
	}
	return nil, nil, fmt.Errorf("%w: %s", ErrUnknownSegment, id)
}

func (e *Engine) assetIndex(id string) int {
	for i := range e.assets {
		if e.assets[i].ID == id {
			return i
		}
	}
	return -1
}

func orderedBounds(start, end float64) (float64, float64) {
	if end < start {
		return end, start
	}
	return start, end
}

func normalizeAsset(a models.AssetSegment) models.AssetSegment {
	a.Start, a.End = orderedBounds(RoundTime(a.Start), RoundTime(a.End))
	if !a.Type.Valid() {
		a.Type = models.AssetTypeImage
	}
	if a.Scale == 0 {
		a.Scale = 1
	}
	if a.Perspective == 0 {
		a.Perspective = models.DefaultPerspective
	}
	if a.Animation == "" {
		a.Animation = models.AnimationNone
	}
	updates := []AssetUpdate{
		SetAssetX(a.X), SetAssetY(a.Y), SetAssetScale(a.Scale),
		SetAssetRotation(a.Rotation), SetAssetRotateX(a.RotateX),
		SetAssetRotateY(a.RotateY), SetAssetRotateZ(a.RotateZ),
		SetAssetPerspective(a.Perspective), SetAssetSkewX(a.SkewX),
		SetAssetSkewY(a.SkewY), SetAssetAnimation(a.Animation),
		SetAssetGlowIntensity(a.GlowIntensity),
	}
	for _, u := range updates {
		u.applyTo(&a)
	}
	return a
}

package styles

import (
	"errors"
	"fmt"
	"sync"

	"caption-studio-server/models"
)

var (
	ErrUnknownStyle = errors.New("unknown caption style")
	ErrUnknownField = errors.New("unknown style field")
	ErrInvalidValue = errors.New("invalid style value")
)

func unknownStyle(id models.CaptionStyle) error {
	return fmt.Errorf("%w: %q", ErrUnknownStyle, string(id))
}

// Registry holds the current config of every caption style plus the
// style the styling panel is editing. Edits stick per style.
type Registry struct {
	mu      sync.RWMutex
	configs map[models.CaptionStyle]models.StyleConfig
	active  models.CaptionStyle
}

func NewRegistry() *Registry {
	r := &Registry{
		configs: make(map[models.CaptionStyle]models.StyleConfig, len(defaultConfigs)),
		active:  models.StylePop,
	}
	for id, cfg := range defaultConfigs {
		r.configs[id] = cfg
	}
	return r
}

func (r *Registry) Get(id models.CaptionStyle) (models.StyleConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.configs[id]
	if !ok {
		return models.StyleConfig{}, unknownStyle(id)
	}
	return cfg, nil
}

// Update applies all updates or none of them.
func (r *Registry) Update(id models.CaptionStyle, updates ...FieldUpdate) (models.StyleConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg, ok := r.configs[id]
	if !ok {
		return models.StyleConfig{}, unknownStyle(id)
	}
	for _, u := range updates {
		if err := u.apply(&cfg); err != nil {
			return models.StyleConfig{}, err
		}
	}
	r.configs[id] = cfg
	return cfg, nil
}

func (r *Registry) Reset(id models.CaptionStyle) (models.StyleConfig, error) {
	def, err := DefaultConfig(id)
	if err != nil {
		return models.StyleConfig{}, err
	}

	r.mu.Lock()
	r.configs[id] = def
	r.mu.Unlock()
	return def, nil
}

func (r *Registry) SetActive(id models.CaptionStyle) error {
	if !id.Valid() {
		return unknownStyle(id)
	}
	r.mu.Lock()
	r.active = id
	r.mu.Unlock()
	return nil
}

func (r *Registry) Active() models.CaptionStyle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// ActiveConfig returns the active style id together with its config.
func (r *Registry) ActiveConfig() (models.CaptionStyle, models.StyleConfig) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active, r.configs[r.active]
}

func (r *Registry) All() map[models.CaptionStyle]models.StyleConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[models.CaptionStyle]models.StyleConfig, len(r.configs))
	for id, cfg := range r.configs {
		out[id] = cfg
	}
	return out
}

// Load replaces current configs from a saved document. Each config goes
// through the same clamps and checks as Update; styles missing from
// configs are reset to their defaults. Nothing changes on error.
func (r *Registry) Load(configs map[models.CaptionStyle]models.StyleConfig, active models.CaptionStyle) error {
	loaded := make(map[models.CaptionStyle]models.StyleConfig, len(configs))
	for id, cfg := range configs {
		if !id.Valid() {
			return unknownStyle(id)
		}
		cfg, err := normalizeLoaded(id, cfg)
		if err != nil {
			return fmt.Errorf("style %s: %w", id, err)
		}
		loaded[id] = cfg
	}
	if active == "" {
		active = models.StylePop
	}
	if !active.Valid() {
		return unknownStyle(active)
	}

	next := make(map[models.CaptionStyle]models.StyleConfig, len(defaultConfigs))
	for id, def := range defaultConfigs {
		if cfg, ok := loaded[id]; ok {
			next[id] = cfg
			continue
		}
		next[id] = def
	}

	r.mu.Lock()
	r.configs = next
	r.active = active
	r.mu.Unlock()
	return nil
}

// normalizeLoaded fills empty fields from the style's default and applies
// every field update so loaded values obey the same limits as edits.
func normalizeLoaded(id models.CaptionStyle, cfg models.StyleConfig) (models.StyleConfig, error) {
	def := defaultConfigs[id]
	if cfg.TextColor == "" {
		cfg.TextColor = def.TextColor
	}
	if cfg.FontFamily == "" {
		cfg.FontFamily = def.FontFamily
	}
	if cfg.Animation == "" {
		cfg.Animation = def.Animation
	}
	if cfg.FontSize == 0 {
		cfg.FontSize = def.FontSize
	}
	if cfg.Perspective == 0 {
		cfg.Perspective = def.Perspective
	}

	updates := []FieldUpdate{
		SetFontSize(cfg.FontSize), SetFontFamily(cfg.FontFamily),
		SetAnimation(cfg.Animation), SetYPos(cfg.YPos),
		SetRotateX(cfg.RotateX), SetRotateY(cfg.RotateY), SetRotateZ(cfg.RotateZ),
		SetPerspective(cfg.Perspective), SetSkewX(cfg.SkewX), SetSkewY(cfg.SkewY),
	}
	for _, u := range updates {
		if err := u.apply(&cfg); err != nil {
			return models.StyleConfig{}, err
		}
	}
	return cfg, nil
}

package styles

import (
	"encoding/json"
	"fmt"
	"math"

	"caption-studio-server/models"
)

// FieldUpdate is one typed change to a style config.
type FieldUpdate interface {
	apply(cfg *models.StyleConfig) error
}

type (
	SetTextColor       string
	SetBackgroundColor string
	SetFontSize        float64
	SetFontFamily      string
	SetAnimation       models.CaptionAnimation
	SetYPos            float64
	SetVisible         bool
	SetRotateX         float64
	SetRotateY         float64
	SetRotateZ         float64
	SetPerspective     float64
	SetSkewX           float64
	SetSkewY           float64
)

func (v SetTextColor) apply(cfg *models.StyleConfig) error {
	cfg.TextColor = string(v)
	return nil
}

func (v SetBackgroundColor) apply(cfg *models.StyleConfig) error {
	cfg.BackgroundColor = string(v)
	return nil
}

func (v SetFontSize) apply(cfg *models.StyleConfig) error {
	cfg.FontSize = clamp(float64(v), models.MinFontSize, models.MaxFontSize)
	return nil
}

func (v SetFontFamily) apply(cfg *models.StyleConfig) error {
	if !models.IsCatalogFont(string(v)) {
		return fmt.Errorf("%w: font %q is not in the catalog", ErrInvalidValue, string(v))
	}
	cfg.FontFamily = string(v)
	return nil
}

func (v SetAnimation) apply(cfg *models.StyleConfig) error {
	if !models.CaptionAnimation(v).Valid() {
		return fmt.Errorf("%w: unknown animation %q", ErrInvalidValue, string(v))
	}
	cfg.Animation = models.CaptionAnimation(v)
	return nil
}

func (v SetYPos) apply(cfg *models.StyleConfig) error {
	cfg.YPos = clamp(float64(v), 0, 100)
	return nil
}

func (v SetVisible) apply(cfg *models.StyleConfig) error {
	cfg.IsVisible = bool(v)
	return nil
}

func (v SetRotateX) apply(cfg *models.StyleConfig) error {
	cfg.RotateX = clamp(float64(v), -180, 180)
	return nil
}

func (v SetRotateY) apply(cfg *models.StyleConfig) error {
	cfg.RotateY = clamp(float64(v), -180, 180)
	return nil
}

func (v SetRotateZ) apply(cfg *models.StyleConfig) error {
	cfg.RotateZ = clamp(float64(v), -180, 180)
	return nil
}

func (v SetPerspective) apply(cfg *models.StyleConfig) error {
	cfg.Perspective = clamp(float64(v), models.MinPerspective, models.MaxPerspective)
	return nil
}

func (v SetSkewX) apply(cfg *models.StyleConfig) error {
	cfg.SkewX = clamp(float64(v), -180, 180)
	return nil
}

func (v SetSkewY) apply(cfg *models.StyleConfig) error {
	cfg.SkewY = clamp(float64(v), -180, 180)
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// ParseFieldUpdate maps the wire {field, value} form onto a typed update.
func ParseFieldUpdate(field string, value json.RawMessage) (FieldUpdate, error) {
	switch field {
	case "text_color", "background_color", "font_family", "animation":
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, fmt.Errorf("%w: field %s: %v", ErrInvalidValue, field, err)
		}
		switch field {
		case "text_color":
			return SetTextColor(s), nil
		case "background_color":
			return SetBackgroundColor(s), nil
		case "font_family":
			return SetFontFamily(s), nil
		default:
			return SetAnimation(s), nil
		}
	case "is_visible":
		var b bool
		if err := json.Unmarshal(value, &b); err != nil {
			return nil, fmt.Errorf("%w: field %s: %v", ErrInvalidValue, field, err)
		}
		return SetVisible(b), nil
	case "font_size", "y_pos", "rotate_x", "rotate_y", "rotate_z", "perspective", "skew_x", "skew_y":
		var f float64
		if err := json.Unmarshal(value, &f); err != nil {
			return nil, fmt.Errorf("%w: field %s: %v", ErrInvalidValue, field, err)
		}
		switch field {
		case "font_size":
			return SetFontSize(f), nil
		case "y_pos":
			return SetYPos(f), nil
		case "rotate_x":
			return SetRotateX(f), nil
		case "rotate_y":
			return SetRotateY(f), nil
		case "rotate_z":
			return SetRotateZ(f), nil
		case "perspective":
			return SetPerspective(f), nil
		case "skew_x":
			return SetSkewX(f), nil
		default:
			return SetSkewY(f), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
}

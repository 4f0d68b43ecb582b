package timeline

import (
	"encoding/json"
	"fmt"
	"math"

	"caption-studio-server/models"
)

// AssetUpdate is one typed field change applied to an asset.
type AssetUpdate interface {
	applyTo(a *models.AssetSegment)
}

type (
	SetAssetX             float64
	SetAssetY             float64
	SetAssetScale         float64
	SetAssetRotation      float64
	SetAssetRotateX       float64
	SetAssetRotateY       float64
	SetAssetRotateZ       float64
	SetAssetPerspective   float64
	SetAssetSkewX         float64
	SetAssetSkewY         float64
	SetAssetAnimation     models.CaptionAnimation
	SetAssetGlowColor     string
	SetAssetGlowIntensity float64
	SetAssetHalo          bool
	SetAssetURL           string
)

func (v SetAssetX) applyTo(a *models.AssetSegment) { a.X = ClampPercent(float64(v)) }
func (v SetAssetY) applyTo(a *models.AssetSegment) { a.Y = ClampPercent(float64(v)) }

func (v SetAssetScale) applyTo(a *models.AssetSegment) {
	a.Scale = clamp(float64(v), models.MinScale, models.MaxScale)
}

func (v SetAssetRotation) applyTo(a *models.AssetSegment) { a.Rotation = NormalizeAngle(float64(v)) }
func (v SetAssetRotateX) applyTo(a *models.AssetSegment)  { a.RotateX = NormalizeAngle(float64(v)) }
func (v SetAssetRotateY) applyTo(a *models.AssetSegment)  { a.RotateY = NormalizeAngle(float64(v)) }
func (v SetAssetRotateZ) applyTo(a *models.AssetSegment)  { a.RotateZ = NormalizeAngle(float64(v)) }

func (v SetAssetPerspective) applyTo(a *models.AssetSegment) {
	a.Perspective = clamp(float64(v), models.MinPerspective, models.MaxPerspective)
}

func (v SetAssetSkewX) applyTo(a *models.AssetSegment) { a.SkewX = NormalizeAngle(float64(v)) }
func (v SetAssetSkewY) applyTo(a *models.AssetSegment) { a.SkewY = NormalizeAngle(float64(v)) }

func (v SetAssetAnimation) applyTo(a *models.AssetSegment) {
	anim := models.CaptionAnimation(v)
	if !anim.Valid() {
		anim = models.AnimationNone
	}
	a.Animation = anim
}

func (v SetAssetGlowColor) applyTo(a *models.AssetSegment) { a.GlowColor = string(v) }

func (v SetAssetGlowIntensity) applyTo(a *models.AssetSegment) {
	a.GlowIntensity = math.Max(0, float64(v))
	if math.IsNaN(a.GlowIntensity) {
		a.GlowIntensity = 0
	}
}

func (v SetAssetHalo) applyTo(a *models.AssetSegment) { a.HaloEffect = bool(v) }
func (v SetAssetURL) applyTo(a *models.AssetSegment)  { a.URL = string(v) }

// ParseAssetUpdate maps a wire {field, value} pair onto a typed update.
func ParseAssetUpdate(field string, value json.RawMessage) (AssetUpdate, error) {
	switch field {
	case "x", "y", "scale", "rotation", "rotate_x", "rotate_y", "rotate_z",
		"perspective", "skew_x", "skew_y", "glow_intensity":
		var f float64
		if err := json.Unmarshal(value, &f); err != nil {
			return nil, fmt.Errorf("%w: field %s: %v", ErrInvalidValue, field, err)
		}
		return numericAssetUpdate(field, f), nil
	case "animation":
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, fmt.Errorf("%w: field %s: %v", ErrInvalidValue, field, err)
		}
		if !models.CaptionAnimation(s).Valid() {
			return nil, fmt.Errorf("%w: field %s: unknown animation %q", ErrInvalidValue, field, s)
		}
		return SetAssetAnimation(s), nil
	case "glow_color", "url":
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, fmt.Errorf("%w: field %s: %v", ErrInvalidValue, field, err)
		}
		if field == "url" {
			return SetAssetURL(s), nil
		}
		return SetAssetGlowColor(s), nil
	case "halo_effect":
		var b bool
		if err := json.Unmarshal(value, &b); err != nil {
			return nil, fmt.Errorf("%w: field %s: %v", ErrInvalidValue, field, err)
		}
		return SetAssetHalo(b), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
}

func numericAssetUpdate(field string, f float64) AssetUpdate {
	switch field {
	case "x":
		return SetAssetX(f)
	case "y":
		return SetAssetY(f)
	case "scale":
		return SetAssetScale(f)
	case "rotation":
		return SetAssetRotation(f)
	case "rotate_x":
		return SetAssetRotateX(f)
	case "rotate_y":
		return SetAssetRotateY(f)
	case "rotate_z":
		return SetAssetRotateZ(f)
	case "perspective":
		return SetAssetPerspective(f)
	case "skew_x":
		return SetAssetSkewX(f)
	case "skew_y":
		return SetAssetSkewY(f)
	default:
		return SetAssetGlowIntensity(f)
	}
}

package compositor

import (
	"caption-studio-server/models"
	"caption-studio-server/pkg/styles"
)

// Anchor is the element's anchor point in stage percentages.
type Anchor struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}

// AnimationHook tells the renderer which preset to run and whether to
// restart it on this frame.
type AnimationHook struct {
	Preset  models.CaptionAnimation `json:"preset"`
	Key     string                  `json:"key"`
	Looping bool                    `json:"looping"`
	Replay  bool                    `json:"replay"`
}

type CaptionState struct {
	SegmentID       string              `json:"segment_id"`
	Text            string              `json:"text"`
	Style           models.CaptionStyle `json:"style"`
	Anchor          Anchor              `json:"anchor"`
	Perspective     float64             `json:"perspective"`
	Transform       Chain               `json:"transform"`
	TransformCSS    string              `json:"transform_css"`
	TextColor       string              `json:"text_color"`
	BackgroundColor string              `json:"background_color"`
	FontFamily      string              `json:"font_family"`
	FontSize        float64             `json:"font_size"`
	Decoration      styles.Decoration   `json:"decoration"`
	Animation       AnimationHook       `json:"animation"`
}

// GlowLayer is a drop-shadow filter around the asset.
type GlowLayer struct {
	Color     string  `json:"color"`
	Intensity float64 `json:"intensity"`
	Filter    string  `json:"filter"`
}

// HaloLayer is a pulsing radial layer drawn behind the asset.
type HaloLayer struct {
	Color    string  `json:"color"`
	Scale    float64 `json:"scale"`
	Gradient string  `json:"gradient"`
	Pulsing  bool    `json:"pulsing"`
}

type AssetState struct {
	AssetID      string           `json:"asset_id"`
	URL          string           `json:"url"`
	Type         models.AssetType `json:"type"`
	Anchor       Anchor           `json:"anchor"`
	Perspective  float64          `json:"perspective"`
	Transform    Chain            `json:"transform"`
	TransformCSS string           `json:"transform_css"`
	Animation    AnimationHook    `json:"animation"`
	Glow         *GlowLayer       `json:"glow,omitempty"`
	Halo         *HaloLayer       `json:"halo,omitempty"`
}

// Frame is everything the renderer needs to draw one instant.
type Frame struct {
	Time    float64       `json:"time"`
	Caption *CaptionState `json:"caption,omitempty"`
	Assets  []AssetState  `json:"assets"`
}

package models

// Transform3D is the 3D block shared by assets and caption styles.
type Transform3D struct {
	RotateX     float64 `json:"rotate_x" yaml:"rotate_x"`
	RotateY     float64 `json:"rotate_y" yaml:"rotate_y"`
	RotateZ     float64 `json:"rotate_z" yaml:"rotate_z"`
	Perspective float64 `json:"perspective" yaml:"perspective"`
	SkewX       float64 `json:"skew_x" yaml:"skew_x"`
	SkewY       float64 `json:"skew_y" yaml:"skew_y"`
}

// Base3D is the neutral 3D block every default style starts from.
var Base3D = Transform3D{Perspective: DefaultPerspective}

const (
	DefaultPerspective     = 1000.0
	DefaultCaptionDuration = 2.0
	DefaultAssetDuration   = 5.0
	DefaultCaptionText     = "نص إعلاني جديد"
)

type CaptionSegment struct {
	ID    string  `json:"id" yaml:"id"`
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
	Text  string  `json:"text" yaml:"text"`
}

// IsActive reports whether t falls inside the closed interval [Start, End].
func (c CaptionSegment) IsActive(t float64) bool {
	return t >= c.Start && t <= c.End
}

type AssetType string

const (
	AssetTypeImage AssetType = "image"
	AssetTypeVideo AssetType = "video"
)

func (t AssetType) Valid() bool {
	return t == AssetTypeImage || t == AssetTypeVideo
}

type AssetSegment struct {
	ID    string    `json:"id" yaml:"id"`
	Start float64   `json:"start" yaml:"start"`
	End   float64   `json:"end" yaml:"end"`
	URL   string    `json:"url" yaml:"url"`
	Type  AssetType `json:"type" yaml:"type"`

	// Position as a percentage of the stage.
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`

	Scale    float64 `json:"scale" yaml:"scale"`
	Rotation float64 `json:"rotation" yaml:"rotation"`

	Transform3D `yaml:",inline"`

	Animation CaptionAnimation `json:"animation" yaml:"animation"`

	GlowColor     string  `json:"glow_color,omitempty" yaml:"glow_color,omitempty"`
	GlowIntensity float64 `json:"glow_intensity,omitempty" yaml:"glow_intensity,omitempty"`
	HaloEffect    bool    `json:"halo_effect,omitempty" yaml:"halo_effect,omitempty"`
}

func (a AssetSegment) IsActive(t float64) bool {
	return t >= a.Start && t <= a.End
}

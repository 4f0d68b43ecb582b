package models

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// CaptionStyle identifies one of the named caption presentation presets.
type CaptionStyle string

const (
	StylePop        CaptionStyle = "pop"
	StyleHighlight  CaptionStyle = "highlight"
	StyleShine      CaptionStyle = "shine"
	StyleMinimal    CaptionStyle = "minimal"
	StyleNeon       CaptionStyle = "neon"
	StyleLuxury     CaptionStyle = "luxury"
	StyleCyber      CaptionStyle = "cyber"
	StyleRetro      CaptionStyle = "retro"
	StyleImpact     CaptionStyle = "impact"
	StyleGlass      CaptionStyle = "glass"
	StyleSticker    CaptionStyle = "sticker"
	StyleOutline    CaptionStyle = "outline"
	StyleGradient   CaptionStyle = "gradient"
	StyleShadowDeep CaptionStyle = "shadow-deep"
	StyleSkewed     CaptionStyle = "skewed"
	StyleFire       CaptionStyle = "fire"
	StyleClean      CaptionStyle = "clean"
	StyleTypewriter CaptionStyle = "typewriter"
	StyleFlashy     CaptionStyle = "flashy"
	StyleBoldBox    CaptionStyle = "bold-box"
	StyleFloating   CaptionStyle = "floating"
	StyleSoftGlow   CaptionStyle = "soft-glow"
	StyleGhost      CaptionStyle = "ghost-style"
	StyleModernBold CaptionStyle = "modern-bold"
	StyleExplosion  CaptionStyle = "explosion"
	StyleMatrix     CaptionStyle = "matrix"
	StyleComic      CaptionStyle = "comic"
	StyleEcho       CaptionStyle = "echo"
	StyleCyberpunk  CaptionStyle = "cyberpunk"
	StylePhantom    CaptionStyle = "phantom"
)

// CaptionStyles lists every style in catalog order.
var CaptionStyles = []CaptionStyle{
	StylePop, StyleHighlight, StyleShine, StyleMinimal, StyleNeon,
	StyleLuxury, StyleCyber, StyleRetro, StyleImpact, StyleGlass,
	StyleSticker, StyleOutline, StyleGradient, StyleShadowDeep, StyleSkewed,
	StyleFire, StyleClean, StyleTypewriter, StyleFlashy, StyleBoldBox,
	StyleFloating, StyleSoftGlow, StyleGhost, StyleModernBold, StyleExplosion,
	StyleMatrix, StyleComic, StyleEcho, StyleCyberpunk, StylePhantom,
}

func (s CaptionStyle) Valid() bool {
	for _, v := range CaptionStyles {
		if v == s {
			return true
		}
	}
	return false
}

// CaptionAnimation is an opaque motion preset token handed to the renderer.
type CaptionAnimation string

const (
	AnimationNone       CaptionAnimation = "none"
	AnimationPopElastic CaptionAnimation = "pop-elastic"
	AnimationFade       CaptionAnimation = "fade"
	AnimationSlideUp    CaptionAnimation = "slide-up"
	AnimationSlideDown  CaptionAnimation = "slide-down"
	AnimationSlideLeft  CaptionAnimation = "slide-left"
	AnimationSlideRight CaptionAnimation = "slide-right"
	AnimationGlitch     CaptionAnimation = "glitch"
	AnimationBlurIn     CaptionAnimation = "blur-in"
	AnimationZoomIn     CaptionAnimation = "zoom-in"
	AnimationZoomOut    CaptionAnimation = "zoom-out"
	AnimationFlipX      CaptionAnimation = "flip-x"
	AnimationFlipY      CaptionAnimation = "flip-y"
	AnimationShake      CaptionAnimation = "shake"
	AnimationPulse      CaptionAnimation = "pulse"
	AnimationRotate     CaptionAnimation = "rotate"
	AnimationSkew       CaptionAnimation = "skew"
	AnimationSpiral     CaptionAnimation = "spiral"
	AnimationSwing      CaptionAnimation = "swing"
	AnimationRubberBand CaptionAnimation = "rubber-band"
	AnimationFlash      CaptionAnimation = "flash"
	AnimationWave       CaptionAnimation = "wave"
	AnimationJello      CaptionAnimation = "jello"
	AnimationHeartbeat  CaptionAnimation = "heartbeat"
	AnimationWobble     CaptionAnimation = "wobble"
	AnimationExplode    CaptionAnimation = "explode"
	AnimationShatter    CaptionAnimation = "shatter"
	AnimationSmoke      CaptionAnimation = "smoke"
	AnimationFireworks  CaptionAnimation = "fireworks"
	AnimationVortex     CaptionAnimation = "vortex"
	AnimationLightSpeed CaptionAnimation = "light-speed"
	AnimationBounce     CaptionAnimation = "bounce"
	AnimationStamp      CaptionAnimation = "stamp"
	AnimationGhost      CaptionAnimation = "ghost"
)

var CaptionAnimations = []CaptionAnimation{
	AnimationNone, AnimationPopElastic, AnimationFade, AnimationSlideUp, AnimationSlideDown,
	AnimationSlideLeft, AnimationSlideRight, AnimationGlitch, AnimationBlurIn, AnimationZoomIn,
	AnimationZoomOut, AnimationFlipX, AnimationFlipY, AnimationShake, AnimationPulse,
	AnimationRotate, AnimationSkew, AnimationSpiral, AnimationSwing, AnimationRubberBand,
	AnimationFlash, AnimationWave, AnimationJello, AnimationHeartbeat, AnimationWobble,
	AnimationExplode, AnimationShatter, AnimationSmoke, AnimationFireworks, AnimationVortex,
	AnimationLightSpeed, AnimationBounce, AnimationStamp, AnimationGhost,
}

func (a CaptionAnimation) Valid() bool {
	for _, v := range CaptionAnimations {
		if v == a {
			return true
		}
	}
	return false
}

// IsLooping reports presets that repeat for as long as the element is visible.
func (a CaptionAnimation) IsLooping() bool {
	return a == AnimationPulse || a == AnimationHeartbeat
}

// StyleConfig is the editable presentation of one caption style.
type StyleConfig struct {
	TextColor       string           `json:"text_color" yaml:"text_color"`
	BackgroundColor string           `json:"background_color" yaml:"background_color"`
	FontSize        float64          `json:"font_size" yaml:"font_size"`
	FontFamily      string           `json:"font_family" yaml:"font_family"`
	Animation       CaptionAnimation `json:"animation" yaml:"animation"`
	YPos            float64          `json:"y_pos" yaml:"y_pos"`
	IsVisible       bool             `json:"is_visible" yaml:"is_visible"`

	Transform3D `yaml:",inline"`
}

type plainStyleConfig StyleConfig

// UnmarshalJSON treats a missing is_visible as visible.
func (c *StyleConfig) UnmarshalJSON(data []byte) error {
	p := plainStyleConfig{IsVisible: true}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = StyleConfig(p)
	return nil
}

// UnmarshalYAML treats a missing is_visible as visible.
func (c *StyleConfig) UnmarshalYAML(value *yaml.Node) error {
	p := plainStyleConfig{IsVisible: true}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = StyleConfig(p)
	return nil
}

const (
	MinFontSize    = 20.0
	MaxFontSize    = 300.0
	MinScale       = 0.1
	MaxScale       = 5.0
	MinPerspective = 200.0
	MaxPerspective = 3000.0
)

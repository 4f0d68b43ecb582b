package compositor

import (
	"fmt"

	"caption-studio-server/models"
	"caption-studio-server/pkg/styles"
	"caption-studio-server/pkg/timeline"
)

const (
	DefaultGlowColor = "#0066ff"
	HaloScale        = 1.5
)

// Scene is the input of one resolution pass: the segment collections and
// the caption style that is active at render time.
type Scene struct {
	Snapshot    timeline.Snapshot
	Style       models.CaptionStyle
	StyleConfig models.StyleConfig
}

// Resolve computes the frame visible at t. It is a pure function of its
// inputs; replay flags are left for a Tracker to fill in.
func Resolve(t float64, scene Scene) Frame {
	frame := Frame{Time: t, Assets: []AssetState{}}
	if seg, ok := scene.Snapshot.ActiveCaption(t); ok {
		frame.Caption = ResolveCaption(seg, scene.Style, scene.StyleConfig)
	}
	for _, a := range scene.Snapshot.ActiveAssets(t) {
		frame.Assets = append(frame.Assets, ResolveAsset(a))
	}
	return frame
}

// ResolveCaption returns nil when the style is hidden.
func ResolveCaption(seg models.CaptionSegment, style models.CaptionStyle, cfg models.StyleConfig) *CaptionState {
	if !cfg.IsVisible {
		return nil
	}

	chain := Chain{
		{Kind: TranslateX, Values: []float64{-50}, Unit: "%"},
		deg(RotateX, cfg.RotateX),
		deg(RotateY, cfg.RotateY),
		deg(RotateZ, cfg.RotateZ),
		deg(Skew, cfg.SkewX, cfg.SkewY),
	}

	return &CaptionState{
		SegmentID:       seg.ID,
		Text:            seg.Text,
		Style:           style,
		Anchor:          Anchor{Left: 50, Top: cfg.YPos},
		Perspective:     cfg.Perspective,
		Transform:       chain,
		TransformCSS:    chain.CSS(),
		TextColor:       cfg.TextColor,
		BackgroundColor: cfg.BackgroundColor,
		FontFamily:      cfg.FontFamily,
		FontSize:        cfg.FontSize,
		Decoration:      styles.DecorationFor(style),
		Animation:       hook(cfg.Animation, CaptionReplayKey(seg, style)),
	}
}

func ResolveAsset(a models.AssetSegment) AssetState {
	scale := a.Scale
	if scale == 0 {
		scale = 1
	}
	perspective := a.Perspective
	if perspective == 0 {
		perspective = models.DefaultPerspective
	}

	chain := Chain{
		{Kind: Translate, Values: []float64{-50, -50}, Unit: "%"},
		deg(RotateX, a.RotateX),
		deg(RotateY, a.RotateY),
		deg(RotateZ, a.RotateZ+a.Rotation),
		deg(Skew, a.SkewX, a.SkewY),
		{Kind: Scale, Values: []float64{scale}},
	}

	state := AssetState{
		AssetID:      a.ID,
		URL:          a.URL,
		Type:         a.Type,
		Anchor:       Anchor{Left: a.X, Top: a.Y},
		Perspective:  perspective,
		Transform:    chain,
		TransformCSS: chain.CSS(),
		Animation:    hook(a.Animation, AssetReplayKey(a)),
	}

	color := a.GlowColor
	if color == "" {
		color = DefaultGlowColor
	}
	if a.GlowIntensity > 0 {
		state.Glow = &GlowLayer{
			Color:     color,
			Intensity: a.GlowIntensity,
			Filter:    fmt.Sprintf("drop-shadow(0 0 %gpx %s)", a.GlowIntensity, color),
		}
	}
	if a.HaloEffect {
		state.Halo = &HaloLayer{
			Color:    color,
			Scale:    HaloScale,
			Gradient: fmt.Sprintf("radial-gradient(circle, %s 0%%, transparent 70%%)", color),
			Pulsing:  true,
		}
	}
	return state
}

// CaptionReplayKey changes whenever the caption's identity, text or style
// changes; the renderer restarts the animation on a new key.
func CaptionReplayKey(seg models.CaptionSegment, style models.CaptionStyle) string {
	return seg.ID + "|" + seg.Text + "|" + string(style)
}

func AssetReplayKey(a models.AssetSegment) string {
	return a.ID + "|" + string(a.Animation)
}

func hook(preset models.CaptionAnimation, key string) AnimationHook {
	if preset == "" {
		preset = models.AnimationNone
	}
	return AnimationHook{
		Preset:  preset,
		Key:     key,
		Looping: preset.IsLooping(),
	}
}

package styles

import "caption-studio-server/models"

func with3D(mod func(t *models.Transform3D)) models.Transform3D {
	t := models.Base3D
	if mod != nil {
		mod(&t)
	}
	return t
}

func preset(text, bg string, size float64, font string, anim models.CaptionAnimation, y float64, t models.Transform3D) models.StyleConfig {
	return models.StyleConfig{
		TextColor:       text,
		BackgroundColor: bg,
		FontSize:        size,
		FontFamily:      font,
		Animation:       anim,
		YPos:            y,
		IsVisible:       true,
		Transform3D:     t,
	}
}

var defaultConfigs = map[models.CaptionStyle]models.StyleConfig{
	models.StylePop: preset("#facc15", "transparent", 90, "Cairo", models.AnimationPopElastic, 50, with3D(nil)),
	models.StyleHighlight: preset("#ffffff", "#e11d48", 60, "Alexandria", models.AnimationRotate, 75,
		with3D(func(t *models.Transform3D) { t.RotateX = 10; t.RotateZ = -3 })),
	models.StyleShine:   preset("#38bdf8", "transparent", 75, "Bebas Neue", models.AnimationFlash, 50, with3D(nil)),
	models.StyleMinimal: preset("#ffffff", "rgba(0,0,0,0.8)", 40, "Tajawal", models.AnimationFade, 85, with3D(nil)),
	models.StyleNeon:    preset("#00d4ff", "transparent", 80, "Anton", models.AnimationPulse, 45, with3D(nil)),
	models.StyleLuxury: preset("#d4af37", "transparent", 65, "Playfair Display", models.AnimationFade, 50,
		with3D(func(t *models.Transform3D) { t.RotateX = 20; t.Perspective = 500 })),
	models.StyleCyber: preset("#00ffff", "transparent", 85, "Righteous", models.AnimationGlitch, 55,
		with3D(func(t *models.Transform3D) { t.SkewX = -10 })),
	models.StyleRetro: preset("#ff0055", "#000", 70, "Changa", models.AnimationWobble, 60, with3D(nil)),
	models.StyleImpact: preset("#fff", "transparent", 120, "Anton", models.AnimationZoomIn, 50,
		with3D(func(t *models.Transform3D) { t.RotateY = 15 })),
	models.StyleGlass: preset("#fff", "transparent", 55, "Montserrat", models.AnimationBlurIn, 70, with3D(nil)),
	models.StyleSticker: preset("#000", "#fff", 60, "Poppins", models.AnimationRubberBand, 65,
		with3D(func(t *models.Transform3D) { t.RotateZ = 5 })),
	models.StyleOutline:    preset("#007bff", "transparent", 100, "Oswald", models.AnimationSkew, 50, with3D(nil)),
	models.StyleGradient:   preset("#0066ff", "#00d4ff", 90, "Inter", models.AnimationSpiral, 50, with3D(nil)),
	models.StyleShadowDeep: preset("#fff", "transparent", 80, "Roboto Condensed", models.AnimationSlideUp, 50, with3D(nil)),
	models.StyleSkewed: preset("#fde047", "transparent", 90, "Cairo", models.AnimationSkew, 50,
		with3D(func(t *models.Transform3D) { t.SkewX = 15 })),
	models.StyleFire:       preset("#ff4500", "transparent", 85, "Cairo", models.AnimationWave, 50, with3D(nil)),
	models.StyleClean:      preset("#1e293b", "#f1f5f9", 45, "Readex Pro", models.AnimationFade, 80, with3D(nil)),
	models.StyleTypewriter: preset("#007bff", "rgba(0,0,0,0.9)", 50, "IBM Plex Sans Arabic", models.AnimationNone, 70, with3D(nil)),
	models.StyleFlashy:     preset("#fff", "transparent", 110, "Anton", models.AnimationFlash, 50, with3D(nil)),
	models.StyleBoldBox:    preset("#000", "#007bff", 65, "Tajawal", models.AnimationJello, 50, with3D(nil)),
	models.StyleFloating:   preset("#94a3b8", "transparent", 55, "Lateef", models.AnimationSwing, 40, with3D(nil)),
	models.StyleSoftGlow:   preset("#fff", "transparent", 75, "Cairo", models.AnimationHeartbeat, 50, with3D(nil)),
	models.StyleGhost:      preset("#ffffff", "transparent", 80, "Bebas Neue", models.AnimationGhost, 50, with3D(nil)),
	models.StyleModernBold: preset("#fff", "#000", 70, "Alexandria", models.AnimationSlideUp, 85, with3D(nil)),
	models.StyleExplosion:  preset("#ffcc00", "transparent", 110, "Anton", models.AnimationExplode, 50, with3D(nil)),
	models.StyleMatrix:     preset("#00ff41", "#000", 60, "IBM Plex Sans Arabic", models.AnimationGlitch, 50, with3D(nil)),
	models.StyleComic: preset("#000", "#ffcc00", 80, "Changa", models.AnimationStamp, 50,
		with3D(func(t *models.Transform3D) { t.RotateX = 15; t.RotateZ = 5 })),
	models.StyleEcho: preset("#ffffff", "transparent", 70, "Montserrat", models.AnimationShatter, 50,
		with3D(func(t *models.Transform3D) { t.RotateY = -20 })),
	models.StyleCyberpunk: preset("#f0f", "#0ff", 85, "Righteous", models.AnimationLightSpeed, 50,
		with3D(func(t *models.Transform3D) { t.SkewX = -15; t.RotateX = 5 })),
	models.StylePhantom: preset("#999", "transparent", 75, "Cairo", models.AnimationSmoke, 50, with3D(nil)),
}

// DefaultConfig returns the immutable default configuration of a style.
func DefaultConfig(id models.CaptionStyle) (models.StyleConfig, error) {
	cfg, ok := defaultConfigs[id]
	if !ok {
		return models.StyleConfig{}, unknownStyle(id)
	}
	return cfg, nil
}

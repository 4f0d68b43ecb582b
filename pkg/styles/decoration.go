package styles

import "caption-studio-server/models"

// Decoration is the fixed typographic treatment of a style. Color, when
// set, is a class color that the style's text_color overrides.
type Decoration struct {
	Uppercase    bool    `json:"uppercase"`
	Italic       bool    `json:"italic"`
	Bordered     bool    `json:"bordered"`
	BlurredGlass bool    `json:"blurred_glass"`
	Boxed        bool    `json:"boxed"`
	Mono         bool    `json:"mono"`
	FontWeight   int     `json:"font_weight"`
	Tracking     string  `json:"tracking,omitempty"`
	ScaleY       float64 `json:"scale_y,omitempty"`
	Color        string  `json:"color,omitempty"`
	Opacity      float64 `json:"opacity"`
	TextShadow   string  `json:"text_shadow,omitempty"`
}

var defaultDecoration = Decoration{FontWeight: 700, Opacity: 1}

var decorations = map[models.CaptionStyle]Decoration{
	models.StylePop:       {Uppercase: true, FontWeight: 900, Tracking: "tighter", Opacity: 1},
	models.StyleHighlight: {Boxed: true, FontWeight: 700, Opacity: 1},
	models.StyleShine:     {FontWeight: 900, Opacity: 1},
	models.StyleMinimal:   {Boxed: true, FontWeight: 700, Opacity: 1},
	models.StyleNeon:      {Italic: true, FontWeight: 700, Opacity: 1},
	models.StyleLuxury:    {Italic: true, FontWeight: 300, Tracking: "0.2em", Opacity: 1},
	models.StyleCyber:     {FontWeight: 900, Tracking: "widest", Opacity: 1},
	models.StyleRetro:     {Bordered: true, Mono: true, FontWeight: 400, Opacity: 1},
	models.StyleImpact:    {Uppercase: true, FontWeight: 900, ScaleY: 1.25, Opacity: 1},
	models.StyleGlass:     {BlurredGlass: true, Bordered: true, Boxed: true, FontWeight: 400, Opacity: 1},
	models.StyleSticker:   {Boxed: true, FontWeight: 900, Opacity: 1},
	models.StyleOutline:   {FontWeight: 900, Opacity: 1},
	models.StyleGradient:  {Uppercase: true, FontWeight: 900, Opacity: 1},
	models.StyleExplosion: {FontWeight: 900, Color: "#facc15", Opacity: 1, TextShadow: "0 0 10px #f00, 0 0 20px #ff0, 0 0 40px #f90"},
	models.StyleMatrix:    {Mono: true, FontWeight: 400, Tracking: "tighter", Opacity: 1, TextShadow: "0 0 8px #0f4"},
	models.StyleComic:     {Italic: true, Uppercase: true, Bordered: true, Boxed: true, FontWeight: 900, Opacity: 1},
	models.StyleEcho:      {FontWeight: 700, Tracking: "widest", Opacity: 1},
	models.StyleCyberpunk: {FontWeight: 900, Opacity: 1},
	models.StylePhantom:   {FontWeight: 700, Opacity: 0.7},
}

// DecorationFor looks up the static decoration of a style; styles without
// an entry get a plain bold treatment.
func DecorationFor(id models.CaptionStyle) Decoration {
	if d, ok := decorations[id]; ok {
		return d
	}
	return defaultDecoration
}

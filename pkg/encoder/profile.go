package encoder

import (
	"fmt"
	"strconv"

	"caption-studio-server/models"
)

// Profile is what the external encoder needs to mux the overlay plan
// onto the source video.
type Profile struct {
	Container  string   `json:"container"`
	VideoCodec string   `json:"video_codec"`
	AudioCodec string   `json:"audio_codec"`
	CRF        int      `json:"crf"`
	Preset     string   `json:"preset,omitempty"`
	Width      int      `json:"width,omitempty"`
	Height     int      `json:"height,omitempty"`
	FPS        int      `json:"fps"`
	Args       []string `json:"args"`
}

var targetHeights = map[string]int{
	"720p":  720,
	"1080p": 1080,
	"4k":    2160,
}

// BuildProfile maps export settings onto encoder arguments. Source
// dimensions may be zero when unknown, in which case 16:9 is assumed for
// scaled outputs.
func BuildProfile(settings models.ExportSettings, sourceWidth, sourceHeight int) (*Profile, error) {
	settings = settings.WithDefaults()
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	p := &Profile{
		Container:  settings.Format,
		VideoCodec: "libx264",
		AudioCodec: "aac",
		Preset:     "medium",
		FPS:        settings.FPS,
		Width:      sourceWidth,
		Height:     sourceHeight,
	}
	if settings.Format == "original" {
		p.Container = ""
	}
	if settings.Format == "webm" {
		p.VideoCodec = "libvpx-vp9"
		p.AudioCodec = "libopus"
		p.Preset = ""
	}
	p.CRF = crfFor(p.VideoCodec, settings.Quality)

	if h, ok := targetHeights[settings.Resolution]; ok {
		p.Width, p.Height = scaledSize(sourceWidth, sourceHeight, h)
	}

	p.Args = buildArgs(p, settings.Resolution != "original")
	return p, nil
}

func crfFor(codec, quality string) int {
	if codec == "libvpx-vp9" {
		switch quality {
		case "standard":
			return 36
		case "ultra":
			return 24
		default:
			return 31
		}
	}
	switch quality {
	case "standard":
		return 23
	case "ultra":
		return 15
	default:
		return 18
	}
}

// scaledSize keeps the source aspect ratio at the target height, rounding
// the width to an even number as yuv420p requires.
func scaledSize(srcW, srcH, targetH int) (int, int) {
	if srcW <= 0 || srcH <= 0 {
		srcW, srcH = 16, 9
	}
	w := srcW * targetH / srcH
	if w%2 != 0 {
		w++
	}
	return w, targetH
}

func buildArgs(p *Profile, scale bool) []string {
	args := []string{"-c:v", p.VideoCodec}

	if p.Preset != "" {
		args = append(args, "-preset", p.Preset)
	}
	args = append(args, "-crf", strconv.Itoa(p.CRF))
	if p.VideoCodec == "libvpx-vp9" {
		args = append(args, "-b:v", "0")
	}

	if scale {
		args = append(args, "-vf", fmt.Sprintf("scale=%d:%d", p.Width, p.Height))
	}

	args = append(args, "-r", strconv.Itoa(p.FPS))
	args = append(args, "-c:a", p.AudioCodec, "-b:a", "128k")

	if p.Container != "" {
		args = append(args, "-f", p.Container)
	}
	return args
}

// Map flattens the profile for storage in a JSON column.
func (p *Profile) Map() models.JSON {
	return models.JSON{
		"container":   p.Container,
		"video_codec": p.VideoCodec,
		"audio_codec": p.AudioCodec,
		"crf":         p.CRF,
		"preset":      p.Preset,
		"width":       p.Width,
		"height":      p.Height,
		"fps":         p.FPS,
		"args":        p.Args,
	}
}

package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caption-studio-server/models"
)

func TestBuildProfileDefaults(t *testing.T) {
	p, err := BuildProfile(models.ExportSettings{}, 1920, 1080)
	require.NoError(t, err)

	assert.Equal(t, "", p.Container)
	assert.Equal(t, "libx264", p.VideoCodec)
	assert.Equal(t, 18, p.CRF, "high quality by default")
	assert.Equal(t, 30, p.FPS)
	assert.Equal(t, 1920, p.Width)
	assert.NotContains(t, p.Args, "-vf")
	assert.Equal(t,
		[]string{"-c:v", "libx264", "-preset", "medium", "-crf", "18", "-r", "30", "-c:a", "aac", "-b:a", "128k"},
		p.Args)
}

func TestBuildProfileScalesAndEncodesWebM(t *testing.T) {
	p, err := BuildProfile(models.ExportSettings{Resolution: "720p", Format: "webm", Quality: "ultra", FPS: 60}, 1080, 1920)
	require.NoError(t, err)

	assert.Equal(t, "webm", p.Container)
	assert.Equal(t, "libvpx-vp9", p.VideoCodec)
	assert.Equal(t, 24, p.CRF)
	assert.Equal(t, 406, p.Width, "portrait source keeps its aspect, width rounded to even")
	assert.Equal(t, 720, p.Height)
	assert.Contains(t, p.Args, "scale=406:720")
	assert.Contains(t, p.Args, "libopus")
	assert.Equal(t, "webm", p.Args[len(p.Args)-1])
}

func TestBuildProfileUnknownSource(t *testing.T) {
	p, err := BuildProfile(models.ExportSettings{Resolution: "4k", Format: "mov", Quality: "standard", FPS: 30}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3840, p.Width)
	assert.Equal(t, 2160, p.Height)
	assert.Equal(t, 23, p.CRF)
	assert.Equal(t, "mov", p.Map()["container"])
}

func TestBuildProfileRejectsInvalid(t *testing.T) {
	_, err := BuildProfile(models.ExportSettings{FPS: 24}, 0, 0)
	assert.Error(t, err)
	_, err = BuildProfile(models.ExportSettings{Format: "avi"}, 0, 0)
	assert.Error(t, err)
}

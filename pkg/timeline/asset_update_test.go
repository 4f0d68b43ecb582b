package timeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caption-studio-server/models"
)

func TestAssetUpdatesClamp(t *testing.T) {
	e, _ := newTestEngine()
	a := e.AddAsset(models.AssetSegment{})

	got, err := e.UpdateAsset(a.ID,
		SetAssetScale(0),
		SetAssetPerspective(10000),
		SetAssetRotateX(270),
		SetAssetRotation(-190),
		SetAssetGlowIntensity(-4),
		SetAssetAnimation("not-a-preset"),
	)
	require.NoError(t, err)
	assert.Equal(t, models.MinScale, got.Scale)
	assert.Equal(t, models.MaxPerspective, got.Perspective)
	assert.Equal(t, -90.0, got.RotateX)
	assert.Equal(t, 170.0, got.Rotation)
	assert.Equal(t, 0.0, got.GlowIntensity)
	assert.Equal(t, models.AnimationNone, got.Animation)
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{-180, -180},
		{190, -170},
		{360, 0},
		{-540, -180},
		{725, 5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeAngle(tt.in), 1e-9, "in=%v", tt.in)
	}
}

func TestParseAssetUpdate(t *testing.T) {
	e, _ := newTestEngine()
	a := e.AddAsset(models.AssetSegment{})

	tests := []struct {
		field string
		value string
		check func(t *testing.T, a models.AssetSegment)
	}{
		{"scale", "2.5", func(t *testing.T, a models.AssetSegment) { assert.Equal(t, 2.5, a.Scale) }},
		{"skew_y", "12", func(t *testing.T, a models.AssetSegment) { assert.Equal(t, 12.0, a.SkewY) }},
		{"animation", `"pulse"`, func(t *testing.T, a models.AssetSegment) {
			assert.Equal(t, models.AnimationPulse, a.Animation)
		}},
		{"glow_color", `"#ff0000"`, func(t *testing.T, a models.AssetSegment) { assert.Equal(t, "#ff0000", a.GlowColor) }},
		{"halo_effect", "true", func(t *testing.T, a models.AssetSegment) { assert.True(t, a.HaloEffect) }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			u, err := ParseAssetUpdate(tt.field, json.RawMessage(tt.value))
			require.NoError(t, err)
			got, err := e.UpdateAsset(a.ID, u)
			require.NoError(t, err)
			tt.check(t, got)
		})
	}

	_, err := ParseAssetUpdate("colour", json.RawMessage(`1`))
	assert.ErrorIs(t, err, ErrUnknownField)
	_, err = ParseAssetUpdate("scale", json.RawMessage(`"big"`))
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = ParseAssetUpdate("animation", json.RawMessage(`"moonwalk"`))
	assert.ErrorIs(t, err, ErrInvalidValue)
}

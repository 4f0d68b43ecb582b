package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestStyleConfigMissingVisibilityIsVisible(t *testing.T) {
	var fromJSON StyleConfig
	require.NoError(t, json.Unmarshal([]byte(`{"font_size":60,"rotate_x":10}`), &fromJSON))
	assert.True(t, fromJSON.IsVisible)
	assert.Equal(t, 60.0, fromJSON.FontSize)
	assert.Equal(t, 10.0, fromJSON.RotateX)

	var hidden StyleConfig
	require.NoError(t, json.Unmarshal([]byte(`{"is_visible":false}`), &hidden))
	assert.False(t, hidden.IsVisible)

	var fromYAML StyleConfig
	require.NoError(t, yaml.Unmarshal([]byte("font_size: 60\nrotate_y: 15\n"), &fromYAML))
	assert.True(t, fromYAML.IsVisible)
	assert.Equal(t, 15.0, fromYAML.RotateY)

	require.NoError(t, yaml.Unmarshal([]byte("is_visible: false\n"), &hidden))
	assert.False(t, hidden.IsVisible)
}

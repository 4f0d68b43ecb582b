package segmentation

import (
	"context"
	"errors"
)

var (
	ErrNotConfigured = errors.New("background removal is not configured")
	ErrNoImage       = errors.New("model returned no image")
)

// Image is raw image bytes with their MIME type.
type Image struct {
	Data     []byte `json:"data"`
	MIMEType string `json:"mime_type"`
}

// Remover isolates the main subject of an image on a solid white
// background.
type Remover interface {
	RemoveBackground(ctx context.Context, img Image) (Image, error)
}

type RemoverFunc func(ctx context.Context, img Image) (Image, error)

func (f RemoverFunc) RemoveBackground(ctx context.Context, img Image) (Image, error) {
	return f(ctx, img)
}

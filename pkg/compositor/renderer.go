package compositor

import "context"

// Renderer draws resolved frames. The core never touches pixels; a
// renderer receives a complete Frame and is free to composite it however
// its surface requires.
type Renderer interface {
	Render(ctx context.Context, frame Frame) error
}

type RendererFunc func(ctx context.Context, frame Frame) error

func (f RendererFunc) Render(ctx context.Context, frame Frame) error {
	return f(ctx, frame)
}

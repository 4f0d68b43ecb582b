package segmentation

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

const (
	DefaultModel = "gemini-2.5-flash-image"

	// Prompt asks for the subject alone on pure white so the chroma key
	// can cut it out afterwards.
	Prompt = "Please segment this image and return only the main object centered on a pure solid white background (#FFFFFF). Do not add any shadows or reflections. Return ONLY the image."
)

// GeminiRemover calls a Gemini image model for background removal.
type GeminiRemover struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGeminiRemover(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiRemover, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiRemover{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

func (g *GeminiRemover) RemoveBackground(ctx context.Context, img Image) (Image, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(img.Data, img.MIMEType),
			genai.NewPartFromText(Prompt),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return Image{}, fmt.Errorf("generate content error: %w", err)
	}
	return imageFromResponse(resp)
}

// imageFromResponse returns the first inline image part of the first
// candidate.
func imageFromResponse(resp *genai.GenerateContentResponse) (Image, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return Image{}, fmt.Errorf("%w: no candidates returned", ErrNoImage)
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return Image{}, fmt.Errorf("%w: empty candidate", ErrNoImage)
	}
	for _, part := range content.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		mimeType := part.InlineData.MIMEType
		if mimeType == "" {
			mimeType = "image/png"
		}
		return Image{Data: part.InlineData.Data, MIMEType: mimeType}, nil
	}
	return Image{}, ErrNoImage
}

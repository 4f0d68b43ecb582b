package services

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/sirupsen/logrus"

	"caption-studio-server/models"
	"caption-studio-server/pkg/imaging"
	"caption-studio-server/pkg/segmentation"
	"caption-studio-server/pkg/timeline"
)

var (
	ErrUploadInProgress = errors.New("another upload is still being processed")
	ErrUnsupportedMedia = errors.New("only image and video uploads are supported")
	ErrEmptyUpload      = errors.New("upload is empty")
	ErrUnsupportedImage = imaging.ErrUnsupportedImage
)

// Upload is one file dropped onto the editor.
type Upload struct {
	Filename string
	MIMEType string
	Data     []byte
}

type UploadResult struct {
	Asset             models.AssetSegment `json:"asset"`
	BackgroundRemoved bool                `json:"background_removed"`
}

type AssetService struct {
	editor    *EditorService
	remover   segmentation.Remover
	keyColor  color.RGBA
	tolerance int
}

// NewAssetService wires the upload pipeline. A nil remover behaves like
// an unconfigured one: every image keeps its original pixels.
func NewAssetService(editor *EditorService, remover segmentation.Remover, keyColor color.RGBA, tolerance int) *AssetService {
	if remover == nil {
		remover = segmentation.RemoverFunc(func(context.Context, segmentation.Image) (segmentation.Image, error) {
			return segmentation.Image{}, segmentation.ErrNotConfigured
		})
	}
	return &AssetService{
		editor:    editor,
		remover:   remover,
		keyColor:  keyColor,
		tolerance: tolerance,
	}
}

// Upload turns a file into a new asset starting at the playhead. Only one
// upload per session is processed at a time; a concurrent one fails with
// ErrUploadInProgress instead of queueing.
func (s *AssetService) Upload(ctx context.Context, sessionID string, up Upload) (*UploadResult, error) {
	sess, err := s.editor.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if len(up.Data) == 0 {
		return nil, ErrEmptyUpload
	}
	kind, err := mediaKind(up.MIMEType)
	if err != nil {
		return nil, err
	}

	if !sess.uploads.TryAcquire(1) {
		return nil, ErrUploadInProgress
	}
	defer sess.uploads.Release(1)

	log := sess.log().WithField("filename", up.Filename)

	result := &UploadResult{}
	url := imaging.DataURL(up.MIMEType, up.Data)
	if kind == models.AssetTypeImage {
		processed, ok, err := s.process(ctx, log, segmentation.Image{Data: up.Data, MIMEType: up.MIMEType})
		if err != nil {
			return nil, err
		}
		if ok {
			url = imaging.DataURL(processed.MIMEType, processed.Data)
			result.BackgroundRemoved = true
		}
	}

	start := timeline.RoundTime(sess.Clock.CurrentTime())
	result.Asset = sess.Engine.AddAsset(models.AssetSegment{
		Start:       start,
		End:         start + models.DefaultAssetDuration,
		URL:         url,
		Type:        kind,
		X:           50,
		Y:           50,
		Scale:       1,
		Transform3D: models.Base3D,
		Animation:   models.AnimationPopElastic,
	})

	log.WithField("asset_id", result.Asset.ID).
		Infof("Asset added (type=%s, background_removed=%t)", kind, result.BackgroundRemoved)
	return result, nil
}

// process runs background removal and the chroma key. ok is false when
// the original image should be used; only a cancelled ctx is an error.
func (s *AssetService) process(ctx context.Context, log *logrus.Entry, img segmentation.Image) (segmentation.Image, bool, error) {
	out, err := s.remover.RemoveBackground(ctx, img)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return segmentation.Image{}, false, ctxErr
		}
		if !errors.Is(err, segmentation.ErrNotConfigured) {
			log.Warnf("Background removal failed, keeping original image: %v", err)
		}
		return segmentation.Image{}, false, nil
	}

	keyed, err := imaging.MakeColorTransparent(out.Data, s.keyColor, s.tolerance)
	if err != nil {
		log.Warnf("Chroma key failed, keeping original image: %v", err)
		return segmentation.Image{}, false, nil
	}
	return segmentation.Image{Data: keyed, MIMEType: "image/png"}, true, nil
}

func mediaKind(mimeType string) (models.AssetType, error) {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.HasPrefix(mt, "image/"):
		return models.AssetTypeImage, nil
	case strings.HasPrefix(mt, "video/"):
		return models.AssetTypeVideo, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedMedia, mimeType)
}

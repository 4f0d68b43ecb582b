package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var ErrUnsupportedImage = errors.New("unsupported image data")

// White is the background the segmentation model paints behind subjects.
var White = color.RGBA{R: 255, G: 255, B: 255, A: 255}

const DefaultTolerance = 30

// MakeColorTransparent clears the alpha of every pixel whose red, green
// and blue channels each differ from target by less than tolerance, and
// returns the result as PNG.
func MakeColorTransparent(data []byte, target color.RGBA, tolerance int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	dst := ToNRGBA(src)
	KeyOut(dst, target, tolerance)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// ToNRGBA copies img into a zero-origin non-premultiplied RGBA image.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// KeyOut applies the chroma key in place.
func KeyOut(img *image.NRGBA, target color.RGBA, tolerance int) {
	for y := 0; y < img.Rect.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+img.Rect.Dx()*4]
		for i := 0; i < len(row); i += 4 {
			if within(row[i], target.R, tolerance) &&
				within(row[i+1], target.G, tolerance) &&
				within(row[i+2], target.B, tolerance) {
				row[i+3] = 0
			}
		}
	}
}

func within(c, target uint8, tolerance int) bool {
	d := int(c) - int(target)
	if d < 0 {
		d = -d
	}
	return d < tolerance
}

package imageprocessor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrInvalidImage is returned when the upload cannot be decoded as an image.
var ErrInvalidImage = errors.New("invalid image")

// Processor re-encodes uploads as PNG, the format stored for look images.
type Processor struct {
	maxSide int // longest side after normalisation, 0 keeps the original size
}

// NewProcessor creates a new image processor
func NewProcessor(maxSide int) *Processor {
	if maxSide < 0 {
		maxSide = 0
	}
	return &Processor{
		maxSide: maxSide,
	}
}

// Normalize decodes jpeg/png/gif/webp, shrinks it to fit maxSide and encodes PNG.
func (p *Processor) Normalize(reader io.Reader) ([]byte, error) {
	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	bounds := img.Bounds()
	if p.maxSide > 0 && (bounds.Dx() > p.maxSide || bounds.Dy() > p.maxSide) {
		img = p.resize(img, p.maxSide, p.maxSide)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// resize resizes an image maintaining aspect ratio
func (p *Processor) resize(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	ratio := float64(width) / float64(height)
	newWidth := maxWidth
	newHeight := maxHeight

	if float64(maxWidth)/float64(maxHeight) > ratio {
		newWidth = int(float64(maxHeight) * ratio)
	} else {
		newHeight = int(float64(maxWidth) / ratio)
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	return dst
}

// GetImageDimensions returns the dimensions of an image
func GetImageDimensions(reader io.Reader) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(reader)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return cfg.Width, cfg.Height, nil
}

package converter

import (
	"bookrater/internal/core/domain"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	// imaging registers jpeg, png, gif, bmp and tiff; webp needs its own decoder.
	_ "golang.org/x/image/webp"
)

const DefaultQuality = 75

var ErrEmptyImage = errors.New("empty image data")

// JPEG normalizes arbitrary raster images to JPEG.
type JPEG struct {
	quality      int
	maxDimension int
}

// NewJPEG returns a converter encoding at the given quality (1-100). A maxDimension above zero
// downsizes larger images to fit inside a maxDimension square, keeping the aspect ratio.
func NewJPEG(quality, maxDimension int) *JPEG {
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}
	if maxDimension < 0 {
		maxDimension = 0
	}

	return &JPEG{quality: quality, maxDimension: maxDimension}
}

func (j *JPEG) ToJPEG(ctx context.Context, data []byte) (domain.InlineImage, error) {
	if err := ctx.Err(); err != nil {
		return domain.InlineImage{}, err
	}

	if len(data) == 0 {
		return domain.InlineImage{}, ErrEmptyImage
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return domain.InlineImage{}, fmt.Errorf("error decoding image: %w", err)
	}

	bounds := img.Bounds()
	l := log.With().Int("width", bounds.Dx()).Int("height", bounds.Dy()).Logger()

	if !isOpaque(img) {
		l.Debug().Msg("flattening transparent image onto white")
		bg := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
		img = imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
	}

	if j.maxDimension > 0 && (bounds.Dx() > j.maxDimension || bounds.Dy() > j.maxDimension) {
		l.Debug().Int("maxDimension", j.maxDimension).Msg("downsizing image")
		img = imaging.Fit(img, j.maxDimension, j.maxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(j.quality)); err != nil {
		return domain.InlineImage{}, fmt.Errorf("error encoding jpeg: %w", err)
	}

	l.Debug().Int("inBytes", len(data)).Int("outBytes", buf.Len()).Msg("converted image to jpeg")

	return domain.InlineImage{MIMEType: domain.JPEGMimeType, Data: buf.Bytes()}, nil
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}

	return false
}

package port

import (
	"bookrater/internal/core/domain"
	"context"
)

type ImageConverter interface {
	// ToJPEG decodes an image in any supported raster format and re-encodes it as JPEG.
	ToJPEG(ctx context.Context, data []byte) (domain.InlineImage, error)
}

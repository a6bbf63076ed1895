package port

import "context"

type ImageDownloader interface {
	// Download returns the body of a successful GET on url.
	Download(ctx context.Context, url string) ([]byte, error)
}

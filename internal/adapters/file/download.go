package file

import (
	"bookrater/internal/core/domain"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
)

// DefaultMaxBytes caps image downloads when no limit is configured.
const DefaultMaxBytes = 20 << 20

// Downloader fetches remote files over HTTP.
type Downloader struct {
	client   *http.Client
	maxBytes int64
}

// NewDownloader returns a Downloader using client. A nil client falls back to a plain http.Client,
// a maxBytes of zero or less to DefaultMaxBytes.
func NewDownloader(client *http.Client, maxBytes int64) *Downloader {
	if client == nil {
		client = &http.Client{}
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	return &Downloader{client: client, maxBytes: maxBytes}
}

// Download returns the byte content of a file on a provided URL. Returned errors and log lines
// never contain the full URL.
func (d *Downloader) Download(ctx context.Context, path string) ([]byte, error) {
	l := log.With().Str("path", domain.RedactURL(path)).Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		err = fmt.Errorf("error creating request: %w", withoutURL(err))
		l.Error().Err(err).Send()
		return nil, err
	}

	res, err := d.client.Do(req)
	if err != nil {
		err = fmt.Errorf("error executing request: %w", withoutURL(err))
		l.Error().Err(err).Send()
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		err = fmt.Errorf("unexpected status code on download: %d", res.StatusCode)
		l.Error().Err(err).Send()
		return nil, err
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, d.maxBytes+1))
	if err != nil {
		err = fmt.Errorf("error reading response: %w", err)
		l.Error().Err(err).Send()
		return nil, err
	}

	if int64(len(buf)) > d.maxBytes {
		l.Error().Int64("maxBytes", d.maxBytes).Msg("download too large")
		return nil, fmt.Errorf("%w: limit %d bytes", domain.ErrImageTooLarge, d.maxBytes)
	}

	l.Debug().Int("bytes", len(buf)).Msg("downloaded file")

	return buf, nil
}

// withoutURL drops the request URL that net/http puts into its errors.
func withoutURL(err error) error {
	var uErr *url.Error
	if errors.As(err, &uErr) {
		return fmt.Errorf("%s: %w", uErr.Op, uErr.Err)
	}

	return err
}

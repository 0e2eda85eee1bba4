package domain

import (
	"context"
	"io"
)

// ImageStore uploads image bytes and returns a stable public URL that is
// stored verbatim as the image reference.
type ImageStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (url string, err error)
}

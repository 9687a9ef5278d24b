package interfaces

import (
	"context"
	"io"
)

// Fetcher downloads a single URL into the given writer and returns the
// number of bytes written.
type Fetcher interface {
	Fetch(ctx context.Context, url string, w io.Writer) (int64, error)
}

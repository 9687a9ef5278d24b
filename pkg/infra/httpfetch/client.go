package httpfetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/faceforge/faceforge/pkg/domain/interfaces"
	"github.com/faceforge/faceforge/pkg/domain/types"
)

// config holds internal HTTP client configuration
type config struct {
	timeout time.Duration
	token   string
	client  *http.Client
}

// Option is a functional option for client configuration
type Option func(*config)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithToken sets a bearer token sent with every request
func WithToken(token string) Option {
	return func(c *config) {
		c.token = token
	}
}

// WithHTTPClient replaces the underlying HTTP client (used in tests)
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.client = client
	}
}

type client struct {
	httpClient *http.Client
	token      string
}

// New creates a new HTTP fetcher
func New(opts ...Option) interfaces.Fetcher {
	cfg := &config{
		timeout: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := cfg.client
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.timeout}
	}

	return &client{
		httpClient: httpClient,
		token:      cfg.token,
	}
}

// Fetch performs a single blocking GET and streams the body into w.
func (c *client) Fetch(ctx context.Context, url string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create download request", goerr.V("url", url))
	}

	req.Header.Set("User-Agent", "faceforge/"+types.Version)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to download", goerr.V("url", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, goerr.New("unexpected status code",
			goerr.V("status", resp.StatusCode),
			goerr.V("url", url),
		)
	}

	size, err := io.Copy(w, resp.Body)
	if err != nil {
		return size, goerr.Wrap(err, "failed to read response body", goerr.V("url", url))
	}

	return size, nil
}

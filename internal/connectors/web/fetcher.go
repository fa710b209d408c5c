// Package web fetches web pages for ingestion.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driven"
	"github.com/custodia-labs/notebook-rag/internal/extractors"
	"github.com/custodia-labs/notebook-rag/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

const (
	// DefaultRequestsPerSecond is the proactive throttle rate.
	DefaultRequestsPerSecond = 2.0

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second

	// MaxBodySize caps the bytes read from one response.
	MaxBodySize = 20 << 20

	// UserAgent identifies the fetcher to servers.
	UserAgent = "notebook-rag/1.0"
)

// ErrUnsupportedScheme is returned for URLs other than http and https.
var ErrUnsupportedScheme = errors.New("unsupported url scheme")

// Fetcher downloads web pages, throttled by a token bucket.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithRate sets the request rate in requests per second.
func WithRate(rps float64) Option {
	return func(f *Fetcher) {
		if rps > 0 {
			f.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.client.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP client. Its timeout is kept as is.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// New creates a fetcher.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:  &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), 1),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads rawURL and returns its body with the response content type.
// Failures are *domain.ExtractionError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*domain.RawSource, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, domain.NewExtractionError(rawURL, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, domain.NewExtractionError(rawURL, fmt.Errorf("%w: %q", ErrUnsupportedScheme, parsed.Scheme))
	}
	target := parsed.String()

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, domain.NewExtractionError(target, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, domain.NewExtractionError(target, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain,application/pdf;q=0.9,*/*;q=0.8")

	logger.Debug("Fetching %s", target)
	start := time.Now()

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, domain.NewExtractionError(target, fmt.Errorf("fetching: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.NewExtractionError(target, fmt.Errorf("unexpected status %s", resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return nil, domain.NewExtractionError(target, fmt.Errorf("reading body: %w", err))
	}

	mimeType := extractors.BaseMIMEType(resp.Header.Get("Content-Type"))
	if mimeType == "" {
		mimeType = extractors.BaseMIMEType(http.DetectContentType(body))
	}

	logger.Debug("Fetched %s: %d bytes of %s in %v", target, len(body), mimeType, time.Since(start))

	return &domain.RawSource{
		URI:      target,
		MIMEType: mimeType,
		Kind:     domain.KindURL,
		Content:  body,
		Metadata: map[string]any{
			"status_code": resp.StatusCode,
			"host":        parsed.Host,
		},
	}, nil
}

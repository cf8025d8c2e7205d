// Package feed loads the dashboard's four CSV feeds from HTTP or local files
// and decodes them into records.
package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/sapra/internal/common"
	"github.com/Veraticus/sapra/internal/config"
	"github.com/Veraticus/sapra/internal/service"
)

// Source opens a feed location for reading.
type Source interface {
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// HTTPSource fetches feeds over HTTP(S). Transport errors, 5xx and 429
// responses are retried.
type HTTPSource struct {
	client *http.Client
	retry  service.RetryOptions
}

// NewHTTPSource creates an HTTP source. A nil client uses one with the given timeout.
func NewHTTPSource(client *http.Client, timeout time.Duration, retry service.RetryOptions) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPSource{client: client, retry: retry}
}

// Open implements Source. The whole body is read before returning so a
// retry never hands back a half-consumed stream.
func (s *HTTPSource) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	var body []byte

	err := common.WithRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return common.Permanent(err)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", common.ErrRateLimit, location)
		case resp.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("%s: status %d", location, resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return common.Permanent(fmt.Errorf("%s: status %d", location, resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}, s.retry)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrFeedUnavailable, err)
	}

	return io.NopCloser(bytes.NewReader(body)), nil
}

// FileSource reads feeds from the local filesystem. Locations may use ~ and
// $VAR expansion.
type FileSource struct{}

// Open implements Source.
func (FileSource) Open(_ context.Context, location string) (io.ReadCloser, error) {
	f, err := os.Open(config.ExpandPath(location)) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrFeedUnavailable, err)
	}
	return f, nil
}

// MultiSource dispatches http(s) locations to HTTP and everything else to File.
type MultiSource struct {
	HTTP Source
	File Source
}

// Open implements Source.
func (m MultiSource) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return m.HTTP.Open(ctx, location)
	}
	return m.File.Open(ctx, location)
}

// NewDefaultSource returns a MultiSource backed by an HTTPSource with the
// default retry policy.
func NewDefaultSource(timeout time.Duration) MultiSource {
	return MultiSource{
		HTTP: NewHTTPSource(nil, timeout, service.DefaultRetryOptions()),
		File: FileSource{},
	}
}

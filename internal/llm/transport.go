package llm

import (
	"log/slog"
	"net/http"
	"time"

	"pdfagent/internal/contextutil"
)

// loggingTransport logs every chat completions request with the context logger.
type loggingTransport struct {
	next http.RoundTripper
}

// WithRequestLogging logs method, path, status and latency of every request.
// Apply it after WithHTTPClient or WithTimeout so it wraps the final client.
func WithRequestLogging() Option {
	return func(c *Client) {
		hc := *c.client
		next := hc.Transport
		if next == nil {
			next = http.DefaultTransport
		}
		hc.Transport = &loggingTransport{next: next}
		c.client = &hc
	}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	logger := contextutil.LoggerFromContext(ctx).With(
		"method", req.Method,
		"path", req.URL.Path,
	)

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		logger.WarnContext(ctx, "llm request failed", "duration_ms", duration.Milliseconds(), "error", err)
		return nil, err
	}

	// Only log non-200 responses above debug.
	level := slog.LevelDebug
	if resp.StatusCode != http.StatusOK {
		level = slog.LevelWarn
	}
	logger.Log(ctx, level, "llm request completed",
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	)
	return resp, nil
}

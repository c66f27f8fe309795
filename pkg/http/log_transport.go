package http

import (
	"net/http"
	"regexp"
	"time"

	"go.uber.org/zap"
)

// botTokenPattern matches the token segment of Telegram API paths
// (/bot<id>:<secret>/method)
var botTokenPattern = regexp.MustCompile(`/bot[0-9]+:[A-Za-z0-9_-]+`)

type logTransport struct {
	transport http.RoundTripper
	logger    *zap.Logger
}

func (t *logTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.transport.RoundTrip(req)

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("host", req.URL.Host),
		zap.String("path", RedactPath(req.URL.Path)),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		t.logger.Debug("HTTP outbound request failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	t.logger.Debug("HTTP outbound request", append(fields, zap.Int("status", resp.StatusCode))...)
	return resp, nil
}

// RedactPath hides bot tokens embedded in a URL path
func RedactPath(path string) string {
	return botTokenPattern.ReplaceAllString(path, "/bot<redacted>")
}

// WithRequestLogging logs method, host, redacted path, status and duration
// of every request at debug level. Bodies and headers are never logged.
func WithRequestLogging(logger *zap.Logger) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &logTransport{
			transport: rt,
			logger:    logger,
		}
	})
}

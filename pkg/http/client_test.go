package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRedactPath(t *testing.T) {
	tests := map[string]string{
		"/bot123456:AAH-abc_DEF/getUpdates": "/bot<redacted>/getUpdates",
		"/file/bot42:xyz/documents/a.pdf":   "/file/bot<redacted>/documents/a.pdf",
		"/health":                           "/health",
		"/botfather":                        "/botfather",
	}
	for in, want := range tests {
		assert.Equal(t, want, RedactPath(in), in)
	}
}

func TestRequestLogging_RedactsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	client := NewClient(WithRequestLogging(zap.New(core)))

	resp, err := client.Get(srv.URL + "/bot99:secret-token/sendMessage")
	require.NoError(t, err)
	resp.Body.Close()

	entries := logs.FilterMessage("HTTP outbound request").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "/bot<redacted>/sendMessage", fields["path"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, http.MethodGet, fields["method"])
}

func TestRequestLogging_Failure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	client := NewClient(WithRequestLogging(zap.New(core)), WithConnClientTimeout(100*time.Millisecond))

	_, err := client.Get("http://127.0.0.1:1/bot1:x/getMe")
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("HTTP outbound request failed").Len())
}

func TestLongPollClient_Timeouts(t *testing.T) {
	client := LongPollClient(60 * time.Second)
	assert.Equal(t, 75*time.Second, client.Timeout)

	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 75*time.Second, transport.ResponseHeaderTimeout)
	assert.Equal(t, 4, transport.MaxIdleConnsPerHost)
}

func TestLongPollOpts_BoundDialTimeout(t *testing.T) {
	cfg := defaultHTTPConfig()
	for _, opt := range longPollOpts(60 * time.Second) {
		opt(cfg)
	}
	assert.Equal(t, longPollDialTimeout, cfg.connClientTimeout)
	assert.Less(t, cfg.connClientTimeout, defaultHTTPConfig().connClientTimeout)
	assert.Equal(t, 75*time.Second, cfg.requestTimeout)
}

func TestNewClient_TransportsWrapInOrder(t *testing.T) {
	var order []string
	wrap := func(name string) TransportFunc {
		return func(next http.RoundTripper) http.RoundTripper {
			return roundTripFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	client := NewClient(WithTransport(wrap("inner")), WithTransport(wrap("outer")))
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, []string{"outer", "inner"}, order)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

package relay

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	feedURL = "https://news.example.com/feed.xml"
	feedRSS = `<rss><channel><item><title>A</title><link>http://x</link></item></channel></rss>`
)

type relayStub struct {
	server *httptest.Server
	hits   atomic.Int32
}

func newRelayStub(t *testing.T, handler http.HandlerFunc) *relayStub {
	t.Helper()
	stub := &relayStub{}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func envelopeHandler(t *testing.T, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, feedURL, r.URL.Query().Get("url"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func readerHandler(t *testing.T, status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+feedURL, r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func failingHandler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}
}

func TestFetchRawPrimarySucceeds(t *testing.T) {
	primary := newRelayStub(t, envelopeHandler(t, `{"contents":"<rss><channel></channel></rss>"}`))
	secondary := newRelayStub(t, readerHandler(t, http.StatusOK, feedRSS))

	service := New(Config{PrimaryURL: primary.server.URL, SecondaryURL: secondary.server.URL})
	body, err := service.FetchRaw(context.Background(), feedURL)

	require.NoError(t, err)
	assert.Equal(t, "<rss><channel></channel></rss>", body)
	assert.Equal(t, int32(0), secondary.hits.Load())
}

func TestFetchRawFallsBackToSecondary(t *testing.T) {
	tests := []struct {
		name    string
		primary http.HandlerFunc
	}{
		{"primary status error", failingHandler(http.StatusBadGateway)},
		{"envelope without contents", envelopeHandler(t, `{"status":{"http_code":200}}`)},
		{"envelope is not json", envelopeHandler(t, `<html>rate limited</html>`)},
		{"feed status error inside envelope", envelopeHandler(t, `{"contents":"","status":{"http_code":404}}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := newRelayStub(t, tt.primary)
			secondary := newRelayStub(t, readerHandler(t, http.StatusOK, feedRSS))

			service := New(Config{PrimaryURL: primary.server.URL, SecondaryURL: secondary.server.URL + "/"})
			body, err := service.FetchRaw(context.Background(), feedURL)

			require.NoError(t, err)
			assert.Equal(t, feedRSS, body)
			assert.Equal(t, int32(1), primary.hits.Load())
			assert.Equal(t, int32(1), secondary.hits.Load())
		})
	}
}

func TestFetchRawBothRelaysFail(t *testing.T) {
	primary := newRelayStub(t, failingHandler(http.StatusInternalServerError))
	secondary := newRelayStub(t, readerHandler(t, http.StatusForbidden, "denied"))

	service := New(Config{PrimaryURL: primary.server.URL, SecondaryURL: secondary.server.URL})
	body, err := service.FetchRaw(context.Background(), feedURL)

	assert.Empty(t, body)
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, feedURL, transportErr.URL)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "403")
}

func TestFetchRawMissingContentsIsWrapped(t *testing.T) {
	primary := newRelayStub(t, envelopeHandler(t, `{}`))
	secondary := newRelayStub(t, failingHandler(http.StatusServiceUnavailable))

	service := New(Config{PrimaryURL: primary.server.URL, SecondaryURL: secondary.server.URL})
	_, err := service.FetchRaw(context.Background(), feedURL)

	assert.ErrorIs(t, err, ErrMissingContents)
}

func TestFetchRawUsesCache(t *testing.T) {
	primary := newRelayStub(t, envelopeHandler(t, `{"contents":"cached"}`))
	secondary := newRelayStub(t, failingHandler(http.StatusInternalServerError))

	service := New(Config{PrimaryURL: primary.server.URL, SecondaryURL: secondary.server.URL, CacheTTL: time.Minute})
	for i := 0; i < 3; i++ {
		body, err := service.FetchRaw(context.Background(), feedURL)
		require.NoError(t, err)
		assert.Equal(t, "cached", body)
	}

	assert.Equal(t, int32(1), primary.hits.Load())
}

func TestFetchRawDoesNotCacheFailures(t *testing.T) {
	primary := newRelayStub(t, failingHandler(http.StatusInternalServerError))
	secondary := newRelayStub(t, failingHandler(http.StatusInternalServerError))

	service := New(Config{PrimaryURL: primary.server.URL, SecondaryURL: secondary.server.URL, CacheTTL: time.Minute})
	for i := 0; i < 2; i++ {
		_, err := service.FetchRaw(context.Background(), feedURL)
		require.Error(t, err)
	}

	assert.Equal(t, int32(2), primary.hits.Load())
	assert.Equal(t, int32(2), secondary.hits.Load())
}

func TestFetchRawSendsUserAgent(t *testing.T) {
	primary := newRelayStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "news-pulse/test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"contents":"ok"}`))
	})

	service := New(Config{PrimaryURL: primary.server.URL, SecondaryURL: primary.server.URL, UserAgent: "news-pulse/test"})
	_, err := service.FetchRaw(context.Background(), feedURL)

	require.NoError(t, err)
}

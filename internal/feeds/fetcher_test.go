package feeds

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
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testHTTPClient() *http.Client {
	return &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
}

func newTestFetcher(url string, opts ...Option) *Fetcher {
	opts = append([]Option{WithBaseURL(url), WithHTTPClient(testHTTPClient())}, opts...)
	return newFetcher("test", url, opts...)
}

func TestResultValueOr(t *testing.T) {
	ok := Result[int]{Value: 7}
	assert.True(t, ok.OK())
	assert.Equal(t, 7, ok.ValueOr(-1))

	failed := Result[int]{Value: 7, Err: &FetchError{Source: "x", Kind: KindNetwork}}
	assert.False(t, failed.OK())
	assert.Equal(t, -1, failed.ValueOr(-1))
}

func TestFetchErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &FetchError{Source: "noaa", Kind: KindStatus, Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "noaa: status: boom", err.Error())
	assert.Equal(t, "noaa: circuit_open", (&FetchError{Source: "noaa", Kind: KindCircuitOpen}).Error())
}

func TestGetJSONClassifiesFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		kind    ErrorKind
	}{
		{
			name: "status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", http.StatusInternalServerError)
			},
			kind: KindStatus,
		},
		{
			name: "malformed",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("{not json"))
			},
			kind: KindMalformed,
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
			kind: KindTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			f := newTestFetcher(srv.URL, WithTimeout(100*time.Millisecond))
			var out map[string]any
			ferr := f.getJSON(context.Background(), srv.URL, &out)
			require.NotNil(t, ferr)
			assert.Equal(t, tt.kind, ferr.Kind)
			assert.Equal(t, "test", ferr.Source)
		})
	}
}

func TestGetJSONNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	f := newTestFetcher(url)
	var out map[string]any
	ferr := f.getJSON(context.Background(), url, &out)
	require.NotNil(t, ferr)
	assert.Equal(t, KindNetwork, ferr.Kind)
}

func TestGetJSONSetsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	ferr := newTestFetcher(srv.URL).getJSON(context.Background(), srv.URL, &out)
	require.Nil(t, ferr)
	assert.True(t, out.OK)
}

func TestGetJSONBreakerOpens(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	breaker := NewBreaker("test", 2, time.Hour)
	f := newTestFetcher(srv.URL, WithBreaker(breaker))

	var out map[string]any
	for i := 0; i < 2; i++ {
		ferr := f.getJSON(context.Background(), srv.URL, &out)
		require.NotNil(t, ferr)
		assert.Equal(t, KindStatus, ferr.Kind)
	}
	assert.Equal(t, Open, breaker.State())

	ferr := f.getJSON(context.Background(), srv.URL, &out)
	require.NotNil(t, ferr)
	assert.Equal(t, KindCircuitOpen, ferr.Kind)
	assert.Equal(t, int64(2), hits.Load(), "open circuit does not reach the server")
}

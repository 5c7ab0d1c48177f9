// Package feeds implements the best-effort network sources: satellite passes
// from N2YO, planetary Kp from NOAA SWPC and current weather from Open-Meteo.
// Every call returns a Result whose Value is the documented default on failure.
package feeds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "AstroSky/1.0"
)

type ErrorKind string

const (
	KindMissingCredential ErrorKind = "missing_credential"
	KindNetwork           ErrorKind = "network"
	KindTimeout           ErrorKind = "timeout"
	KindStatus            ErrorKind = "status"
	KindMalformed         ErrorKind = "malformed"
	KindCircuitOpen       ErrorKind = "circuit_open"
)

// FetchError describes why a feed could not deliver data.
type FetchError struct {
	Source string
	Kind   ErrorKind
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Source, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Result carries a feed value together with the fetch outcome. Value holds
// the feed's default whenever Err is set.
type Result[T any] struct {
	Value     T
	Err       *FetchError
	FetchedAt time.Time
	Duration  time.Duration
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}

func (r Result[T]) ValueOr(def T) T {
	if r.Err != nil {
		return def
	}
	return r.Value
}

// Fetcher performs JSON GET requests for a single named source, guarded by an
// optional circuit breaker.
type Fetcher struct {
	source    string
	baseURL   string
	client    *http.Client
	timeout   time.Duration
	userAgent string
	breaker   *Breaker
}

type Option func(*Fetcher)

func WithBaseURL(url string) Option {
	return func(f *Fetcher) {
		f.baseURL = url
	}
}

func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

func WithBreaker(b *Breaker) Option {
	return func(f *Fetcher) {
		f.breaker = b
	}
}

func newFetcher(source, defaultURL string, opts ...Option) *Fetcher {
	f := &Fetcher{
		source:    source,
		baseURL:   defaultURL,
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}
	return f
}

func (f *Fetcher) Source() string {
	return f.source
}

// Breaker returns the fetcher's circuit breaker, or nil.
func (f *Fetcher) Breaker() *Breaker {
	return f.breaker
}

func (f *Fetcher) fail(kind ErrorKind, err error) *FetchError {
	return &FetchError{Source: f.source, Kind: kind, Err: err}
}

// getJSON fetches url and decodes the body into v.
func (f *Fetcher) getJSON(ctx context.Context, url string, v any) *FetchError {
	if f.breaker != nil && !f.breaker.Allow() {
		observeFetch(f.source, KindCircuitOpen, 0)
		return f.fail(KindCircuitOpen, nil)
	}

	start := time.Now()
	ferr := f.doJSON(ctx, url, v)
	elapsed := time.Since(start)

	if ferr != nil {
		observeFetch(f.source, ferr.Kind, elapsed)
		if f.breaker != nil {
			f.breaker.RecordFailure()
		}
		slog.Warn("feed fetch failed", "source", f.source, "kind", ferr.Kind, "error", ferr.Err)
		return ferr
	}

	observeFetch(f.source, "", elapsed)
	if f.breaker != nil {
		f.breaker.RecordSuccess()
	}
	return nil
}

func (f *Fetcher) doJSON(ctx context.Context, url string, v any) *FetchError {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return f.fail(KindNetwork, fmt.Errorf("error creating request: %w", err))
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return f.fail(KindTimeout, err)
		}
		return f.fail(KindNetwork, fmt.Errorf("error while doing request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return f.fail(KindStatus, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		if isTimeout(err) {
			return f.fail(KindTimeout, err)
		}
		return f.fail(KindMalformed, fmt.Errorf("error decoding resp.Body: %w", err))
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

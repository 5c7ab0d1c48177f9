package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr1hm/go-astrosky/internal/models"
)

func TestKpPollerStartStop(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(kpObjectFeed))
	}))
	defer srv.Close()

	poller := NewKpPoller(newTestAurora(srv.URL), time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	poller.Start(ctx)

	require.Eventually(t, func() bool {
		_, _, ok := poller.Latest()
		return ok
	}, time.Second, 10*time.Millisecond)

	kp, fetchedAt, ok := poller.Latest()
	require.True(t, ok)
	assert.Equal(t, 4.67, kp.Current)
	assert.False(t, fetchedAt.IsZero())

	res := poller.Forecast(context.Background(), models.Location{Lat: 60, Lon: 10})
	assert.True(t, res.OK())
	assert.Equal(t, 4.7, res.Value.KpCurrent)
	assert.Equal(t, int64(1), hits.Load(), "forecast served from cache")

	cancel()
	poller.Stop()
}

func TestKpPollerFallsBackToClient(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(kpArrayFeed))
	}))
	defer srv.Close()

	poller := NewKpPoller(newTestAurora(srv.URL), time.Minute)

	_, _, ok := poller.Latest()
	assert.False(t, ok, "nothing cached before the first poll")

	res := poller.Forecast(context.Background(), models.Location{Lat: 60, Lon: 10})
	assert.True(t, res.OK())
	assert.Equal(t, 4.0, res.Value.KpCurrent)
	assert.Equal(t, int64(1), hits.Load())
}

func TestKpPollerKeepsLastGoodReading(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(kpObjectFeed))
	}))
	defer srv.Close()

	poller := NewKpPoller(newTestAurora(srv.URL), time.Minute)
	poller.poll(context.Background())

	fail.Store(true)
	poller.poll(context.Background())

	kp, _, ok := poller.Latest()
	require.True(t, ok)
	assert.Equal(t, 4.67, kp.Current)
}

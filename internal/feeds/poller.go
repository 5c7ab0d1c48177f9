package feeds

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mr1hm/go-astrosky/internal/models"
)

// KpPoller refreshes the Kp reading on an interval and serves forecasts from
// the cached value while it is fresh.
type KpPoller struct {
	client   *AuroraClient
	interval time.Duration
	wg       sync.WaitGroup

	mu        sync.RWMutex
	latest    KpReading
	fetchedAt time.Time
}

func NewKpPoller(client *AuroraClient, interval time.Duration) *KpPoller {
	return &KpPoller{
		client:   client,
		interval: interval,
	}
}

func (p *KpPoller) Start(ctx context.Context) {
	p.wg.Add(1)
	go p.run(ctx)
}

func (p *KpPoller) run(ctx context.Context) {
	defer p.wg.Done()
	slog.Info("starting poller", "source", p.client.Source(), "interval", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("poller shutting down", "source", p.client.Source())
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *KpPoller) poll(ctx context.Context) {
	slog.Debug("polling", "source", p.client.Source())

	res := p.client.FetchKp(ctx)
	if !res.OK() {
		return
	}

	p.mu.Lock()
	p.latest = res.Value
	p.fetchedAt = res.FetchedAt
	p.mu.Unlock()

	slog.Debug("poll complete", "source", p.client.Source(), "kp", res.Value.Current)
}

// Latest returns the cached reading if one was fetched within two intervals.
func (p *KpPoller) Latest() (KpReading, time.Time, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.fetchedAt.IsZero() || time.Since(p.fetchedAt) > 2*p.interval {
		return KpReading{}, time.Time{}, false
	}
	return p.latest, p.fetchedAt, true
}

func (p *KpPoller) Forecast(ctx context.Context, loc models.Location) Result[models.AuroraForecast] {
	if kp, fetchedAt, ok := p.Latest(); ok {
		return Result[models.AuroraForecast]{
			Value:     BuildAuroraForecast(loc.Lat, kp),
			FetchedAt: fetchedAt,
		}
	}
	return p.client.Forecast(ctx, loc)
}

func (p *KpPoller) Stop() {
	p.wg.Wait()
	slog.Info("kp poller stopped")
}

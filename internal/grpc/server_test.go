package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	"github.com/mr1hm/go-astrosky/internal/feeds"
)

func startHealthServer(t *testing.T, breakers ...*feeds.Breaker) healthpb.HealthClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := NewServer(NewBroadcaster())
	srv.Track(breakers...)

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan struct{})
	go func() {
		srv.Run(ctx)
		close(runDone)
	}()
	serveDone := make(chan struct{})
	go func() {
		srv.Serve(lis)
		close(serveDone)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		cancel()
		<-runDone
		srv.Stop()
		<-serveDone
	})
	return healthpb.NewHealthClient(conn)
}

func statusOf(client healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN
	}
	return resp.Status
}

func check(t *testing.T, client healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.Status
}

func TestServer_OverallServing(t *testing.T) {
	client := startHealthServer(t)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, client, ""))
}

func TestServer_FeedFollowsBreaker(t *testing.T) {
	noaa := feeds.NewBreaker(feeds.SourceNOAA, 2, time.Hour)
	n2yo := feeds.NewBreaker(feeds.SourceN2YO, 2, time.Hour)
	client := startHealthServer(t, noaa, n2yo)

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, client, "astrosky.feeds.noaa"))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, client, "astrosky.feeds.n2yo"))

	noaa.RecordFailure()
	noaa.RecordFailure()

	require.Eventually(t, func() bool {
		return statusOf(client, "astrosky.feeds.noaa") == healthpb.HealthCheckResponse_NOT_SERVING
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, client, "astrosky.feeds.n2yo"))

	noaa.RecordSuccess()
	require.Eventually(t, func() bool {
		return statusOf(client, "astrosky.feeds.noaa") == healthpb.HealthCheckResponse_SERVING
	}, 2*time.Second, 10*time.Millisecond)
}

func TestServer_UnknownServiceNotFound(t *testing.T) {
	client := startHealthServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: "astrosky.feeds.unknown"})
	assert.Error(t, err)
}

func TestServingStatus(t *testing.T) {
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, servingStatus(feeds.Closed))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, servingStatus(feeds.Open))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, servingStatus(feeds.HalfOpen))
}

func TestServiceName(t *testing.T) {
	assert.Equal(t, "astrosky.feeds.openmeteo", ServiceName(feeds.SourceOpenMeteo))
}

// Package grpc exposes the standard grpc.health.v1 service, with one
// service name per upstream feed whose status follows that feed's circuit
// breaker.
package grpc

import (
	"context"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/mr1hm/go-astrosky/internal/feeds"
)

const servicePrefix = "astrosky.feeds."

// ServiceName returns the health service name for a feed, e.g.
// "astrosky.feeds.noaa".
func ServiceName(feed string) string {
	return servicePrefix + feed
}

type Server struct {
	health      *health.Server
	broadcaster *Broadcaster
	subID       uint64
	updates     chan FeedStatus
	grpcServer  *grpc.Server
}

// NewServer subscribes to broadcaster right away so no transition is missed
// before Run starts.
func NewServer(broadcaster *Broadcaster) *Server {
	s := &Server{
		health:      health.NewServer(),
		broadcaster: broadcaster,
	}
	s.subID, s.updates = broadcaster.Subscribe()
	s.grpcServer = grpc.NewServer()
	healthpb.RegisterHealthServer(s.grpcServer, s.health)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return s
}

// Track publishes each breaker's current state and broadcasts its later
// transitions. Run applies them to the health service.
func (s *Server) Track(breakers ...*feeds.Breaker) {
	for _, b := range breakers {
		if b == nil {
			continue
		}
		state := b.State()
		s.health.SetServingStatus(ServiceName(b.Name()), servingStatus(state))
		// seed the broadcaster so a repeat of the starting state is dropped
		s.broadcaster.Broadcast(FeedStatus{Feed: b.Name(), From: state, To: state, At: time.Now()})
		b.OnStateChange(func(name string, from, to feeds.BreakerState) {
			s.broadcaster.Broadcast(FeedStatus{Feed: name, From: from, To: to, At: time.Now()})
		})
	}
}

// Run consumes feed status changes until ctx is done or the broadcaster is
// closed.
func (s *Server) Run(ctx context.Context) {
	defer s.broadcaster.Unsubscribe(s.subID)

	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-s.updates:
			if !ok {
				return
			}
			status := servingStatus(st.To)
			s.health.SetServingStatus(ServiceName(st.Feed), status)
			slog.Info("feed health updated", "feed", st.Feed, "status", status.String())
		}
	}
}

func (s *Server) Start(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	slog.Info("gRPC server listening", "addr", addr)
	return s.Serve(lis)
}

func (s *Server) Serve(lis net.Listener) error {
	return s.grpcServer.Serve(lis)
}

func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}

// A feed only reports SERVING while its breaker is closed.
func servingStatus(state feeds.BreakerState) healthpb.HealthCheckResponse_ServingStatus {
	if state == feeds.Closed {
		return healthpb.HealthCheckResponse_SERVING
	}
	return healthpb.HealthCheckResponse_NOT_SERVING
}

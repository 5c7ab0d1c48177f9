package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mr1hm/go-astrosky/internal/api"
	"github.com/mr1hm/go-astrosky/internal/config"
	"github.com/mr1hm/go-astrosky/internal/ephem"
	"github.com/mr1hm/go-astrosky/internal/feeds"
	internalgrpc "github.com/mr1hm/go-astrosky/internal/grpc"
	"github.com/mr1hm/go-astrosky/internal/logging"
	"github.com/mr1hm/go-astrosky/internal/report"
	"github.com/mr1hm/go-astrosky/internal/repository"
	"github.com/mr1hm/go-astrosky/internal/sky"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port, "version", api.Version)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := cfg.Feeds
	n2yoBreaker := feeds.NewBreaker(feeds.SourceN2YO, f.BreakerThreshold, f.BreakerCooldown)
	noaaBreaker := feeds.NewBreaker(feeds.SourceNOAA, f.BreakerThreshold, f.BreakerCooldown)
	weatherBreaker := feeds.NewBreaker(feeds.SourceOpenMeteo, f.BreakerThreshold, f.BreakerCooldown)

	passes := feeds.NewN2YOClient(f.N2YOAPIKey, cfg.Worker.SatelliteWorkers,
		feeds.WithBaseURL(f.N2YOURL), feeds.WithTimeout(f.Timeout), feeds.WithBreaker(n2yoBreaker))
	weather := feeds.NewWeatherClient(
		feeds.WithBaseURL(f.OpenMeteoURL), feeds.WithTimeout(f.WeatherTimeout), feeds.WithBreaker(weatherBreaker))
	aurora := feeds.NewAuroraClient(
		feeds.WithBaseURL(f.NOAAKpURL), feeds.WithTimeout(f.Timeout), feeds.WithBreaker(noaaBreaker))

	// Kp changes slowly, so forecasts are served from a polled cache
	poller := feeds.NewKpPoller(aurora, f.KpPollInterval)
	poller.Start(ctx)

	builder := report.NewBuilder(sky.New(ephem.New()), passes, weather, poller)

	// Feed health over gRPC, driven by breaker transitions
	broadcaster := internalgrpc.NewBroadcaster()
	var grpcServer *internalgrpc.Server
	if cfg.GRPC.Enabled {
		grpcServer = internalgrpc.NewServer(broadcaster)
		grpcServer.Track(n2yoBreaker, noaaBreaker, weatherBreaker)
		go grpcServer.Run(ctx)
		go func() {
			grpcAddr := fmt.Sprintf(":%d", cfg.GRPC.Port)
			if err := grpcServer.Start(grpcAddr); err != nil {
				logging.Fatalf("gRPC server error: %v", err)
			}
		}()
	}

	// Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.MetricsMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))
	// before the limiter, so scrapes are never throttled
	api.RegisterMetrics(router)
	router.Use(api.RateLimitMiddleware(cfg.HTTP.RateLimitRPS))

	handler := api.NewHandler(api.Deps{
		Reports:    builder,
		Satellites: passes,
		Weather:    weather,
		Aurora:     poller,
		Repo:       db,
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	cancel()
	poller.Stop()
	broadcaster.Close()
	if grpcServer != nil {
		grpcServer.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}

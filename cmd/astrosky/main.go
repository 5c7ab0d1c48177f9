// Command astrosky prints what is visible in the night sky from a location.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mr1hm/go-astrosky/internal/config"
	"github.com/mr1hm/go-astrosky/internal/ephem"
	"github.com/mr1hm/go-astrosky/internal/feeds"
	"github.com/mr1hm/go-astrosky/internal/locations"
	"github.com/mr1hm/go-astrosky/internal/logging"
	"github.com/mr1hm/go-astrosky/internal/models"
	"github.com/mr1hm/go-astrosky/internal/render"
	"github.com/mr1hm/go-astrosky/internal/report"
	"github.com/mr1hm/go-astrosky/internal/sky"
)

const usage = `astrosky - see what's visible in the night sky tonight

Usage:
  astrosky tonight    [--lat N --lon N | -l NAME] [--date YYYY-MM-DD] [--at HH:MM]
                      [--only a,b] [--exclude a,b] [--conditions] [--json] [--no-color]
  astrosky events     [--lat N --lon N | -l NAME] [--days 1-30] [--type TYPE] [--json] [--no-color]
  astrosky satellites [--lat N --lon N | -l NAME] [--days 1-10] [--json] [--no-color]
  astrosky location add NAME LAT LON [--default]
  astrosky location list
  astrosky location remove NAME
  astrosky location set-default NAME
`

// usageError is reported with exit status 2.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// app carries everything a subcommand needs.
type app struct {
	stdout  io.Writer
	stderr  io.Writer
	store   *locations.Store
	builder *report.Builder
	sats    satelliteSource
	now     func() time.Time
	color   func(noColor bool) bool
}

type satelliteSource interface {
	SatellitePasses(ctx context.Context, loc models.Location, days, minVisibility, maxResults int) feeds.Result[models.SatelliteInfo]
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "astrosky: %v\n", err)
		os.Exit(1)
	}
	// Logs go to stderr so --json output on stdout stays parseable.
	logging.SetupWriter(os.Stderr, cfg.Logging.Level)

	storePath := cfg.Locations.Path
	if storePath == "" {
		if storePath, err = locations.DefaultPath(); err != nil {
			logging.Fatalf("Failed to resolve locations file: %v", err)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a := newApp(cfg, locations.NewStore(storePath))
	os.Exit(a.run(ctx, os.Args[1:]))
}

func newApp(cfg *config.Config, store *locations.Store) *app {
	f := cfg.Feeds
	passes := feeds.NewN2YOClient(f.N2YOAPIKey, cfg.Worker.SatelliteWorkers,
		feeds.WithBaseURL(f.N2YOURL), feeds.WithTimeout(f.Timeout))
	weather := feeds.NewWeatherClient(feeds.WithBaseURL(f.OpenMeteoURL), feeds.WithTimeout(f.WeatherTimeout))
	aurora := feeds.NewAuroraClient(feeds.WithBaseURL(f.NOAAKpURL), feeds.WithTimeout(f.Timeout))

	return &app{
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		store:   store,
		builder: report.NewBuilder(sky.New(ephem.New()), passes, weather, aurora),
		sats:    passes,
		now:     time.Now,
		color: func(noColor bool) bool {
			return render.ColorEnabled(noColor, os.Stdout)
		},
	}
}

// run dispatches args to a subcommand and returns the process exit status.
func (a *app) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(a.stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "tonight":
		err = a.tonight(ctx, args[1:])
	case "events":
		err = a.events(args[1:])
	case "satellites":
		err = a.satellites(ctx, args[1:])
	case "location":
		err = a.location(args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(a.stdout, usage)
		return 0
	default:
		err = usagef("unknown command %q", args[0])
	}

	var uerr *usageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &uerr):
		fmt.Fprintf(a.stderr, "Error: %v\n\n%s", err, usage)
		return 2
	default:
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
}

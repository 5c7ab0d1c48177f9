package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/mr1hm/go-astrosky/internal/feeds"
	"github.com/mr1hm/go-astrosky/internal/locations"
	"github.com/mr1hm/go-astrosky/internal/models"
	"github.com/mr1hm/go-astrosky/internal/render"
	"github.com/mr1hm/go-astrosky/internal/report"
)

const maxSatelliteDays = 10

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return usagef("%s: %v", fs.Name(), err)
	}
	if fs.NArg() > 0 {
		return usagef("%s: unexpected argument %q", fs.Name(), fs.Arg(0))
	}
	return nil
}

type locationFlags struct {
	lat, lon float64
	name     string
}

func addLocationFlags(fs *flag.FlagSet) *locationFlags {
	lf := &locationFlags{}
	fs.Float64Var(&lf.lat, "lat", 0, "Latitude (-90 to 90)")
	fs.Float64Var(&lf.lon, "lon", 0, "Longitude (-180 to 180)")
	fs.StringVar(&lf.name, "l", "", "Use saved location")
	fs.StringVar(&lf.name, "location", "", "Use saved location")
	return lf
}

// resolveLocation picks explicit coordinates first, then a named location,
// then the default one.
func (a *app) resolveLocation(fs *flag.FlagSet, lf *locationFlags) (models.Location, error) {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	switch {
	case set["lat"] && set["lon"]:
		loc, err := models.NewLocation(lf.lat, lf.lon)
		if err != nil {
			return models.Location{}, usagef("%v", err)
		}
		return loc, nil
	case set["lat"] || set["lon"]:
		return models.Location{}, usagef("--lat and --lon must be given together")
	case lf.name != "":
		loc, err := a.store.Get(lf.name)
		if errors.Is(err, locations.ErrNotFound) {
			return models.Location{}, fmt.Errorf("location '%s' not found. Run 'astrosky location list' to see saved locations", lf.name)
		}
		return loc, err
	}

	site, err := a.store.Default()
	if errors.Is(err, locations.ErrNotFound) {
		return models.Location{}, usagef("location required. Use --lat/--lon, --location <name>, or set a default with:\n" +
			"  astrosky location add <name> <lat> <lon> --default")
	}
	if err != nil {
		return models.Location{}, err
	}
	slog.Debug("using default location", "name", site.Name)
	return site.Location, nil
}

func (a *app) tonight(ctx context.Context, args []string) error {
	fs := newFlagSet("tonight")
	lf := addLocationFlags(fs)
	date := fs.String("date", "", "Date (YYYY-MM-DD)")
	at := fs.String("at", "", "Time (HH:MM, UTC)")
	only := fs.String("only", "", "Only show these sections (comma-separated)")
	exclude := fs.String("exclude", "", "Hide these sections (comma-separated)")
	conditions := fs.Bool("conditions", false, "Include weather and aurora conditions")
	asJSON := fs.Bool("json", false, "Output as JSON")
	noColor := fs.Bool("no-color", false, "Disable colored output")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	loc, err := a.resolveLocation(fs, lf)
	if err != nil {
		return err
	}

	opts := report.Options{AtTime: *at, Conditions: *conditions}
	if opts.Only, err = report.ParseSectionList(*only); err != nil {
		return usagef("--only: %v", err)
	}
	if opts.Exclude, err = report.ParseSectionList(*exclude); err != nil {
		return usagef("--exclude: %v", err)
	}

	day := a.now().UTC()
	if *date != "" {
		if day, err = time.Parse("2006-01-02", *date); err != nil {
			return usagef("--date must be YYYY-MM-DD, got %q", *date)
		}
	}

	rep, err := a.builder.Build(ctx, loc, day, opts)
	if errors.Is(err, report.ErrInvalidTime) {
		return usagef("--at: %v", err)
	}
	if err != nil {
		return err
	}

	if *asJSON {
		return render.JSON(a.stdout, rep)
	}
	return render.New(a.color(*noColor)).Report(a.stdout, rep, opts)
}

func (a *app) events(args []string) error {
	fs := newFlagSet("events")
	lf := addLocationFlags(fs)
	days := fs.Int("days", report.DefaultEventDays, "Days to look ahead (1-30)")
	eventType := fs.String("type", "", "Filter by type: conjunction, opposition, moon, seasonal")
	asJSON := fs.Bool("json", false, "Output as JSON")
	noColor := fs.Bool("no-color", false, "Disable colored output")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *days < 1 || *days > report.MaxEventDays {
		return usagef("--days must be between 1 and %d", report.MaxEventDays)
	}
	filter, err := report.ParseEventFilter(*eventType)
	if err != nil {
		return usagef("--type: %v", err)
	}

	loc, err := a.resolveLocation(fs, lf)
	if err != nil {
		return err
	}

	start := a.now().UTC()
	evs := a.builder.Events(loc, start, *days, filter)
	if *asJSON {
		return render.JSON(a.stdout, evs)
	}
	return render.New(a.color(*noColor)).Events(a.stdout, evs, start, *days)
}

func (a *app) satellites(ctx context.Context, args []string) error {
	fs := newFlagSet("satellites")
	lf := addLocationFlags(fs)
	days := fs.Int("days", feeds.DefaultSatelliteDays, "Days to look ahead (1-10)")
	asJSON := fs.Bool("json", false, "Output as JSON")
	noColor := fs.Bool("no-color", false, "Disable colored output")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *days < 1 || *days > maxSatelliteDays {
		return usagef("--days must be between 1 and %d", maxSatelliteDays)
	}

	loc, err := a.resolveLocation(fs, lf)
	if err != nil {
		return err
	}

	res := a.sats.SatellitePasses(ctx, loc, *days,
		feeds.DefaultSatelliteMinVisibility, feeds.DefaultSatelliteMaxResults)
	if res.Err != nil && res.Err.Kind == feeds.KindMissingCredential {
		fmt.Fprintln(a.stderr, "N2YO_API_KEY is not set; satellite passes are unavailable.")
	}

	if *asJSON {
		return render.JSON(a.stdout, res.Value)
	}
	return render.New(a.color(*noColor)).Satellites(a.stdout, res.Value)
}

func (a *app) location(args []string) error {
	if len(args) == 0 {
		return usagef("location: missing subcommand (add, list, remove, set-default)")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "add":
		return a.locationAdd(rest)
	case "list":
		return a.locationList()
	case "remove":
		if len(rest) != 1 {
			return usagef("location remove NAME")
		}
		err := a.store.Remove(rest[0])
		if errors.Is(err, locations.ErrNotFound) {
			return fmt.Errorf("location '%s' not found", rest[0])
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Removed location '%s'\n", rest[0])
	case "set-default":
		if len(rest) != 1 {
			return usagef("location set-default NAME")
		}
		err := a.store.SetDefault(rest[0])
		if errors.Is(err, locations.ErrNotFound) {
			return fmt.Errorf("location '%s' not found. Add it first with: astrosky location add %s <lat> <lon>", rest[0], rest[0])
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Default location set to '%s'\n", rest[0])
	default:
		return usagef("location: unknown subcommand %q", sub)
	}
	return nil
}

// locationAdd scans its arguments by hand: the flag package stops at the
// first positional, and a negative longitude looks like a flag.
func (a *app) locationAdd(args []string) error {
	var positional []string
	makeDefault := false
	for _, arg := range args {
		if arg == "--default" || arg == "-default" {
			makeDefault = true
			continue
		}
		positional = append(positional, arg)
	}
	if len(positional) != 3 {
		return usagef("location add NAME LAT LON [--default]")
	}

	name := positional[0]
	lat, err := strconv.ParseFloat(positional[1], 64)
	if err != nil {
		return usagef("invalid latitude: %s", positional[1])
	}
	lon, err := strconv.ParseFloat(positional[2], 64)
	if err != nil {
		return usagef("invalid longitude: %s", positional[2])
	}
	loc, err := models.NewLocation(lat, lon)
	if err != nil {
		return usagef("%v", err)
	}

	err = a.store.Add(name, loc, makeDefault)
	if errors.Is(err, locations.ErrExists) {
		return fmt.Errorf("location '%s' already exists. Remove it first with: astrosky location remove %s", name, name)
	}
	if err != nil {
		return err
	}

	coords := render.FormatLocation(lat, lon, 4)
	if makeDefault {
		fmt.Fprintf(a.stdout, "Saved location '%s' (%s) as default\n", name, coords)
	} else {
		fmt.Fprintf(a.stdout, "Saved location '%s' (%s)\n", name, coords)
	}
	return nil
}

func (a *app) locationList() error {
	sites, err := a.store.List()
	if err != nil {
		return err
	}
	if len(sites) == 0 {
		fmt.Fprintln(a.stdout, "No saved locations. Add one with: astrosky location add <name> <lat> <lon>")
		return nil
	}
	for _, s := range sites {
		marker := "  "
		if s.IsDefault {
			marker = "* "
		}
		fmt.Fprintf(a.stdout, "%s%s  %s\n", marker, s.Name, render.FormatLocation(s.Location.Lat, s.Location.Lon, 4))
	}
	return nil
}

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-astrosky/internal/feeds"
	"github.com/mr1hm/go-astrosky/internal/models"
	"github.com/mr1hm/go-astrosky/internal/report"
	"github.com/mr1hm/go-astrosky/internal/repository"
)

const Version = "0.3.0"

const maxSatelliteDays = 10

type ReportService interface {
	Build(ctx context.Context, loc models.Location, date time.Time, opts report.Options) (*models.Report, error)
	Events(loc models.Location, start time.Time, days int, filter report.EventFilter) []models.AstroEvent
}

type SatelliteSource interface {
	SatellitePasses(ctx context.Context, loc models.Location, days, minVisibility, maxResults int) feeds.Result[models.SatelliteInfo]
}

// Deps are the handler's collaborators. Any nil feed source makes its
// endpoint answer with the feed's default value.
type Deps struct {
	Reports    ReportService
	Satellites SatelliteSource
	Weather    report.WeatherSource
	Aurora     feeds.AuroraSource
	Repo       repository.ObservationRepository
	Now        func() time.Time
}

type Handler struct {
	reports    ReportService
	satellites SatelliteSource
	weather    report.WeatherSource
	aurora     feeds.AuroraSource
	repo       repository.ObservationRepository
	now        func() time.Time
}

func NewHandler(d Deps) *Handler {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &Handler{
		reports:    d.Reports,
		satellites: d.Satellites,
		weather:    d.Weather,
		aurora:     d.Aurora,
		repo:       d.Repo,
		now:        now,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)

	g := r.Group("/api")
	g.GET("/health", h.health)
	g.GET("/report", h.getReport)
	g.GET("/events", h.getEvents)
	g.GET("/satellites", h.getSatellites)
	g.GET("/aurora", h.getAurora)
	g.GET("/weather", h.getWeather)

	g.POST("/observations/sync", h.syncObservations)
	g.GET("/observations/mine", h.myObservations)
	g.GET("/observations/nearby", h.nearbyObservations)
	g.DELETE("/observations/:id", h.deleteObservation)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": Version})
}

func (h *Handler) getReport(c *gin.Context) {
	loc, ok := locationParams(c)
	if !ok {
		return
	}

	date := h.now().UTC()
	if d := c.Query("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			abortError(c, http.StatusUnprocessableEntity, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	opts := report.Options{AtTime: c.Query("at")}
	var err error
	if opts.Only, err = report.ParseSectionList(c.Query("only")); err != nil {
		abortError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if opts.Exclude, err = report.ParseSectionList(c.Query("exclude")); err != nil {
		abortError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if v := c.Query("conditions"); v != "" {
		if opts.Conditions, err = strconv.ParseBool(v); err != nil {
			abortError(c, http.StatusUnprocessableEntity, "conditions must be a boolean")
			return
		}
	}

	rep, err := h.reports.Build(c.Request.Context(), loc, date, opts)
	switch {
	case errors.Is(err, report.ErrDataUnavailable):
		abortError(c, http.StatusServiceUnavailable, "sky data unavailable for this date")
		return
	case errors.Is(err, report.ErrInvalidTime), errors.Is(err, models.ErrInvalidLocation):
		abortError(c, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		abortError(c, http.StatusInternalServerError, "failed to build report")
		return
	}

	c.JSON(http.StatusOK, rep)
}

func (h *Handler) getEvents(c *gin.Context) {
	loc, ok := locationParams(c)
	if !ok {
		return
	}
	days, ok := intParam(c, "days", report.DefaultEventDays, 1, report.MaxEventDays)
	if !ok {
		return
	}
	filter, err := report.ParseEventFilter(c.Query("type"))
	if err != nil {
		abortError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	c.JSON(http.StatusOK, h.reports.Events(loc, h.now().UTC(), days, filter))
}

func (h *Handler) getSatellites(c *gin.Context) {
	loc, ok := locationParams(c)
	if !ok {
		return
	}
	days, ok := intParam(c, "days", feeds.DefaultSatelliteDays, 1, maxSatelliteDays)
	if !ok {
		return
	}

	info := models.SatelliteInfo{Passes: []models.SatellitePass{}}
	if h.satellites != nil {
		res := h.satellites.SatellitePasses(c.Request.Context(), loc, days,
			feeds.DefaultSatelliteMinVisibility, feeds.DefaultSatelliteMaxResults)
		info = res.Value
	}
	c.JSON(http.StatusOK, info)
}

func (h *Handler) getAurora(c *gin.Context) {
	loc, ok := locationParams(c)
	if !ok {
		return
	}

	forecast := feeds.BuildAuroraForecast(loc.Lat, feeds.DefaultKpReading())
	if h.aurora != nil {
		forecast = h.aurora.Forecast(c.Request.Context(), loc).Value
	}
	c.JSON(http.StatusOK, forecast)
}

func (h *Handler) getWeather(c *gin.Context) {
	loc, ok := locationParams(c)
	if !ok {
		return
	}

	conditions := feeds.UnknownConditions()
	if h.weather != nil {
		conditions = h.weather.Conditions(c.Request.Context(), loc, h.now()).Value
	}
	c.JSON(http.StatusOK, conditions)
}

func abortError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// locationParams reads the required lat and lon query parameters, answering
// 422 itself when they are missing or out of range.
func locationParams(c *gin.Context) (models.Location, bool) {
	lat, ok := floatParam(c, "lat")
	if !ok {
		return models.Location{}, false
	}
	lon, ok := floatParam(c, "lon")
	if !ok {
		return models.Location{}, false
	}
	loc, err := models.NewLocation(lat, lon)
	if err != nil {
		abortError(c, http.StatusUnprocessableEntity, err.Error())
		return models.Location{}, false
	}
	return loc, true
}

func floatParam(c *gin.Context, name string) (float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		abortError(c, http.StatusUnprocessableEntity, name+" is required")
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		abortError(c, http.StatusUnprocessableEntity, name+" must be a number")
		return 0, false
	}
	return v, true
}

func intParam(c *gin.Context, name string, def, lo, hi int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		abortError(c, http.StatusUnprocessableEntity,
			name+" must be an integer between "+strconv.Itoa(lo)+" and "+strconv.Itoa(hi))
		return 0, false
	}
	return v, true
}

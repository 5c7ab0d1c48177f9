package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-astrosky/internal/models"
	"github.com/mr1hm/go-astrosky/internal/repository"
)

const (
	defaultNearbyRadiusKm = 50.0
	defaultNearbyDays     = 30
)

type syncRequest struct {
	DeviceID     string               `json:"device_id"`
	Observations []models.Observation `json:"observations"`
}

type syncResponse struct {
	Synced             int                  `json:"synced"`
	DeviceObservations []models.Observation `json:"device_observations"`
}

func (h *Handler) syncObservations(c *gin.Context) {
	var req syncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.DeviceID == "" {
		abortError(c, http.StatusUnprocessableEntity, "device_id is required")
		return
	}
	for i := range req.Observations {
		o := &req.Observations[i]
		if o.DeviceID == "" {
			o.DeviceID = req.DeviceID
		}
		if err := o.Validate(); err != nil {
			abortError(c, http.StatusUnprocessableEntity, fmt.Sprintf("observations[%d]: %v", i, err))
			return
		}
	}

	ctx := c.Request.Context()
	synced, err := h.repo.Sync(ctx, req.Observations)
	if err != nil {
		slog.Error("observation sync failed", "device_id", req.DeviceID, "error", err)
		abortError(c, http.StatusInternalServerError, "failed to sync observations")
		return
	}
	mine, err := h.repo.ListByDevice(ctx, req.DeviceID)
	if err != nil {
		abortError(c, http.StatusInternalServerError, "failed to list observations")
		return
	}

	c.JSON(http.StatusOK, syncResponse{Synced: synced, DeviceObservations: mine})
}

// myObservations lists a device's observations, newest first. With
// format=geojson the list is returned as a FeatureCollection.
func (h *Handler) myObservations(c *gin.Context) {
	deviceID := c.Query("device_id")
	if deviceID == "" {
		abortError(c, http.StatusUnprocessableEntity, "device_id is required")
		return
	}

	obs, err := h.repo.ListByDevice(c.Request.Context(), deviceID)
	if err != nil {
		abortError(c, http.StatusInternalServerError, "failed to list observations")
		return
	}

	if c.Query("format") == "geojson" {
		c.Header("Content-Type", "application/geo+json")
		c.JSON(http.StatusOK, toGeoJSON(obs))
		return
	}
	c.JSON(http.StatusOK, obs)
}

func (h *Handler) nearbyObservations(c *gin.Context) {
	loc, ok := locationParams(c)
	if !ok {
		return
	}

	radius := defaultNearbyRadiusKm
	if raw := c.Query("radius_km"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			abortError(c, http.StatusUnprocessableEntity, "radius_km must be a positive number")
			return
		}
		radius = v
	}
	days, ok := intParam(c, "days", defaultNearbyDays, 0, 3650)
	if !ok {
		return
	}

	// The window starts at UTC midnight, days ago.
	y, m, d := h.now().UTC().Date()
	since := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -days)

	stats, err := h.repo.Nearby(c.Request.Context(), repository.NearbyFilter{
		Lat:      loc.Lat,
		Lon:      loc.Lon,
		RadiusKm: radius,
		Since:    since,
	})
	if err != nil {
		abortError(c, http.StatusInternalServerError, "failed to query nearby observations")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) deleteObservation(c *gin.Context) {
	deviceID := c.Query("device_id")
	if deviceID == "" {
		abortError(c, http.StatusUnprocessableEntity, "device_id is required")
		return
	}

	err := h.repo.Delete(c.Request.Context(), c.Param("id"), deviceID)
	if errors.Is(err, repository.ErrNotFound) {
		abortError(c, http.StatusNotFound, "Observation not found")
		return
	}
	if err != nil {
		abortError(c, http.StatusInternalServerError, "failed to delete observation")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

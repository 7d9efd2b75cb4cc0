package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"depin-monitor/dashboard"
	"depin-monitor/geo"
	"depin-monitor/health"
	"depin-monitor/logger"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

var errBadQuery = errors.New("bad query parameter")

// Handler contains the HTTP handlers for the dashboard API endpoints
type Handler struct {
	Dashboard *dashboard.Service
}

// NewHandler creates and returns a new Handler instance
func NewHandler(d *dashboard.Service) *Handler {
	return &Handler{Dashboard: d}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Logger.Warn("Failed to encode response", zap.Error(err))
	}
}

// writeError maps service errors to status codes
func writeError(w http.ResponseWriter, msg string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadQuery),
		errors.Is(err, geo.ErrInvalidCoordinate),
		errors.Is(err, health.ErrInvalidScore):
		status = http.StatusBadRequest
	case errors.Is(err, dashboard.ErrNodeNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		logger.Logger.Error(msg, zap.Error(err))
	} else {
		logger.Logger.Info(msg, zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func parseFloat(r *http.Request, key string) (float64, bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, true, fmt.Errorf("%w: %s=%q is not a number", errBadQuery, key, raw)
	}
	return v, true, nil
}

// parsePoint reads an optional point from two query parameters. Both or
// neither must be present.
func parsePoint(r *http.Request, latKey, lonKey string) (*geo.GeoPoint, error) {
	lat, hasLat, err := parseFloat(r, latKey)
	if err != nil {
		return nil, err
	}
	lon, hasLon, err := parseFloat(r, lonKey)
	if err != nil {
		return nil, err
	}
	if hasLat != hasLon {
		return nil, fmt.Errorf("%w: %s and %s must be given together", errBadQuery, latKey, lonKey)
	}
	if !hasLat {
		return nil, nil
	}
	return &geo.GeoPoint{Latitude: lat, Longitude: lon}, nil
}

func requirePoint(r *http.Request, latKey, lonKey string) (geo.GeoPoint, error) {
	p, err := parsePoint(r, latKey, lonKey)
	if err != nil {
		return geo.GeoPoint{}, err
	}
	if p == nil {
		return geo.GeoPoint{}, fmt.Errorf("%w: %s and %s are required", errBadQuery, latKey, lonKey)
	}
	return *p, nil
}

// GetNearbyNodes handles GET requests for nodes ranked by distance from lat/lon
func (h *Handler) GetNearbyNodes(w http.ResponseWriter, r *http.Request) {
	ref, err := parsePoint(r, "lat", "lon")
	if err != nil {
		writeError(w, "Invalid reference point", err)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeError(w, "Invalid limit", fmt.Errorf("%w: limit=%q", errBadQuery, raw))
			return
		}
	}

	nodes, err := h.Dashboard.NearbyNodes(ref, limit)
	if err != nil {
		writeError(w, "Failed to rank nodes", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ranked": ref != nil,
		"nodes":  nodes,
	})
}

// GetNode handles GET requests for a single node
func (h *Handler) GetNode(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ref, err := parsePoint(r, "lat", "lon")
	if err != nil {
		writeError(w, "Invalid reference point", err)
		return
	}

	node, err := h.Dashboard.GetNode(id, ref)
	if err != nil {
		writeError(w, "Failed to get node", err)
		return
	}
	writeJSON(w, http.StatusOK, node)
}

// GetActiveOpportunities handles GET requests for currently active reward windows
func (h *Handler) GetActiveOpportunities(w http.ResponseWriter, r *http.Request) {
	opps, err := h.Dashboard.ActiveOpportunities()
	if err != nil {
		writeError(w, "Failed to list opportunities", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":         len(opps),
		"opportunities": opps,
	})
}

func (h *Handler) GetEarnings(w http.ResponseWriter, r *http.Request) {
	earnings, err := h.Dashboard.Earnings()
	if err != nil {
		writeError(w, "Failed to list earnings", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"earnings": earnings,
	})
}

// GetProtocols handles GET requests for the networks nodes earn on
func (h *Handler) GetProtocols(w http.ResponseWriter, r *http.Request) {
	protocols, err := h.Dashboard.Protocols()
	if err != nil {
		writeError(w, "Failed to list protocols", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"protocols": protocols,
	})
}

func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Dashboard.Overview()
	if err != nil {
		writeError(w, "Failed to build overview", err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (h *Handler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.Dashboard.Alerts()
	if err != nil {
		writeError(w, "Failed to list alerts", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(alerts),
		"alerts": alerts,
	})
}

// ClassifyHealth handles GET /health/classify?score=N
func (h *Handler) ClassifyHealth(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("score")
	score, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, "Invalid score", fmt.Errorf("%w: score=%q is not an integer", errBadQuery, raw))
		return
	}

	tier, err := h.Dashboard.ClassifyHealth(score)
	if err != nil {
		writeError(w, "Invalid score", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"score": score,
		"tier":  tier,
	})
}

// GetDistance handles GET /distance between two points
func (h *Handler) GetDistance(w http.ResponseWriter, r *http.Request) {
	from, err := requirePoint(r, "from_lat", "from_lon")
	if err != nil {
		writeError(w, "Invalid origin", err)
		return
	}
	to, err := requirePoint(r, "to_lat", "to_lon")
	if err != nil {
		writeError(w, "Invalid destination", err)
		return
	}

	meters, err := h.Dashboard.Distance(from, to)
	if err != nil {
		writeError(w, "Invalid coordinates", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"distance_meters": meters,
		"distance":        geo.FormatDistance(meters),
	})
}

// Healthz reports liveness
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

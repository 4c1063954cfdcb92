package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adityadutt29/EmeLoc/internal/domain/entity"
	"github.com/adityadutt29/EmeLoc/internal/geo"
	"github.com/adityadutt29/EmeLoc/internal/usecase"
	"github.com/adityadutt29/EmeLoc/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// Handler serves the tracking subsystem's HTTP surface
type Handler struct {
	cases      *usecase.CaseService
	ambulances *usecase.AmbulanceService
	recorder   *usecase.LocationRecorder
	mapView    *usecase.MapRefresher
	logger     logger.Logger
	version    string
}

// NewHandler creates a new API handler
func NewHandler(
	cases *usecase.CaseService,
	ambulances *usecase.AmbulanceService,
	recorder *usecase.LocationRecorder,
	mapView *usecase.MapRefresher,
	logger logger.Logger,
	version string,
) *Handler {
	return &Handler{
		cases:      cases,
		ambulances: ambulances,
		recorder:   recorder,
		mapView:    mapView,
		logger:     logger,
		version:    version,
	}
}

// locationRequest is the body posted by a tracking-link page after the
// browser performed the device geolocation.
type locationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CreateCase handles POST /api/cases
func (h *Handler) CreateCase(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateCaseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "create case", "invalid json body")
		return
	}

	result, err := h.cases.CreateCase(r.Context(), input)
	if err != nil {
		h.writeFailure(w, "create case", err)
		return
	}

	issues := make([]string, len(result.Issues))
	for i, issue := range result.Issues {
		issues[i] = issue.Error()
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"caseId":       result.CaseID,
		"locationLink": result.LocationLink,
		"trackingLink": result.TrackingLink,
		"issues":       issues,
	})
}

// CreateAmbulance handles POST /api/ambulances
func (h *Handler) CreateAmbulance(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateAmbulanceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "create ambulance", "invalid json body")
		return
	}

	amb, err := h.ambulances.Create(r.Context(), input)
	if err != nil {
		h.writeFailure(w, "create ambulance", err)
		return
	}
	writeJSON(w, http.StatusCreated, amb)
}

// ListAmbulances handles GET /api/ambulances
func (h *Handler) ListAmbulances(w http.ResponseWriter, r *http.Request) {
	ambulances, err := h.ambulances.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.writeFailure(w, "list ambulances", err)
		return
	}
	writeJSON(w, http.StatusOK, ambulances)
}

// IngestAmbulanceLocation handles POST /api/track/{ambulanceID}/location
func (h *Handler) IngestAmbulanceLocation(w http.ResponseWriter, r *http.Request) {
	h.ingestLocation(w, r, chi.URLParam(r, "ambulanceID"))
}

// IngestCaseLocation handles POST /api/location/{caseID}
func (h *Handler) IngestCaseLocation(w http.ResponseWriter, r *http.Request) {
	h.ingestLocation(w, r, chi.URLParam(r, "caseID"))
}

func (h *Handler) ingestLocation(w http.ResponseWriter, r *http.Request, entityID string) {
	var req locationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "share location", "invalid json body")
		return
	}

	record, err := h.recorder.Record(r.Context(), entityID, geo.Position{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		// A non-nil record alongside the error means the history append
		// succeeded and only the snapshot update was lost.
		if record != nil {
			h.logger.Warn("Location stored without snapshot", "entityId", entityID, "error", err)
			writeJSON(w, http.StatusOK, record)
			return
		}
		h.writeFailure(w, "share location", err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// DriverView handles GET /api/track/{ambulanceID}
func (h *Handler) DriverView(w http.ResponseWriter, r *http.Request) {
	view, err := h.cases.DriverView(r.Context(), chi.URLParam(r, "ambulanceID"))
	if err != nil {
		h.writeFailure(w, "load tracking view", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// CaseLocationStatus handles GET /api/location/{caseID}/status
func (h *Handler) CaseLocationStatus(w http.ResponseWriter, r *http.Request) {
	shared, err := h.cases.LocationShared(r.Context(), chi.URLParam(r, "caseID"))
	if err != nil {
		h.writeFailure(w, "check location status", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"shared": shared})
}

// MapView handles GET /api/map/ambulances
func (h *Handler) MapView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.mapView.Snapshot())
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": h.version,
	})
}

// writeFailure maps the failure taxonomy onto HTTP statuses. Every error
// body names the action that failed so the UI never shows a stuck spinner
// with no explanation.
func (h *Handler) writeFailure(w http.ResponseWriter, action string, err error) {
	var f *entity.Failure
	if errors.As(err, &f) {
		switch f.Kind {
		case entity.ValidationFailure:
			writeError(w, http.StatusBadRequest, action, f.Msg)
			return
		case entity.CapabilityUnavailable, entity.DeniedOrTimeout:
			writeError(w, http.StatusUnprocessableEntity, action, f.Msg)
			return
		}
	}
	h.logger.Error("Request failed", "action", action, "error", err)
	writeError(w, http.StatusInternalServerError, action, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, action, msg string) {
	writeJSON(w, status, map[string]string{
		"action": action,
		"error":  msg,
	})
}

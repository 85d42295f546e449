package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fareops/catalog-engine/pkg/config"
	"github.com/fareops/catalog-engine/pkg/services"
)

// FleetHandler handles aircraft catalog endpoints.
type FleetHandler struct {
	aircraft services.AircraftService
	cfg      *config.Config
	logger   *zap.Logger
}

// NewFleetHandler creates a new FleetHandler.
func NewFleetHandler(aircraft services.AircraftService, cfg *config.Config, logger *zap.Logger) *FleetHandler {
	return &FleetHandler{aircraft: aircraft, cfg: cfg, logger: logger}
}

// RegisterRoutes registers the handler's routes on the given mux.
func (h *FleetHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/aircraft", h.Create)
	mux.HandleFunc("GET /api/aircraft", h.List)
	mux.HandleFunc("GET /api/aircraft/{id}", h.Get)
	mux.HandleFunc("PATCH /api/aircraft/{id}", h.Update)
	mux.HandleFunc("DELETE /api/aircraft/{id}", h.Delete)
	mux.HandleFunc("POST /api/aircraft/{id}/reactivate", h.Reactivate)
}

type aircraftRequest struct {
	TailNumber string    `json:"tail_number"`
	Model      string    `json:"model"`
	AirlineID  uuid.UUID `json:"airline_id"`
}

func (h *FleetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req aircraftRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	aircraft, err := h.aircraft.Create(r.Context(), services.CreateAircraftInput{
		TailNumber: req.TailNumber,
		Model:      req.Model,
		AirlineID:  req.AirlineID,
	})
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusCreated, aircraft); err != nil {
		h.logger.Error("Failed to encode aircraft response", zap.Error(err))
	}
}

func (h *FleetHandler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	page, err := parsePage(values, h.cfg.Listing)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	airlineID, err := queryUUID(values, "airline_id")
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	criteria := services.AircraftCriteria{
		TailNumberContains: values.Get("tail_number"),
		AirlineID:          airlineID,
		IncludeDeleted:     queryBool(values, "include_deleted"),
	}

	result, err := h.aircraft.List(r.Context(), criteria, page)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode aircraft page", zap.Error(err))
	}
}

func (h *FleetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	aircraft, err := h.aircraft.GetByID(r.Context(), id)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, aircraft); err != nil {
		h.logger.Error("Failed to encode aircraft response", zap.Error(err))
	}
}

func (h *FleetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	var req aircraftRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	aircraft, err := h.aircraft.Update(r.Context(), id, req.Model)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, aircraft); err != nil {
		h.logger.Error("Failed to encode aircraft response", zap.Error(err))
	}
}

func (h *FleetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := h.aircraft.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FleetHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := h.aircraft.Reactivate(r.Context(), id); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

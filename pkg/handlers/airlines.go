package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fareops/catalog-engine/pkg/config"
	"github.com/fareops/catalog-engine/pkg/services"
)

// AirlinesHandler handles airline catalog endpoints.
type AirlinesHandler struct {
	airlines services.AirlineService
	cfg      *config.Config
	logger   *zap.Logger
}

// NewAirlinesHandler creates a new AirlinesHandler.
func NewAirlinesHandler(airlines services.AirlineService, cfg *config.Config, logger *zap.Logger) *AirlinesHandler {
	return &AirlinesHandler{airlines: airlines, cfg: cfg, logger: logger}
}

// RegisterRoutes registers the handler's routes on the given mux.
func (h *AirlinesHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/airlines", h.Create)
	mux.HandleFunc("GET /api/airlines", h.List)
	mux.HandleFunc("GET /api/airlines/{id}", h.Get)
	mux.HandleFunc("PATCH /api/airlines/{id}", h.Update)
	mux.HandleFunc("DELETE /api/airlines/{id}", h.Delete)
	mux.HandleFunc("POST /api/airlines/{id}/reactivate", h.Reactivate)
	mux.HandleFunc("GET /api/airlines/{id}/delete-blockers", h.DeleteBlockers)
}

type airlineRequest struct {
	Name      string    `json:"name"`
	IataCode  string    `json:"iata_code"`
	CountryID uuid.UUID `json:"country_id"`
}

func (h *AirlinesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req airlineRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	airline, err := h.airlines.Create(r.Context(), services.CreateAirlineInput{
		Name:      req.Name,
		IataCode:  req.IataCode,
		CountryID: req.CountryID,
	})
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusCreated, airline); err != nil {
		h.logger.Error("Failed to encode airline response", zap.Error(err))
	}
}

func (h *AirlinesHandler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	page, err := parsePage(values, h.cfg.Listing)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	countryID, err := queryUUID(values, "country_id")
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	criteria := services.AirlineCriteria{
		NameContains:   values.Get("name"),
		CountryID:      countryID,
		IncludeDeleted: queryBool(values, "include_deleted"),
	}

	result, err := h.airlines.List(r.Context(), criteria, page)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode airline page", zap.Error(err))
	}
}

func (h *AirlinesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	airline, err := h.airlines.GetByID(r.Context(), id)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, airline); err != nil {
		h.logger.Error("Failed to encode airline response", zap.Error(err))
	}
}

func (h *AirlinesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	var req airlineRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	airline, err := h.airlines.Update(r.Context(), id, req.Name, req.CountryID)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, airline); err != nil {
		h.logger.Error("Failed to encode airline response", zap.Error(err))
	}
}

func (h *AirlinesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := h.airlines.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AirlinesHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := h.airlines.Reactivate(r.Context(), id); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AirlinesHandler) DeleteBlockers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	blockers, err := h.airlines.DeleteBlockers(r.Context(), id)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, map[string]any{"dependents": blockers}); err != nil {
		h.logger.Error("Failed to encode delete-blockers response", zap.Error(err))
	}
}

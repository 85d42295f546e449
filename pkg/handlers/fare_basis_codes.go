package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fareops/catalog-engine/pkg/config"
	"github.com/fareops/catalog-engine/pkg/services"
)

// FareBasisCodesHandler handles fare basis code endpoints.
type FareBasisCodesHandler struct {
	fareCodes services.FareBasisCodeService
	cfg       *config.Config
	logger    *zap.Logger
}

// NewFareBasisCodesHandler creates a new FareBasisCodesHandler.
func NewFareBasisCodesHandler(fareCodes services.FareBasisCodeService, cfg *config.Config, logger *zap.Logger) *FareBasisCodesHandler {
	return &FareBasisCodesHandler{fareCodes: fareCodes, cfg: cfg, logger: logger}
}

// RegisterRoutes registers the handler's routes on the given mux.
func (h *FareBasisCodesHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/fare-basis-codes", h.Create)
	mux.HandleFunc("GET /api/fare-basis-codes", h.List)
	mux.HandleFunc("GET /api/fare-basis-codes/{id}", h.Get)
	mux.HandleFunc("PATCH /api/fare-basis-codes/{id}", h.Update)
	mux.HandleFunc("DELETE /api/fare-basis-codes/{id}", h.Delete)
	mux.HandleFunc("POST /api/fare-basis-codes/{id}/reactivate", h.Reactivate)
	mux.HandleFunc("GET /api/fare-basis-codes/{id}/delete-blockers", h.DeleteBlockers)
}

type fareBasisCodeRequest struct {
	Code        string    `json:"code"`
	Description string    `json:"description"`
	AirlineID   uuid.UUID `json:"airline_id"`
}

func (h *FareBasisCodesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req fareBasisCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	fareCode, err := h.fareCodes.Create(r.Context(), services.CreateFareBasisCodeInput{
		Code:        req.Code,
		Description: req.Description,
		AirlineID:   req.AirlineID,
	})
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusCreated, fareCode); err != nil {
		h.logger.Error("Failed to encode fare basis code response", zap.Error(err))
	}
}

func (h *FareBasisCodesHandler) List(w http.ResponseWriter, r *http.Request) {
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

	criteria := services.FareBasisCodeCriteria{
		CodeContains:   values.Get("code"),
		AirlineID:      airlineID,
		IncludeDeleted: queryBool(values, "include_deleted"),
	}

	result, err := h.fareCodes.List(r.Context(), criteria, page)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode fare basis code page", zap.Error(err))
	}
}

func (h *FareBasisCodesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	fareCode, err := h.fareCodes.GetByID(r.Context(), id)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, fareCode); err != nil {
		h.logger.Error("Failed to encode fare basis code response", zap.Error(err))
	}
}

func (h *FareBasisCodesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	var req fareBasisCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	fareCode, err := h.fareCodes.Update(r.Context(), id, req.Description)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, fareCode); err != nil {
		h.logger.Error("Failed to encode fare basis code response", zap.Error(err))
	}
}

func (h *FareBasisCodesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := h.fareCodes.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FareBasisCodesHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := h.fareCodes.Reactivate(r.Context(), id); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FareBasisCodesHandler) DeleteBlockers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	blockers, err := h.fareCodes.DeleteBlockers(r.Context(), id)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, map[string]any{"dependents": blockers}); err != nil {
		h.logger.Error("Failed to encode delete-blockers response", zap.Error(err))
	}
}

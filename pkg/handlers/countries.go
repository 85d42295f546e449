package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/fareops/catalog-engine/pkg/config"
	"github.com/fareops/catalog-engine/pkg/services"
)

// CountriesHandler handles country catalog endpoints.
type CountriesHandler struct {
	countries services.CountryService
	cfg       *config.Config
	logger    *zap.Logger
}

// NewCountriesHandler creates a new CountriesHandler.
func NewCountriesHandler(countries services.CountryService, cfg *config.Config, logger *zap.Logger) *CountriesHandler {
	return &CountriesHandler{countries: countries, cfg: cfg, logger: logger}
}

// RegisterRoutes registers the handler's routes on the given mux.
func (h *CountriesHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/countries", h.Create)
	mux.HandleFunc("GET /api/countries", h.List)
	mux.HandleFunc("GET /api/countries/{id}", h.Get)
	mux.HandleFunc("PATCH /api/countries/{id}", h.Update)
	mux.HandleFunc("DELETE /api/countries/{id}", h.Delete)
	mux.HandleFunc("POST /api/countries/{id}/reactivate", h.Reactivate)
	mux.HandleFunc("GET /api/countries/{id}/delete-blockers", h.DeleteBlockers)
}

type countryRequest struct {
	Name    string `json:"name"`
	IsoCode string `json:"iso_code"`
}

func (h *CountriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req countryRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	country, err := h.countries.Create(r.Context(), req.Name, req.IsoCode)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusCreated, country); err != nil {
		h.logger.Error("Failed to encode country response", zap.Error(err))
	}
}

func (h *CountriesHandler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	page, err := parsePage(values, h.cfg.Listing)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	criteria := services.CountryCriteria{
		NameContains:   values.Get("name"),
		IsoCode:        values.Get("iso_code"),
		IncludeDeleted: queryBool(values, "include_deleted"),
	}

	result, err := h.countries.List(r.Context(), criteria, page)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode country page", zap.Error(err))
	}
}

func (h *CountriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	country, err := h.countries.GetByID(r.Context(), id)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, country); err != nil {
		h.logger.Error("Failed to encode country response", zap.Error(err))
	}
}

func (h *CountriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	var req countryRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	country, err := h.countries.Update(r.Context(), id, req.Name)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, country); err != nil {
		h.logger.Error("Failed to encode country response", zap.Error(err))
	}
}

func (h *CountriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := h.countries.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CountriesHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := h.countries.Reactivate(r.Context(), id); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CountriesHandler) DeleteBlockers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	blockers, err := h.countries.DeleteBlockers(r.Context(), id)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, map[string]any{"dependents": blockers}); err != nil {
		h.logger.Error("Failed to encode delete-blockers response", zap.Error(err))
	}
}

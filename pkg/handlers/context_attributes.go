package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/fareops/catalog-engine/pkg/config"
	"github.com/fareops/catalog-engine/pkg/services"
)

// ContextAttributesHandler handles pricing context endpoints.
type ContextAttributesHandler struct {
	contexts services.ContextAttributesService
	cfg      *config.Config
	logger   *zap.Logger
}

// NewContextAttributesHandler creates a new ContextAttributesHandler.
func NewContextAttributesHandler(contexts services.ContextAttributesService, cfg *config.Config, logger *zap.Logger) *ContextAttributesHandler {
	return &ContextAttributesHandler{contexts: contexts, cfg: cfg, logger: logger}
}

// RegisterRoutes registers the handler's routes on the given mux.
func (h *ContextAttributesHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/context-attributes", h.Create)
	mux.HandleFunc("GET /api/context-attributes", h.List)
	mux.HandleFunc("GET /api/context-attributes/{id}", h.Get)
	mux.HandleFunc("PATCH /api/context-attributes/{id}", h.Update)
	mux.HandleFunc("DELETE /api/context-attributes/{id}", h.Delete)
	mux.HandleFunc("POST /api/context-attributes/{id}/reactivate", h.Reactivate)
}

type contextAttributesRequest struct {
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	CabinClass   string `json:"cabin_class"`
	SalesChannel string `json:"sales_channel"`
}

func (h *ContextAttributesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req contextAttributesRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	attrs, err := h.contexts.Create(r.Context(), services.CreateContextAttributesInput{
		Origin:       req.Origin,
		Destination:  req.Destination,
		CabinClass:   req.CabinClass,
		SalesChannel: req.SalesChannel,
	})
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusCreated, attrs); err != nil {
		h.logger.Error("Failed to encode context attributes response", zap.Error(err))
	}
}

func (h *ContextAttributesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	var req contextAttributesRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	attrs, err := h.contexts.Update(r.Context(), id, services.UpdateContextAttributesInput{
		CabinClass:   req.CabinClass,
		SalesChannel: req.SalesChannel,
	})
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, attrs); err != nil {
		h.logger.Error("Failed to encode context attributes response", zap.Error(err))
	}
}

func (h *ContextAttributesHandler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	page, err := parsePage(values, h.cfg.Listing)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	criteria := services.ContextAttributesCriteria{
		Origin:         values.Get("origin"),
		Destination:    values.Get("destination"),
		SalesChannel:   values.Get("sales_channel"),
		IncludeDeleted: queryBool(values, "include_deleted"),
	}

	result, err := h.contexts.List(r.Context(), criteria, page)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode context attributes page", zap.Error(err))
	}
}

func (h *ContextAttributesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	attrs, err := h.contexts.GetByID(r.Context(), id)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, attrs); err != nil {
		h.logger.Error("Failed to encode context attributes response", zap.Error(err))
	}
}

func (h *ContextAttributesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := h.contexts.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ContextAttributesHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := h.contexts.Reactivate(r.Context(), id); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/fareops/catalog-engine/pkg/config"
	"github.com/fareops/catalog-engine/pkg/services"
)

// AncillaryProductsHandler handles ancillary product endpoints.
type AncillaryProductsHandler struct {
	products services.AncillaryProductService
	cfg      *config.Config
	logger   *zap.Logger
}

// NewAncillaryProductsHandler creates a new AncillaryProductsHandler.
func NewAncillaryProductsHandler(products services.AncillaryProductService, cfg *config.Config, logger *zap.Logger) *AncillaryProductsHandler {
	return &AncillaryProductsHandler{products: products, cfg: cfg, logger: logger}
}

// RegisterRoutes registers the handler's routes on the given mux.
func (h *AncillaryProductsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/ancillary-products", h.Create)
	mux.HandleFunc("GET /api/ancillary-products", h.List)
	mux.HandleFunc("GET /api/ancillary-products/{id}", h.Get)
	mux.HandleFunc("PATCH /api/ancillary-products/{id}", h.Update)
	mux.HandleFunc("DELETE /api/ancillary-products/{id}", h.Delete)
	mux.HandleFunc("POST /api/ancillary-products/{id}/reactivate", h.Reactivate)
	mux.HandleFunc("GET /api/ancillary-products/{id}/delete-blockers", h.DeleteBlockers)
}

type ancillaryProductRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (h *AncillaryProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ancillaryProductRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	product, err := h.products.Create(r.Context(), req.Code, req.Name)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusCreated, product); err != nil {
		h.logger.Error("Failed to encode ancillary product response", zap.Error(err))
	}
}

func (h *AncillaryProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	page, err := parsePage(values, h.cfg.Listing)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	criteria := services.AncillaryProductCriteria{
		NameContains:   values.Get("name"),
		Code:           values.Get("code"),
		IncludeDeleted: queryBool(values, "include_deleted"),
	}

	result, err := h.products.List(r.Context(), criteria, page)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode ancillary product page", zap.Error(err))
	}
}

func (h *AncillaryProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	product, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, product); err != nil {
		h.logger.Error("Failed to encode ancillary product response", zap.Error(err))
	}
}

func (h *AncillaryProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	var req ancillaryProductRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	product, err := h.products.Update(r.Context(), id, req.Name)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, product); err != nil {
		h.logger.Error("Failed to encode ancillary product response", zap.Error(err))
	}
}

func (h *AncillaryProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AncillaryProductsHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := h.products.Reactivate(r.Context(), id); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AncillaryProductsHandler) DeleteBlockers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	blockers, err := h.products.DeleteBlockers(r.Context(), id)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, map[string]any{"dependents": blockers}); err != nil {
		h.logger.Error("Failed to encode delete-blockers response", zap.Error(err))
	}
}

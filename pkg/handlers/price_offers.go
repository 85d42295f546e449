package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fareops/catalog-engine/pkg/apperrors"
	"github.com/fareops/catalog-engine/pkg/config"
	"github.com/fareops/catalog-engine/pkg/models"
	"github.com/fareops/catalog-engine/pkg/services"
)

// PriceOffersHandler handles price offer log ingestion, listing and the
// analytics summary endpoint.
type PriceOffersHandler struct {
	offers services.PriceOfferService
	cfg    *config.Config
	logger *zap.Logger
}

// NewPriceOffersHandler creates a new PriceOffersHandler.
func NewPriceOffersHandler(offers services.PriceOfferService, cfg *config.Config, logger *zap.Logger) *PriceOffersHandler {
	return &PriceOffersHandler{offers: offers, cfg: cfg, logger: logger}
}

// RegisterRoutes registers the handler's routes on the given mux. The summary
// route is registered before the {id} route so the literal segment wins.
func (h *PriceOffersHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/price-offers", h.LogOffer)
	mux.HandleFunc("GET /api/price-offers", h.List)
	mux.HandleFunc("GET /api/price-offers/summary", h.Summarize)
	mux.HandleFunc("GET /api/price-offers/{id}", h.Get)
	mux.HandleFunc("DELETE /api/price-offers/{id}", h.Delete)
	mux.HandleFunc("POST /api/price-offers/{id}/reactivate", h.Reactivate)
}

type logOfferRequest struct {
	FareBasisCodeID     *uuid.UUID `json:"fare_basis_code_id"`
	AncillaryProductID  *uuid.UUID `json:"ancillary_product_id"`
	ContextAttributesID uuid.UUID  `json:"context_attributes_id"`
	OfferPrice          string     `json:"offer_price"`
	QuotedAt            *time.Time `json:"quoted_at"`
}

func (h *PriceOffersHandler) LogOffer(w http.ResponseWriter, r *http.Request) {
	var req logOfferRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	// Prices travel as decimal strings so binary floats never touch money.
	price, err := decimal.NewFromString(req.OfferPrice)
	if err != nil {
		WriteServiceError(w, h.logger, apperrors.Validationf("invalid offer_price %q", req.OfferPrice))
		return
	}

	input := services.LogOfferInput{
		FareBasisCodeID:     req.FareBasisCodeID,
		AncillaryProductID:  req.AncillaryProductID,
		ContextAttributesID: req.ContextAttributesID,
		OfferPrice:          price,
	}
	if req.QuotedAt != nil {
		input.QuotedAt = *req.QuotedAt
	}

	offer, err := h.offers.LogOffer(r.Context(), input)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusCreated, offer); err != nil {
		h.logger.Error("Failed to encode price offer response", zap.Error(err))
	}
}

func (h *PriceOffersHandler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	page, err := parsePage(values, h.cfg.Listing)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	fareCodeID, err := queryUUID(values, "fare_basis_code_id")
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	productID, err := queryUUID(values, "ancillary_product_id")
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	contextID, err := queryUUID(values, "context_attributes_id")
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	from, err := queryTime(values, "from")
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	to, err := queryTime(values, "to")
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	criteria := services.OfferCriteria{
		FareBasisCodeID:     fareCodeID,
		AncillaryProductID:  productID,
		ContextAttributesID: contextID,
		QuotedFrom:          from,
		QuotedTo:            to,
		IncludeDeleted:      queryBool(values, "include_deleted"),
	}

	result, err := h.offers.List(r.Context(), criteria, page)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode price offer page", zap.Error(err))
	}
}

func (h *PriceOffersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	offer, err := h.offers.GetByID(r.Context(), id)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, offer); err != nil {
		h.logger.Error("Failed to encode price offer response", zap.Error(err))
	}
}

func (h *PriceOffersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := h.offers.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PriceOffersHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := h.offers.Reactivate(r.Context(), id); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Summarize handles GET /api/price-offers/summary. subject_kind, subject_id,
// from and to are all required; the range is inclusive at both ends.
func (h *PriceOffersHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	kind := models.OfferSubjectKind(values.Get("subject_kind"))
	if kind == "" {
		WriteServiceError(w, h.logger, apperrors.Validationf("subject_kind is required"))
		return
	}
	subjectID, err := queryUUID(values, "subject_id")
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if subjectID == nil {
		WriteServiceError(w, h.logger, apperrors.Validationf("subject_id is required"))
		return
	}
	from, err := queryTime(values, "from")
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	to, err := queryTime(values, "to")
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if from == nil || to == nil {
		WriteServiceError(w, h.logger, apperrors.Validationf("from and to are required"))
		return
	}

	summary, err := h.offers.Summarize(r.Context(), models.OfferSubject{Kind: kind, ID: *subjectID}, *from, *to)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, summary); err != nil {
		h.logger.Error("Failed to encode offer summary response", zap.Error(err))
	}
}

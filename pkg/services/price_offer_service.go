package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fareops/catalog-engine/pkg/apperrors"
	"github.com/fareops/catalog-engine/pkg/models"
	"github.com/fareops/catalog-engine/pkg/query"
	"github.com/fareops/catalog-engine/pkg/repositories"
)

// LogOfferInput is the payload of the pricing-offer event path. Exactly one
// of FareBasisCodeID / AncillaryProductID must be set.
type LogOfferInput struct {
	FareBasisCodeID     *uuid.UUID
	AncillaryProductID  *uuid.UUID
	ContextAttributesID uuid.UUID
	OfferPrice          decimal.Decimal
	QuotedAt            time.Time
}

// OfferCriteria holds the optional filter terms of an offer-log listing.
type OfferCriteria struct {
	FareBasisCodeID     *uuid.UUID
	AncillaryProductID  *uuid.UUID
	ContextAttributesID *uuid.UUID
	QuotedFrom          *time.Time
	QuotedTo            *time.Time
	IncludeDeleted      bool
}

// PriceOfferService ingests price offer logs and serves the analytics read
// path over them.
type PriceOfferService interface {
	LogOffer(ctx context.Context, input LogOfferInput) (*models.PriceOfferLog, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.PriceOfferLog, error)
	List(ctx context.Context, criteria OfferCriteria, page query.PageRequest) (query.Page[*models.PriceOfferLog], error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error

	// Summarize aggregates non-deleted offers for one subject over an
	// inclusive date range. An empty matching set is ErrNotFound: zero
	// offers and "no data" are observably different states.
	Summarize(ctx context.Context, subject models.OfferSubject, from, to time.Time) (*models.PriceOfferSummary, error)
}

type priceOfferService struct {
	offers    repositories.PriceOfferRepository
	fareCodes repositories.FareBasisCodeRepository
	products  repositories.AncillaryProductRepository
	contexts  repositories.ContextAttributesRepository
	logger    *zap.Logger
}

// NewPriceOfferService creates a new PriceOfferService.
func NewPriceOfferService(
	offers repositories.PriceOfferRepository,
	fareCodes repositories.FareBasisCodeRepository,
	products repositories.AncillaryProductRepository,
	contexts repositories.ContextAttributesRepository,
	logger *zap.Logger,
) PriceOfferService {
	return &priceOfferService{
		offers:    offers,
		fareCodes: fareCodes,
		products:  products,
		contexts:  contexts,
		logger:    logger.Named("price-offer-service"),
	}
}

var _ PriceOfferService = (*priceOfferService)(nil)

func (s *priceOfferService) LogOffer(ctx context.Context, input LogOfferInput) (*models.PriceOfferLog, error) {
	if input.FareBasisCodeID != nil && input.AncillaryProductID != nil {
		return nil, apperrors.Validationf("a price offer cannot reference both a fare basis code and an ancillary product")
	}
	if input.FareBasisCodeID == nil && input.AncillaryProductID == nil {
		return nil, apperrors.Validationf("a price offer must reference either a fare basis code or an ancillary product")
	}
	if input.OfferPrice.IsNegative() {
		return nil, apperrors.Validationf("offer price cannot be negative")
	}

	// Every referenced row must resolve to an active record before anything
	// is written; a single failed resolution rejects the whole creation.
	if input.FareBasisCodeID != nil {
		ok, err := s.fareCodes.ExistsActive(ctx, *input.FareBasisCodeID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("fare basis code %s: %w", *input.FareBasisCodeID, apperrors.ErrNotFound)
		}
	}
	if input.AncillaryProductID != nil {
		ok, err := s.products.ExistsActive(ctx, *input.AncillaryProductID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("ancillary product %s: %w", *input.AncillaryProductID, apperrors.ErrNotFound)
		}
	}
	ok, err := s.contexts.ExistsActive(ctx, input.ContextAttributesID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("context attributes %s: %w", input.ContextAttributesID, apperrors.ErrNotFound)
	}

	quotedAt := input.QuotedAt
	if quotedAt.IsZero() {
		quotedAt = time.Now().UTC()
	}

	rec := &models.PriceOfferLog{
		FareBasisCodeID:     input.FareBasisCodeID,
		AncillaryProductID:  input.AncillaryProductID,
		ContextAttributesID: input.ContextAttributesID,
		OfferPrice:          input.OfferPrice,
		QuotedAt:            quotedAt,
	}
	if err := s.offers.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Debug("Price offer logged",
		zap.String("offer_id", rec.ID.String()),
		zap.String("offer_price", rec.OfferPrice.String()))
	return rec, nil
}

func (s *priceOfferService) GetByID(ctx context.Context, id uuid.UUID) (*models.PriceOfferLog, error) {
	return s.offers.GetActiveByID(ctx, id)
}

func (s *priceOfferService) List(ctx context.Context, criteria OfferCriteria, page query.PageRequest) (query.Page[*models.PriceOfferLog], error) {
	if err := page.Validate(); err != nil {
		return query.Page[*models.PriceOfferLog]{}, err
	}

	f := query.NewFilter()
	if !criteria.IncludeDeleted {
		f.ActiveOnly()
	}
	f.EqualsID("fare_basis_code_id", criteria.FareBasisCodeID)
	f.EqualsID("ancillary_product_id", criteria.AncillaryProductID)
	f.EqualsID("context_attributes_id", criteria.ContextAttributesID)
	f.TimeRange("quoted_at", criteria.QuotedFrom, criteria.QuotedTo)

	items, total, err := s.offers.PagedFind(ctx, f, query.Order{Column: "quoted_at", Descending: true}, page)
	if err != nil {
		return query.Page[*models.PriceOfferLog]{}, err
	}
	return query.NewPage(items, total, page), nil
}

func (s *priceOfferService) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, id, s.offers.GetByIDIncludingDeleted, nil, s.offers.SetDeleted)
}

func (s *priceOfferService) Reactivate(ctx context.Context, id uuid.UUID) error {
	return reactivate(ctx, id, s.offers.GetByIDIncludingDeleted, s.offers.SetDeleted)
}

func (s *priceOfferService) Summarize(ctx context.Context, subject models.OfferSubject, from, to time.Time) (*models.PriceOfferSummary, error) {
	f := query.NewFilter().ActiveOnly()
	switch subject.Kind {
	case models.SubjectFareBasisCode:
		f.Equals("fare_basis_code_id", subject.ID)
	case models.SubjectAncillaryProduct:
		f.Equals("ancillary_product_id", subject.ID)
	default:
		return nil, apperrors.Validationf("unknown offer subject kind %q", subject.Kind)
	}
	f.TimeRange("quoted_at", &from, &to)

	quotes, err := s.offers.ListQuotes(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, apperrors.ErrNotFound
	}

	return &models.PriceOfferSummary{
		Subject:      subject,
		AveragePrice: decimal.Avg(quotes[0], quotes[1:]...),
		MinPrice:     decimal.Min(quotes[0], quotes[1:]...),
		MaxPrice:     decimal.Max(quotes[0], quotes[1:]...),
		OfferCount:   len(quotes),
	}, nil
}

package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fareops/catalog-engine/pkg/apperrors"
	"github.com/fareops/catalog-engine/pkg/models"
	"github.com/fareops/catalog-engine/pkg/query"
	"github.com/fareops/catalog-engine/pkg/repositories"
)

// ContextAttributesCriteria holds the optional filter terms of a pricing
// context listing.
type ContextAttributesCriteria struct {
	Origin         string
	Destination    string
	SalesChannel   string
	IncludeDeleted bool
}

// CreateContextAttributesInput is the payload for registering a pricing context.
type CreateContextAttributesInput struct {
	Origin       string
	Destination  string
	CabinClass   string
	SalesChannel string
}

// UpdateContextAttributesInput is the payload for amending a pricing context.
// The city pair is the context's identity and stays immutable; only the cabin
// and channel classification can be corrected.
type UpdateContextAttributesInput struct {
	CabinClass   string
	SalesChannel string
}

// ContextAttributesService provides catalog operations for pricing contexts.
type ContextAttributesService interface {
	Create(ctx context.Context, input CreateContextAttributesInput) (*models.ContextAttributes, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateContextAttributesInput) (*models.ContextAttributes, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ContextAttributes, error)
	List(ctx context.Context, criteria ContextAttributesCriteria, page query.PageRequest) (query.Page[*models.ContextAttributes], error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type contextAttributesService struct {
	contexts repositories.ContextAttributesRepository
	probes   []DependencyProbe
	logger   *zap.Logger
}

// NewContextAttributesService creates a new ContextAttributesService.
func NewContextAttributesService(
	contexts repositories.ContextAttributesRepository,
	priceOffers repositories.PriceOfferRepository,
	logger *zap.Logger,
) ContextAttributesService {
	return &contextAttributesService{
		contexts: contexts,
		probes: []DependencyProbe{
			{Label: "active price offer logs", Exists: priceOffers.ExistsActiveByContextAttributes},
		},
		logger: logger.Named("context-attributes-service"),
	}
}

var _ ContextAttributesService = (*contextAttributesService)(nil)

func (s *contextAttributesService) Create(ctx context.Context, input CreateContextAttributesInput) (*models.ContextAttributes, error) {
	origin := strings.ToUpper(strings.TrimSpace(input.Origin))
	destination := strings.ToUpper(strings.TrimSpace(input.Destination))

	if len(origin) != 3 || len(destination) != 3 {
		return nil, apperrors.Validationf("origin and destination must be 3-letter airport codes")
	}
	if input.CabinClass == "" {
		return nil, apperrors.Validationf("cabin class is required")
	}
	if input.SalesChannel == "" {
		return nil, apperrors.Validationf("sales channel is required")
	}

	attrs := &models.ContextAttributes{
		Origin:       origin,
		Destination:  destination,
		CabinClass:   input.CabinClass,
		SalesChannel: input.SalesChannel,
	}
	if err := s.contexts.Create(ctx, attrs); err != nil {
		return nil, err
	}

	s.logger.Info("Pricing context registered",
		zap.String("context_id", attrs.ID.String()),
		zap.String("city_pair", origin+"-"+destination))
	return attrs, nil
}

func (s *contextAttributesService) Update(ctx context.Context, id uuid.UUID, input UpdateContextAttributesInput) (*models.ContextAttributes, error) {
	cabinClass := strings.TrimSpace(input.CabinClass)
	salesChannel := strings.TrimSpace(input.SalesChannel)

	if cabinClass == "" {
		return nil, apperrors.Validationf("cabin class is required")
	}
	if salesChannel == "" {
		return nil, apperrors.Validationf("sales channel is required")
	}

	attrs, err := s.contexts.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	attrs.CabinClass = cabinClass
	attrs.SalesChannel = salesChannel
	if err := s.contexts.Update(ctx, attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}

func (s *contextAttributesService) GetByID(ctx context.Context, id uuid.UUID) (*models.ContextAttributes, error) {
	return s.contexts.GetActiveByID(ctx, id)
}

func (s *contextAttributesService) List(ctx context.Context, criteria ContextAttributesCriteria, page query.PageRequest) (query.Page[*models.ContextAttributes], error) {
	if err := page.Validate(); err != nil {
		return query.Page[*models.ContextAttributes]{}, err
	}

	f := query.NewFilter()
	if !criteria.IncludeDeleted {
		f.ActiveOnly()
	}
	if criteria.Origin != "" {
		f.Equals("origin", strings.ToUpper(criteria.Origin))
	}
	if criteria.Destination != "" {
		f.Equals("destination", strings.ToUpper(criteria.Destination))
	}
	if criteria.SalesChannel != "" {
		f.Equals("sales_channel", criteria.SalesChannel)
	}

	items, total, err := s.contexts.PagedFind(ctx, f, query.Order{Column: "origin"}, page)
	if err != nil {
		return query.Page[*models.ContextAttributes]{}, err
	}
	return query.NewPage(items, total, page), nil
}

func (s *contextAttributesService) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, id, s.contexts.GetByIDIncludingDeleted, s.probes, s.contexts.SetDeleted)
}

func (s *contextAttributesService) Reactivate(ctx context.Context, id uuid.UUID) error {
	return reactivate(ctx, id, s.contexts.GetByIDIncludingDeleted, s.contexts.SetDeleted)
}

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

// AncillaryProductCriteria holds the optional filter terms of a product listing.
type AncillaryProductCriteria struct {
	NameContains   string
	Code           string
	IncludeDeleted bool
}

// AncillaryProductService provides catalog operations for ancillary products.
type AncillaryProductService interface {
	Create(ctx context.Context, code, name string) (*models.AncillaryProduct, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*models.AncillaryProduct, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.AncillaryProduct, error)
	List(ctx context.Context, criteria AncillaryProductCriteria, page query.PageRequest) (query.Page[*models.AncillaryProduct], error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	DeleteBlockers(ctx context.Context, id uuid.UUID) ([]string, error)
}

type ancillaryProductService struct {
	products repositories.AncillaryProductRepository
	probes   []DependencyProbe
	logger   *zap.Logger
}

// NewAncillaryProductService creates a new AncillaryProductService. Deletion
// is blocked while non-deleted price offer logs still quote the product.
func NewAncillaryProductService(
	products repositories.AncillaryProductRepository,
	priceOffers repositories.PriceOfferRepository,
	logger *zap.Logger,
) AncillaryProductService {
	return &ancillaryProductService{
		products: products,
		probes: []DependencyProbe{
			{Label: "active price offer logs", Exists: priceOffers.ExistsActiveByAncillaryProduct},
		},
		logger: logger.Named("ancillary-product-service"),
	}
}

var _ AncillaryProductService = (*ancillaryProductService)(nil)

func (s *ancillaryProductService) Create(ctx context.Context, code, name string) (*models.AncillaryProduct, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	name = strings.TrimSpace(name)

	if code == "" {
		return nil, apperrors.Validationf("product code is required")
	}
	if name == "" {
		return nil, apperrors.Validationf("product name is required")
	}

	product := &models.AncillaryProduct{Code: code, Name: name}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Ancillary product created",
		zap.String("product_id", product.ID.String()),
		zap.String("code", product.Code))
	return product, nil
}

func (s *ancillaryProductService) Update(ctx context.Context, id uuid.UUID, name string) (*models.AncillaryProduct, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validationf("product name is required")
	}

	product, err := s.products.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = name
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ancillaryProductService) GetByID(ctx context.Context, id uuid.UUID) (*models.AncillaryProduct, error) {
	return s.products.GetActiveByID(ctx, id)
}

func (s *ancillaryProductService) List(ctx context.Context, criteria AncillaryProductCriteria, page query.PageRequest) (query.Page[*models.AncillaryProduct], error) {
	if err := page.Validate(); err != nil {
		return query.Page[*models.AncillaryProduct]{}, err
	}

	f := query.NewFilter()
	if !criteria.IncludeDeleted {
		f.ActiveOnly()
	}
	f.ContainsFold("name", criteria.NameContains)
	if criteria.Code != "" {
		f.Equals("code", strings.ToUpper(criteria.Code))
	}

	items, total, err := s.products.PagedFind(ctx, f, query.Order{Column: "code"}, page)
	if err != nil {
		return query.Page[*models.AncillaryProduct]{}, err
	}
	return query.NewPage(items, total, page), nil
}

func (s *ancillaryProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, id, s.products.GetByIDIncludingDeleted, s.probes, s.products.SetDeleted)
}

func (s *ancillaryProductService) Reactivate(ctx context.Context, id uuid.UUID) error {
	return reactivate(ctx, id, s.products.GetByIDIncludingDeleted, s.products.SetDeleted)
}

func (s *ancillaryProductService) DeleteBlockers(ctx context.Context, id uuid.UUID) ([]string, error) {
	return CheckDependents(ctx, id, s.probes)
}

package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fareops/catalog-engine/pkg/apperrors"
	"github.com/fareops/catalog-engine/pkg/models"
	"github.com/fareops/catalog-engine/pkg/query"
	"github.com/fareops/catalog-engine/pkg/repositories"
)

// FareBasisCodeCriteria holds the optional filter terms of a fare code listing.
type FareBasisCodeCriteria struct {
	CodeContains   string
	AirlineID      *uuid.UUID
	IncludeDeleted bool
}

// CreateFareBasisCodeInput is the payload for publishing a fare basis code.
type CreateFareBasisCodeInput struct {
	Code        string
	Description string
	AirlineID   uuid.UUID
}

// FareBasisCodeService provides catalog operations for fare basis codes.
type FareBasisCodeService interface {
	Create(ctx context.Context, input CreateFareBasisCodeInput) (*models.FareBasisCode, error)
	Update(ctx context.Context, id uuid.UUID, description string) (*models.FareBasisCode, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.FareBasisCode, error)
	List(ctx context.Context, criteria FareBasisCodeCriteria, page query.PageRequest) (query.Page[*models.FareBasisCode], error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	DeleteBlockers(ctx context.Context, id uuid.UUID) ([]string, error)
}

type fareBasisCodeService struct {
	fareCodes repositories.FareBasisCodeRepository
	airlines  repositories.AirlineRepository
	probes    []DependencyProbe
	logger    *zap.Logger
}

// NewFareBasisCodeService creates a new FareBasisCodeService. Deletion is
// blocked while non-deleted price offer logs still quote the code.
func NewFareBasisCodeService(
	fareCodes repositories.FareBasisCodeRepository,
	airlines repositories.AirlineRepository,
	priceOffers repositories.PriceOfferRepository,
	logger *zap.Logger,
) FareBasisCodeService {
	return &fareBasisCodeService{
		fareCodes: fareCodes,
		airlines:  airlines,
		probes: []DependencyProbe{
			{Label: "active price offer logs", Exists: priceOffers.ExistsActiveByFareBasisCode},
		},
		logger: logger.Named("fare-basis-code-service"),
	}
}

var _ FareBasisCodeService = (*fareBasisCodeService)(nil)

func (s *fareBasisCodeService) Create(ctx context.Context, input CreateFareBasisCodeInput) (*models.FareBasisCode, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, apperrors.Validationf("fare basis code is required")
	}

	if _, err := s.airlines.GetActiveByID(ctx, input.AirlineID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Validationf("airline %s does not exist or is deleted", input.AirlineID)
		}
		return nil, err
	}

	fareCode := &models.FareBasisCode{
		Code:        code,
		Description: strings.TrimSpace(input.Description),
		AirlineID:   input.AirlineID,
	}
	if err := s.fareCodes.Create(ctx, fareCode); err != nil {
		return nil, err
	}

	s.logger.Info("Fare basis code published",
		zap.String("fare_basis_code_id", fareCode.ID.String()),
		zap.String("code", fareCode.Code))
	return fareCode, nil
}

func (s *fareBasisCodeService) Update(ctx context.Context, id uuid.UUID, description string) (*models.FareBasisCode, error) {
	fareCode, err := s.fareCodes.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fareCode.Description = strings.TrimSpace(description)
	if err := s.fareCodes.Update(ctx, fareCode); err != nil {
		return nil, err
	}
	return fareCode, nil
}

func (s *fareBasisCodeService) GetByID(ctx context.Context, id uuid.UUID) (*models.FareBasisCode, error) {
	return s.fareCodes.GetActiveByID(ctx, id)
}

func (s *fareBasisCodeService) List(ctx context.Context, criteria FareBasisCodeCriteria, page query.PageRequest) (query.Page[*models.FareBasisCode], error) {
	if err := page.Validate(); err != nil {
		return query.Page[*models.FareBasisCode]{}, err
	}

	f := query.NewFilter()
	if !criteria.IncludeDeleted {
		f.ActiveOnly()
	}
	f.ContainsFold("code", criteria.CodeContains)
	f.EqualsID("airline_id", criteria.AirlineID)

	items, total, err := s.fareCodes.PagedFind(ctx, f, query.Order{Column: "code"}, page)
	if err != nil {
		return query.Page[*models.FareBasisCode]{}, err
	}
	return query.NewPage(items, total, page), nil
}

func (s *fareBasisCodeService) Delete(ctx context.Context, id uuid.UUID) error {
	err := softDelete(ctx, id, s.fareCodes.GetByIDIncludingDeleted, s.probes, s.fareCodes.SetDeleted)
	if err != nil {
		return err
	}
	s.logger.Info("Fare basis code deleted", zap.String("fare_basis_code_id", id.String()))
	return nil
}

func (s *fareBasisCodeService) Reactivate(ctx context.Context, id uuid.UUID) error {
	err := reactivate(ctx, id, s.fareCodes.GetByIDIncludingDeleted, s.fareCodes.SetDeleted)
	if err != nil {
		return err
	}
	s.logger.Info("Fare basis code reactivated", zap.String("fare_basis_code_id", id.String()))
	return nil
}

func (s *fareBasisCodeService) DeleteBlockers(ctx context.Context, id uuid.UUID) ([]string, error) {
	return CheckDependents(ctx, id, s.probes)
}

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

// AircraftCriteria holds the optional filter terms of an aircraft listing.
type AircraftCriteria struct {
	TailNumberContains string
	AirlineID          *uuid.UUID
	IncludeDeleted     bool
}

// CreateAircraftInput is the payload for registering an aircraft.
type CreateAircraftInput struct {
	TailNumber string
	Model      string
	AirlineID  uuid.UUID
}

// AircraftService provides catalog operations for fleet aircraft. Aircraft
// have no dependents, so deletion is never blocked.
type AircraftService interface {
	Create(ctx context.Context, input CreateAircraftInput) (*models.Aircraft, error)
	Update(ctx context.Context, id uuid.UUID, model string) (*models.Aircraft, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Aircraft, error)
	List(ctx context.Context, criteria AircraftCriteria, page query.PageRequest) (query.Page[*models.Aircraft], error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type aircraftService struct {
	aircraft repositories.AircraftRepository
	airlines repositories.AirlineRepository
	logger   *zap.Logger
}

// NewAircraftService creates a new AircraftService.
func NewAircraftService(
	aircraft repositories.AircraftRepository,
	airlines repositories.AirlineRepository,
	logger *zap.Logger,
) AircraftService {
	return &aircraftService{
		aircraft: aircraft,
		airlines: airlines,
		logger:   logger.Named("aircraft-service"),
	}
}

var _ AircraftService = (*aircraftService)(nil)

func (s *aircraftService) Create(ctx context.Context, input CreateAircraftInput) (*models.Aircraft, error) {
	tail := strings.ToUpper(strings.TrimSpace(input.TailNumber))
	model := strings.TrimSpace(input.Model)

	if tail == "" {
		return nil, apperrors.Validationf("tail number is required")
	}
	if model == "" {
		return nil, apperrors.Validationf("aircraft model is required")
	}

	if _, err := s.airlines.GetActiveByID(ctx, input.AirlineID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Validationf("airline %s does not exist or is deleted", input.AirlineID)
		}
		return nil, err
	}

	aircraft := &models.Aircraft{TailNumber: tail, Model: model, AirlineID: input.AirlineID}
	if err := s.aircraft.Create(ctx, aircraft); err != nil {
		return nil, err
	}

	s.logger.Info("Aircraft registered",
		zap.String("aircraft_id", aircraft.ID.String()),
		zap.String("tail_number", aircraft.TailNumber))
	return aircraft, nil
}

func (s *aircraftService) Update(ctx context.Context, id uuid.UUID, model string) (*models.Aircraft, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, apperrors.Validationf("aircraft model is required")
	}

	aircraft, err := s.aircraft.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	aircraft.Model = model
	if err := s.aircraft.Update(ctx, aircraft); err != nil {
		return nil, err
	}
	return aircraft, nil
}

func (s *aircraftService) GetByID(ctx context.Context, id uuid.UUID) (*models.Aircraft, error) {
	return s.aircraft.GetActiveByID(ctx, id)
}

func (s *aircraftService) List(ctx context.Context, criteria AircraftCriteria, page query.PageRequest) (query.Page[*models.Aircraft], error) {
	if err := page.Validate(); err != nil {
		return query.Page[*models.Aircraft]{}, err
	}

	f := query.NewFilter()
	if !criteria.IncludeDeleted {
		f.ActiveOnly()
	}
	f.ContainsFold("tail_number", criteria.TailNumberContains)
	f.EqualsID("airline_id", criteria.AirlineID)

	items, total, err := s.aircraft.PagedFind(ctx, f, query.Order{Column: "tail_number"}, page)
	if err != nil {
		return query.Page[*models.Aircraft]{}, err
	}
	return query.NewPage(items, total, page), nil
}

func (s *aircraftService) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, id, s.aircraft.GetByIDIncludingDeleted, nil, s.aircraft.SetDeleted)
}

func (s *aircraftService) Reactivate(ctx context.Context, id uuid.UUID) error {
	return reactivate(ctx, id, s.aircraft.GetByIDIncludingDeleted, s.aircraft.SetDeleted)
}

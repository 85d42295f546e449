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

// AirlineCriteria holds the optional filter terms of an airline listing.
type AirlineCriteria struct {
	NameContains   string
	CountryID      *uuid.UUID
	IncludeDeleted bool
}

// CreateAirlineInput is the payload for creating an airline.
type CreateAirlineInput struct {
	Name      string
	IataCode  string
	CountryID uuid.UUID
}

// AirlineService provides catalog operations for airlines.
type AirlineService interface {
	Create(ctx context.Context, input CreateAirlineInput) (*models.Airline, error)
	Update(ctx context.Context, id uuid.UUID, name string, countryID uuid.UUID) (*models.Airline, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Airline, error)
	List(ctx context.Context, criteria AirlineCriteria, page query.PageRequest) (query.Page[*models.Airline], error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	DeleteBlockers(ctx context.Context, id uuid.UUID) ([]string, error)
}

type airlineService struct {
	airlines  repositories.AirlineRepository
	countries repositories.CountryRepository
	probes    []DependencyProbe
	logger    *zap.Logger
}

// NewAirlineService creates a new AirlineService. The probe list is the fixed
// dependency set of the airline type: fleet aircraft, published fare codes
// and carrier staff accounts all block deletion while active.
func NewAirlineService(
	airlines repositories.AirlineRepository,
	countries repositories.CountryRepository,
	aircraft repositories.AircraftRepository,
	fareCodes repositories.FareBasisCodeRepository,
	users repositories.UserRepository,
	logger *zap.Logger,
) AirlineService {
	return &airlineService{
		airlines:  airlines,
		countries: countries,
		probes: []DependencyProbe{
			{Label: "active aircraft", Exists: aircraft.ExistsActiveByAirline},
			{Label: "active fare basis codes", Exists: fareCodes.ExistsActiveByAirline},
			{Label: "active users", Exists: users.ExistsActiveByAirline},
		},
		logger: logger.Named("airline-service"),
	}
}

var _ AirlineService = (*airlineService)(nil)

func (s *airlineService) Create(ctx context.Context, input CreateAirlineInput) (*models.Airline, error) {
	name := strings.TrimSpace(input.Name)
	iata := strings.ToUpper(strings.TrimSpace(input.IataCode))

	if name == "" {
		return nil, apperrors.Validationf("airline name is required")
	}
	if len(iata) != 2 {
		return nil, apperrors.Validationf("iata code must be exactly 2 characters, got %q", iata)
	}

	// The registration country must be active at creation time; it is not
	// re-checked afterwards.
	if _, err := s.countries.GetActiveByID(ctx, input.CountryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Validationf("country %s does not exist or is deleted", input.CountryID)
		}
		return nil, err
	}

	airline := &models.Airline{Name: name, IataCode: iata, CountryID: input.CountryID}
	if err := s.airlines.Create(ctx, airline); err != nil {
		return nil, err
	}

	s.logger.Info("Airline created",
		zap.String("airline_id", airline.ID.String()),
		zap.String("iata_code", airline.IataCode))
	return airline, nil
}

func (s *airlineService) Update(ctx context.Context, id uuid.UUID, name string, countryID uuid.UUID) (*models.Airline, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validationf("airline name is required")
	}

	airline, err := s.airlines.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if countryID != airline.CountryID {
		if _, err := s.countries.GetActiveByID(ctx, countryID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.Validationf("country %s does not exist or is deleted", countryID)
			}
			return nil, err
		}
	}

	airline.Name = name
	airline.CountryID = countryID
	if err := s.airlines.Update(ctx, airline); err != nil {
		return nil, err
	}
	return airline, nil
}

func (s *airlineService) GetByID(ctx context.Context, id uuid.UUID) (*models.Airline, error) {
	return s.airlines.GetActiveByID(ctx, id)
}

func (s *airlineService) List(ctx context.Context, criteria AirlineCriteria, page query.PageRequest) (query.Page[*models.Airline], error) {
	if err := page.Validate(); err != nil {
		return query.Page[*models.Airline]{}, err
	}

	f := query.NewFilter()
	if !criteria.IncludeDeleted {
		f.ActiveOnly()
	}
	f.ContainsFold("name", criteria.NameContains)
	f.EqualsID("country_id", criteria.CountryID)

	items, total, err := s.airlines.PagedFind(ctx, f, query.Order{Column: "name"}, page)
	if err != nil {
		return query.Page[*models.Airline]{}, err
	}
	return query.NewPage(items, total, page), nil
}

func (s *airlineService) Delete(ctx context.Context, id uuid.UUID) error {
	err := softDelete(ctx, id, s.airlines.GetByIDIncludingDeleted, s.probes, s.airlines.SetDeleted)
	if err != nil {
		return err
	}
	s.logger.Info("Airline deleted", zap.String("airline_id", id.String()))
	return nil
}

func (s *airlineService) Reactivate(ctx context.Context, id uuid.UUID) error {
	err := reactivate(ctx, id, s.airlines.GetByIDIncludingDeleted, s.airlines.SetDeleted)
	if err != nil {
		return err
	}
	s.logger.Info("Airline reactivated", zap.String("airline_id", id.String()))
	return nil
}

func (s *airlineService) DeleteBlockers(ctx context.Context, id uuid.UUID) ([]string, error) {
	return CheckDependents(ctx, id, s.probes)
}

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

// CountryCriteria holds the optional filter terms of a country listing.
// Absent terms impose no constraint.
type CountryCriteria struct {
	NameContains   string
	IsoCode        string
	IncludeDeleted bool
}

// CountryService provides catalog operations for countries.
type CountryService interface {
	Create(ctx context.Context, name, isoCode string) (*models.Country, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*models.Country, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Country, error)
	List(ctx context.Context, criteria CountryCriteria, page query.PageRequest) (query.Page[*models.Country], error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error

	// DeleteBlockers reports which dependency kinds currently block deletion,
	// without mutating anything.
	DeleteBlockers(ctx context.Context, id uuid.UUID) ([]string, error)
}

type countryService struct {
	countries repositories.CountryRepository
	probes    []DependencyProbe
	logger    *zap.Logger
}

// NewCountryService creates a new CountryService.
func NewCountryService(
	countries repositories.CountryRepository,
	airlines repositories.AirlineRepository,
	logger *zap.Logger,
) CountryService {
	return &countryService{
		countries: countries,
		probes: []DependencyProbe{
			{Label: "active airlines", Exists: airlines.ExistsActiveByCountry},
		},
		logger: logger.Named("country-service"),
	}
}

var _ CountryService = (*countryService)(nil)

func (s *countryService) Create(ctx context.Context, name, isoCode string) (*models.Country, error) {
	name = strings.TrimSpace(name)
	isoCode = strings.ToUpper(strings.TrimSpace(isoCode))

	if name == "" {
		return nil, apperrors.Validationf("country name is required")
	}
	if len(isoCode) != 2 {
		return nil, apperrors.Validationf("iso code must be exactly 2 letters, got %q", isoCode)
	}

	country := &models.Country{Name: name, IsoCode: isoCode}
	if err := s.countries.Create(ctx, country); err != nil {
		return nil, err
	}

	s.logger.Info("Country created",
		zap.String("country_id", country.ID.String()),
		zap.String("iso_code", country.IsoCode))
	return country, nil
}

func (s *countryService) Update(ctx context.Context, id uuid.UUID, name string) (*models.Country, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validationf("country name is required")
	}

	country, err := s.countries.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	country.Name = name
	if err := s.countries.Update(ctx, country); err != nil {
		return nil, err
	}
	return country, nil
}

func (s *countryService) GetByID(ctx context.Context, id uuid.UUID) (*models.Country, error) {
	return s.countries.GetActiveByID(ctx, id)
}

func (s *countryService) List(ctx context.Context, criteria CountryCriteria, page query.PageRequest) (query.Page[*models.Country], error) {
	if err := page.Validate(); err != nil {
		return query.Page[*models.Country]{}, err
	}

	f := query.NewFilter()
	if !criteria.IncludeDeleted {
		f.ActiveOnly()
	}
	f.ContainsFold("name", criteria.NameContains)
	if criteria.IsoCode != "" {
		f.Equals("iso_code", strings.ToUpper(criteria.IsoCode))
	}

	items, total, err := s.countries.PagedFind(ctx, f, query.Order{Column: "name"}, page)
	if err != nil {
		return query.Page[*models.Country]{}, err
	}
	return query.NewPage(items, total, page), nil
}

func (s *countryService) Delete(ctx context.Context, id uuid.UUID) error {
	err := softDelete(ctx, id, s.countries.GetByIDIncludingDeleted, s.probes, s.countries.SetDeleted)
	if err != nil {
		return err
	}
	s.logger.Info("Country deleted", zap.String("country_id", id.String()))
	return nil
}

func (s *countryService) Reactivate(ctx context.Context, id uuid.UUID) error {
	err := reactivate(ctx, id, s.countries.GetByIDIncludingDeleted, s.countries.SetDeleted)
	if err != nil {
		return err
	}
	s.logger.Info("Country reactivated", zap.String("country_id", id.String()))
	return nil
}

func (s *countryService) DeleteBlockers(ctx context.Context, id uuid.UUID) ([]string, error) {
	return CheckDependents(ctx, id, s.probes)
}

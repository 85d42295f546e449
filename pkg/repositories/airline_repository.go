package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fareops/catalog-engine/pkg/apperrors"
	"github.com/fareops/catalog-engine/pkg/database"
	"github.com/fareops/catalog-engine/pkg/models"
	"github.com/fareops/catalog-engine/pkg/query"
)

// AirlineRepository provides data access for airlines.
type AirlineRepository interface {
	Create(ctx context.Context, airline *models.Airline) error
	Update(ctx context.Context, airline *models.Airline) error
	GetActiveByID(ctx context.Context, id uuid.UUID) (*models.Airline, error)
	GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*models.Airline, error)
	PagedFind(ctx context.Context, f *query.Filter, order query.Order, page query.PageRequest) ([]*models.Airline, int, error)
	SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error

	// ExistsActiveByCountry is the dependency probe consulted before a
	// country is deleted.
	ExistsActiveByCountry(ctx context.Context, countryID uuid.UUID) (bool, error)
}

type airlineRepository struct {
	db *database.DB
}

// NewAirlineRepository creates a new AirlineRepository.
func NewAirlineRepository(db *database.DB) AirlineRepository {
	return &airlineRepository{db: db}
}

var _ AirlineRepository = (*airlineRepository)(nil)

const airlineColumns = "id, name, iata_code, country_id, deleted, created_at, updated_at"

func (r *airlineRepository) Create(ctx context.Context, airline *models.Airline) error {
	now := time.Now().UTC()

	sql := `
		INSERT INTO airlines (name, iata_code, country_id, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, FALSE, $4, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, sql, airline.Name, airline.IataCode, airline.CountryID, now).
		Scan(&airline.ID, &airline.CreatedAt, &airline.UpdatedAt)
	if err != nil {
		return translateWriteErr("create airline", err)
	}
	return nil
}

func (r *airlineRepository) Update(ctx context.Context, airline *models.Airline) error {
	sql := `
		UPDATE airlines
		SET name = $2, country_id = $3, updated_at = now()
		WHERE id = $1 AND deleted = FALSE
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, sql, airline.ID, airline.Name, airline.CountryID).
		Scan(&airline.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return translateWriteErr("update airline", err)
	}
	return nil
}

func (r *airlineRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*models.Airline, error) {
	sql := fmt.Sprintf("SELECT %s FROM airlines WHERE id = $1 AND deleted = FALSE", airlineColumns)
	return scanAirline(r.db.QueryRow(ctx, sql, id))
}

func (r *airlineRepository) GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*models.Airline, error) {
	sql := fmt.Sprintf("SELECT %s FROM airlines WHERE id = $1", airlineColumns)
	return scanAirline(r.db.QueryRow(ctx, sql, id))
}

func (r *airlineRepository) PagedFind(ctx context.Context, f *query.Filter, order query.Order, page query.PageRequest) ([]*models.Airline, int, error) {
	return pagedFind(ctx, r.db, "airlines", airlineColumns, f, order, page,
		func(row pgx.Row) (*models.Airline, error) { return scanAirline(row) })
}

func (r *airlineRepository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	return setDeleted(ctx, r.db, "airlines", id, deleted)
}

func (r *airlineRepository) ExistsActiveByCountry(ctx context.Context, countryID uuid.UUID) (bool, error) {
	return existsWhere(ctx, r.db, "airlines", "country_id = $1 AND deleted = FALSE", countryID)
}

func scanAirline(row pgx.Row) (*models.Airline, error) {
	var a models.Airline
	err := row.Scan(&a.ID, &a.Name, &a.IataCode, &a.CountryID, &a.Deleted, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan airline: %w", err)
	}
	return &a, nil
}

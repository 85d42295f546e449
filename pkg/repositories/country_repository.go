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

// CountryRepository provides data access for catalog countries.
type CountryRepository interface {
	Create(ctx context.Context, country *models.Country) error
	Update(ctx context.Context, country *models.Country) error
	GetActiveByID(ctx context.Context, id uuid.UUID) (*models.Country, error)
	GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*models.Country, error)
	PagedFind(ctx context.Context, f *query.Filter, order query.Order, page query.PageRequest) ([]*models.Country, int, error)
	SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error
}

type countryRepository struct {
	db *database.DB
}

// NewCountryRepository creates a new CountryRepository.
func NewCountryRepository(db *database.DB) CountryRepository {
	return &countryRepository{db: db}
}

var _ CountryRepository = (*countryRepository)(nil)

const countryColumns = "id, name, iso_code, deleted, created_at, updated_at"

func (r *countryRepository) Create(ctx context.Context, country *models.Country) error {
	now := time.Now().UTC()

	sql := `
		INSERT INTO countries (name, iso_code, deleted, created_at, updated_at)
		VALUES ($1, $2, FALSE, $3, $3)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, sql, country.Name, country.IsoCode, now).
		Scan(&country.ID, &country.CreatedAt, &country.UpdatedAt)
	if err != nil {
		return translateWriteErr("create country", err)
	}
	return nil
}

func (r *countryRepository) Update(ctx context.Context, country *models.Country) error {
	sql := `
		UPDATE countries
		SET name = $2, updated_at = now()
		WHERE id = $1 AND deleted = FALSE
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, sql, country.ID, country.Name).Scan(&country.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return translateWriteErr("update country", err)
	}
	return nil
}

func (r *countryRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*models.Country, error) {
	sql := fmt.Sprintf("SELECT %s FROM countries WHERE id = $1 AND deleted = FALSE", countryColumns)
	return scanCountry(r.db.QueryRow(ctx, sql, id))
}

func (r *countryRepository) GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*models.Country, error) {
	sql := fmt.Sprintf("SELECT %s FROM countries WHERE id = $1", countryColumns)
	return scanCountry(r.db.QueryRow(ctx, sql, id))
}

func (r *countryRepository) PagedFind(ctx context.Context, f *query.Filter, order query.Order, page query.PageRequest) ([]*models.Country, int, error) {
	return pagedFind(ctx, r.db, "countries", countryColumns, f, order, page,
		func(row pgx.Row) (*models.Country, error) { return scanCountry(row) })
}

func (r *countryRepository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	return setDeleted(ctx, r.db, "countries", id, deleted)
}

func scanCountry(row pgx.Row) (*models.Country, error) {
	var c models.Country
	err := row.Scan(&c.ID, &c.Name, &c.IsoCode, &c.Deleted, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan country: %w", err)
	}
	return &c, nil
}

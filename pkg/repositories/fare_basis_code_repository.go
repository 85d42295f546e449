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

// FareBasisCodeRepository provides data access for fare basis codes.
type FareBasisCodeRepository interface {
	Create(ctx context.Context, code *models.FareBasisCode) error
	Update(ctx context.Context, code *models.FareBasisCode) error
	GetActiveByID(ctx context.Context, id uuid.UUID) (*models.FareBasisCode, error)
	GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*models.FareBasisCode, error)
	ExistsActive(ctx context.Context, id uuid.UUID) (bool, error)
	PagedFind(ctx context.Context, f *query.Filter, order query.Order, page query.PageRequest) ([]*models.FareBasisCode, int, error)
	SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error

	// ExistsActiveByAirline is the dependency probe consulted before an
	// airline is deleted.
	ExistsActiveByAirline(ctx context.Context, airlineID uuid.UUID) (bool, error)
}

type fareBasisCodeRepository struct {
	db *database.DB
}

// NewFareBasisCodeRepository creates a new FareBasisCodeRepository.
func NewFareBasisCodeRepository(db *database.DB) FareBasisCodeRepository {
	return &fareBasisCodeRepository{db: db}
}

var _ FareBasisCodeRepository = (*fareBasisCodeRepository)(nil)

const fareBasisCodeColumns = "id, code, description, airline_id, deleted, created_at, updated_at"

func (r *fareBasisCodeRepository) Create(ctx context.Context, code *models.FareBasisCode) error {
	now := time.Now().UTC()

	sql := `
		INSERT INTO fare_basis_codes (code, description, airline_id, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, FALSE, $4, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, sql, code.Code, code.Description, code.AirlineID, now).
		Scan(&code.ID, &code.CreatedAt, &code.UpdatedAt)
	if err != nil {
		return translateWriteErr("create fare basis code", err)
	}
	return nil
}

func (r *fareBasisCodeRepository) Update(ctx context.Context, code *models.FareBasisCode) error {
	sql := `
		UPDATE fare_basis_codes
		SET description = $2, updated_at = now()
		WHERE id = $1 AND deleted = FALSE
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, sql, code.ID, code.Description).Scan(&code.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return translateWriteErr("update fare basis code", err)
	}
	return nil
}

func (r *fareBasisCodeRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*models.FareBasisCode, error) {
	sql := fmt.Sprintf("SELECT %s FROM fare_basis_codes WHERE id = $1 AND deleted = FALSE", fareBasisCodeColumns)
	return scanFareBasisCode(r.db.QueryRow(ctx, sql, id))
}

func (r *fareBasisCodeRepository) GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*models.FareBasisCode, error) {
	sql := fmt.Sprintf("SELECT %s FROM fare_basis_codes WHERE id = $1", fareBasisCodeColumns)
	return scanFareBasisCode(r.db.QueryRow(ctx, sql, id))
}

func (r *fareBasisCodeRepository) ExistsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	return existsWhere(ctx, r.db, "fare_basis_codes", "id = $1 AND deleted = FALSE", id)
}

func (r *fareBasisCodeRepository) PagedFind(ctx context.Context, f *query.Filter, order query.Order, page query.PageRequest) ([]*models.FareBasisCode, int, error) {
	return pagedFind(ctx, r.db, "fare_basis_codes", fareBasisCodeColumns, f, order, page,
		func(row pgx.Row) (*models.FareBasisCode, error) { return scanFareBasisCode(row) })
}

func (r *fareBasisCodeRepository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	return setDeleted(ctx, r.db, "fare_basis_codes", id, deleted)
}

func (r *fareBasisCodeRepository) ExistsActiveByAirline(ctx context.Context, airlineID uuid.UUID) (bool, error) {
	return existsWhere(ctx, r.db, "fare_basis_codes", "airline_id = $1 AND deleted = FALSE", airlineID)
}

func scanFareBasisCode(row pgx.Row) (*models.FareBasisCode, error) {
	var f models.FareBasisCode
	err := row.Scan(&f.ID, &f.Code, &f.Description, &f.AirlineID, &f.Deleted, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan fare basis code: %w", err)
	}
	return &f, nil
}

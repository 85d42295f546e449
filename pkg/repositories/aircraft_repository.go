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

// AircraftRepository provides data access for fleet aircraft.
type AircraftRepository interface {
	Create(ctx context.Context, aircraft *models.Aircraft) error
	Update(ctx context.Context, aircraft *models.Aircraft) error
	GetActiveByID(ctx context.Context, id uuid.UUID) (*models.Aircraft, error)
	GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*models.Aircraft, error)
	PagedFind(ctx context.Context, f *query.Filter, order query.Order, page query.PageRequest) ([]*models.Aircraft, int, error)
	SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error

	// ExistsActiveByAirline is the dependency probe consulted before an
	// airline is deleted.
	ExistsActiveByAirline(ctx context.Context, airlineID uuid.UUID) (bool, error)
}

type aircraftRepository struct {
	db *database.DB
}

// NewAircraftRepository creates a new AircraftRepository.
func NewAircraftRepository(db *database.DB) AircraftRepository {
	return &aircraftRepository{db: db}
}

var _ AircraftRepository = (*aircraftRepository)(nil)

const aircraftColumns = "id, tail_number, model, airline_id, deleted, created_at, updated_at"

func (r *aircraftRepository) Create(ctx context.Context, aircraft *models.Aircraft) error {
	now := time.Now().UTC()

	sql := `
		INSERT INTO aircraft (tail_number, model, airline_id, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, FALSE, $4, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, sql, aircraft.TailNumber, aircraft.Model, aircraft.AirlineID, now).
		Scan(&aircraft.ID, &aircraft.CreatedAt, &aircraft.UpdatedAt)
	if err != nil {
		return translateWriteErr("create aircraft", err)
	}
	return nil
}

func (r *aircraftRepository) Update(ctx context.Context, aircraft *models.Aircraft) error {
	sql := `
		UPDATE aircraft
		SET model = $2, updated_at = now()
		WHERE id = $1 AND deleted = FALSE
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, sql, aircraft.ID, aircraft.Model).Scan(&aircraft.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return translateWriteErr("update aircraft", err)
	}
	return nil
}

func (r *aircraftRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*models.Aircraft, error) {
	sql := fmt.Sprintf("SELECT %s FROM aircraft WHERE id = $1 AND deleted = FALSE", aircraftColumns)
	return scanAircraft(r.db.QueryRow(ctx, sql, id))
}

func (r *aircraftRepository) GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*models.Aircraft, error) {
	sql := fmt.Sprintf("SELECT %s FROM aircraft WHERE id = $1", aircraftColumns)
	return scanAircraft(r.db.QueryRow(ctx, sql, id))
}

func (r *aircraftRepository) PagedFind(ctx context.Context, f *query.Filter, order query.Order, page query.PageRequest) ([]*models.Aircraft, int, error) {
	return pagedFind(ctx, r.db, "aircraft", aircraftColumns, f, order, page,
		func(row pgx.Row) (*models.Aircraft, error) { return scanAircraft(row) })
}

func (r *aircraftRepository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	return setDeleted(ctx, r.db, "aircraft", id, deleted)
}

func (r *aircraftRepository) ExistsActiveByAirline(ctx context.Context, airlineID uuid.UUID) (bool, error) {
	return existsWhere(ctx, r.db, "aircraft", "airline_id = $1 AND deleted = FALSE", airlineID)
}

func scanAircraft(row pgx.Row) (*models.Aircraft, error) {
	var a models.Aircraft
	err := row.Scan(&a.ID, &a.TailNumber, &a.Model, &a.AirlineID, &a.Deleted, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan aircraft: %w", err)
	}
	return &a, nil
}

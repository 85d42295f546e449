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

// ContextAttributesRepository provides data access for pricing contexts.
type ContextAttributesRepository interface {
	Create(ctx context.Context, attrs *models.ContextAttributes) error
	Update(ctx context.Context, attrs *models.ContextAttributes) error
	GetActiveByID(ctx context.Context, id uuid.UUID) (*models.ContextAttributes, error)
	GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*models.ContextAttributes, error)
	ExistsActive(ctx context.Context, id uuid.UUID) (bool, error)
	PagedFind(ctx context.Context, f *query.Filter, order query.Order, page query.PageRequest) ([]*models.ContextAttributes, int, error)
	SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error
}

type contextAttributesRepository struct {
	db *database.DB
}

// NewContextAttributesRepository creates a new ContextAttributesRepository.
func NewContextAttributesRepository(db *database.DB) ContextAttributesRepository {
	return &contextAttributesRepository{db: db}
}

var _ ContextAttributesRepository = (*contextAttributesRepository)(nil)

const contextAttributesColumns = "id, origin, destination, cabin_class, sales_channel, deleted, created_at, updated_at"

func (r *contextAttributesRepository) Create(ctx context.Context, attrs *models.ContextAttributes) error {
	now := time.Now().UTC()

	sql := `
		INSERT INTO context_attributes (origin, destination, cabin_class, sales_channel, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, FALSE, $5, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, sql, attrs.Origin, attrs.Destination, attrs.CabinClass, attrs.SalesChannel, now).
		Scan(&attrs.ID, &attrs.CreatedAt, &attrs.UpdatedAt)
	if err != nil {
		return translateWriteErr("create context attributes", err)
	}
	return nil
}

func (r *contextAttributesRepository) Update(ctx context.Context, attrs *models.ContextAttributes) error {
	sql := `
		UPDATE context_attributes
		SET cabin_class = $2, sales_channel = $3, updated_at = now()
		WHERE id = $1 AND deleted = FALSE
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, sql, attrs.ID, attrs.CabinClass, attrs.SalesChannel).Scan(&attrs.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return translateWriteErr("update context attributes", err)
	}
	return nil
}

func (r *contextAttributesRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*models.ContextAttributes, error) {
	sql := fmt.Sprintf("SELECT %s FROM context_attributes WHERE id = $1 AND deleted = FALSE", contextAttributesColumns)
	return scanContextAttributes(r.db.QueryRow(ctx, sql, id))
}

func (r *contextAttributesRepository) GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*models.ContextAttributes, error) {
	sql := fmt.Sprintf("SELECT %s FROM context_attributes WHERE id = $1", contextAttributesColumns)
	return scanContextAttributes(r.db.QueryRow(ctx, sql, id))
}

func (r *contextAttributesRepository) ExistsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	return existsWhere(ctx, r.db, "context_attributes", "id = $1 AND deleted = FALSE", id)
}

func (r *contextAttributesRepository) PagedFind(ctx context.Context, f *query.Filter, order query.Order, page query.PageRequest) ([]*models.ContextAttributes, int, error) {
	return pagedFind(ctx, r.db, "context_attributes", contextAttributesColumns, f, order, page,
		func(row pgx.Row) (*models.ContextAttributes, error) { return scanContextAttributes(row) })
}

func (r *contextAttributesRepository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	return setDeleted(ctx, r.db, "context_attributes", id, deleted)
}

func scanContextAttributes(row pgx.Row) (*models.ContextAttributes, error) {
	var c models.ContextAttributes
	err := row.Scan(&c.ID, &c.Origin, &c.Destination, &c.CabinClass, &c.SalesChannel, &c.Deleted, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan context attributes: %w", err)
	}
	return &c, nil
}

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

// AncillaryProductRepository provides data access for ancillary products.
type AncillaryProductRepository interface {
	Create(ctx context.Context, product *models.AncillaryProduct) error
	Update(ctx context.Context, product *models.AncillaryProduct) error
	GetActiveByID(ctx context.Context, id uuid.UUID) (*models.AncillaryProduct, error)
	GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*models.AncillaryProduct, error)
	ExistsActive(ctx context.Context, id uuid.UUID) (bool, error)
	PagedFind(ctx context.Context, f *query.Filter, order query.Order, page query.PageRequest) ([]*models.AncillaryProduct, int, error)
	SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error
}

type ancillaryProductRepository struct {
	db *database.DB
}

// NewAncillaryProductRepository creates a new AncillaryProductRepository.
func NewAncillaryProductRepository(db *database.DB) AncillaryProductRepository {
	return &ancillaryProductRepository{db: db}
}

var _ AncillaryProductRepository = (*ancillaryProductRepository)(nil)

const ancillaryProductColumns = "id, code, name, deleted, created_at, updated_at"

func (r *ancillaryProductRepository) Create(ctx context.Context, product *models.AncillaryProduct) error {
	now := time.Now().UTC()

	sql := `
		INSERT INTO ancillary_products (code, name, deleted, created_at, updated_at)
		VALUES ($1, $2, FALSE, $3, $3)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, sql, product.Code, product.Name, now).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return translateWriteErr("create ancillary product", err)
	}
	return nil
}

func (r *ancillaryProductRepository) Update(ctx context.Context, product *models.AncillaryProduct) error {
	sql := `
		UPDATE ancillary_products
		SET name = $2, updated_at = now()
		WHERE id = $1 AND deleted = FALSE
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, sql, product.ID, product.Name).Scan(&product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return translateWriteErr("update ancillary product", err)
	}
	return nil
}

func (r *ancillaryProductRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*models.AncillaryProduct, error) {
	sql := fmt.Sprintf("SELECT %s FROM ancillary_products WHERE id = $1 AND deleted = FALSE", ancillaryProductColumns)
	return scanAncillaryProduct(r.db.QueryRow(ctx, sql, id))
}

func (r *ancillaryProductRepository) GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*models.AncillaryProduct, error) {
	sql := fmt.Sprintf("SELECT %s FROM ancillary_products WHERE id = $1", ancillaryProductColumns)
	return scanAncillaryProduct(r.db.QueryRow(ctx, sql, id))
}

func (r *ancillaryProductRepository) ExistsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	return existsWhere(ctx, r.db, "ancillary_products", "id = $1 AND deleted = FALSE", id)
}

func (r *ancillaryProductRepository) PagedFind(ctx context.Context, f *query.Filter, order query.Order, page query.PageRequest) ([]*models.AncillaryProduct, int, error) {
	return pagedFind(ctx, r.db, "ancillary_products", ancillaryProductColumns, f, order, page,
		func(row pgx.Row) (*models.AncillaryProduct, error) { return scanAncillaryProduct(row) })
}

func (r *ancillaryProductRepository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	return setDeleted(ctx, r.db, "ancillary_products", id, deleted)
}

func scanAncillaryProduct(row pgx.Row) (*models.AncillaryProduct, error) {
	var p models.AncillaryProduct
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Deleted, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan ancillary product: %w", err)
	}
	return &p, nil
}

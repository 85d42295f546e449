package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fareops/catalog-engine/pkg/apperrors"
	"github.com/fareops/catalog-engine/pkg/database"
	"github.com/fareops/catalog-engine/pkg/models"
	"github.com/fareops/catalog-engine/pkg/query"
)

// PriceOfferRepository provides data access for price offer logs. Rows are
// insert-only apart from the lifecycle flag.
type PriceOfferRepository interface {
	Create(ctx context.Context, rec *models.PriceOfferLog) error
	GetActiveByID(ctx context.Context, id uuid.UUID) (*models.PriceOfferLog, error)
	GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*models.PriceOfferLog, error)
	PagedFind(ctx context.Context, f *query.Filter, order query.Order, page query.PageRequest) ([]*models.PriceOfferLog, int, error)
	SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error

	// ListQuotes returns the offer prices of every row matching the filter,
	// in quoting order. Feeds the analytics aggregator.
	ListQuotes(ctx context.Context, f *query.Filter) ([]decimal.Decimal, error)

	// Dependency probes consulted before deleting the referenced rows.
	ExistsActiveByFareBasisCode(ctx context.Context, fareBasisCodeID uuid.UUID) (bool, error)
	ExistsActiveByAncillaryProduct(ctx context.Context, productID uuid.UUID) (bool, error)
	ExistsActiveByContextAttributes(ctx context.Context, contextID uuid.UUID) (bool, error)
}

type priceOfferRepository struct {
	db *database.DB
}

// NewPriceOfferRepository creates a new PriceOfferRepository.
func NewPriceOfferRepository(db *database.DB) PriceOfferRepository {
	return &priceOfferRepository{db: db}
}

var _ PriceOfferRepository = (*priceOfferRepository)(nil)

// offer_price travels as text so it round-trips through shopspring/decimal
// without a float conversion.
const priceOfferColumns = "id, fare_basis_code_id, ancillary_product_id, context_attributes_id, offer_price::text, quoted_at, deleted, created_at"

func (r *priceOfferRepository) Create(ctx context.Context, rec *models.PriceOfferLog) error {
	now := time.Now().UTC()

	sql := `
		INSERT INTO price_offer_logs (
			fare_basis_code_id, ancillary_product_id, context_attributes_id,
			offer_price, quoted_at, deleted, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, FALSE, $6, $6)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, sql,
		rec.FareBasisCodeID,
		rec.AncillaryProductID,
		rec.ContextAttributesID,
		rec.OfferPrice.String(),
		rec.QuotedAt,
		now,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return translateWriteErr("create price offer log", err)
	}
	return nil
}

func (r *priceOfferRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*models.PriceOfferLog, error) {
	sql := fmt.Sprintf("SELECT %s FROM price_offer_logs WHERE id = $1 AND deleted = FALSE", priceOfferColumns)
	return scanPriceOfferLog(r.db.QueryRow(ctx, sql, id))
}

func (r *priceOfferRepository) GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*models.PriceOfferLog, error) {
	sql := fmt.Sprintf("SELECT %s FROM price_offer_logs WHERE id = $1", priceOfferColumns)
	return scanPriceOfferLog(r.db.QueryRow(ctx, sql, id))
}

func (r *priceOfferRepository) PagedFind(ctx context.Context, f *query.Filter, order query.Order, page query.PageRequest) ([]*models.PriceOfferLog, int, error) {
	return pagedFind(ctx, r.db, "price_offer_logs", priceOfferColumns, f, order, page,
		func(row pgx.Row) (*models.PriceOfferLog, error) { return scanPriceOfferLog(row) })
}

func (r *priceOfferRepository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	return setDeleted(ctx, r.db, "price_offer_logs", id, deleted)
}

func (r *priceOfferRepository) ListQuotes(ctx context.Context, f *query.Filter) ([]decimal.Decimal, error) {
	where, args := f.Clause()
	sql := fmt.Sprintf("SELECT offer_price::text FROM price_offer_logs %s ORDER BY quoted_at, id", where)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query offer prices: %w", err)
	}
	defer rows.Close()

	var quotes []decimal.Decimal
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan offer price: %w", err)
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse offer price %q: %w", raw, err)
		}
		quotes = append(quotes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating offer prices: %w", err)
	}

	return quotes, nil
}

func (r *priceOfferRepository) ExistsActiveByFareBasisCode(ctx context.Context, fareBasisCodeID uuid.UUID) (bool, error) {
	return existsWhere(ctx, r.db, "price_offer_logs", "fare_basis_code_id = $1 AND deleted = FALSE", fareBasisCodeID)
}

func (r *priceOfferRepository) ExistsActiveByAncillaryProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	return existsWhere(ctx, r.db, "price_offer_logs", "ancillary_product_id = $1 AND deleted = FALSE", productID)
}

func (r *priceOfferRepository) ExistsActiveByContextAttributes(ctx context.Context, contextID uuid.UUID) (bool, error) {
	return existsWhere(ctx, r.db, "price_offer_logs", "context_attributes_id = $1 AND deleted = FALSE", contextID)
}

func scanPriceOfferLog(row pgx.Row) (*models.PriceOfferLog, error) {
	var p models.PriceOfferLog
	var rawPrice string

	err := row.Scan(
		&p.ID,
		&p.FareBasisCodeID,
		&p.AncillaryProductID,
		&p.ContextAttributesID,
		&rawPrice,
		&p.QuotedAt,
		&p.Deleted,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan price offer log: %w", err)
	}

	p.OfferPrice, err = decimal.NewFromString(rawPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to parse offer price %q: %w", rawPrice, err)
	}
	return &p, nil
}

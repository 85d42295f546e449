package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fareops/catalog-engine/pkg/apperrors"
	"github.com/fareops/catalog-engine/pkg/database"
	"github.com/fareops/catalog-engine/pkg/query"
)

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// translateWriteErr maps storage-level write failures onto the error taxonomy:
// duplicate unique keys become ErrConflict, everything else is wrapped as-is.
func translateWriteErr(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, apperrors.ErrConflict)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// pagedFind runs the count and the windowed fetch for one listing against the
// same filter. The two statements execute back to back on the pool without a
// shared snapshot, so the count can be stale relative to the window under
// concurrent writes. The window is ordered by the caller's column with the id
// as tiebreak, which keeps consecutive pages disjoint and exhaustive at a
// fixed data state.
func pagedFind[T any](
	ctx context.Context,
	db *database.DB,
	table, columns string,
	f *query.Filter,
	order query.Order,
	page query.PageRequest,
	scan func(pgx.Row) (T, error),
) ([]T, int, error) {
	where, args := f.Clause()

	var total int
	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", table, where)
	if err := db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count %s: %w", table, err)
	}

	n := f.NextPlaceholder()
	fetchSQL := fmt.Sprintf("SELECT %s FROM %s %s %s LIMIT $%d OFFSET $%d",
		columns, table, where, order.Clause("id"), n, n+1)

	rows, err := db.Query(ctx, fetchSQL, append(args, page.Size, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating %s: %w", table, err)
	}

	return items, total, nil
}

// setDeleted flips a row's lifecycle flag, conditionally on the flag holding
// the opposite value. Zero rows affected means the row either does not exist
// or was flipped by a concurrent request; both surface as ErrConflict because
// the service layer has already resolved the row's state.
func setDeleted(ctx context.Context, db *database.DB, table string, id any, deleted bool) error {
	sql := fmt.Sprintf(
		"UPDATE %s SET deleted = $2, updated_at = now() WHERE id = $1 AND deleted = NOT $2", table)

	tag, err := db.Exec(ctx, sql, id, deleted)
	if err != nil {
		return fmt.Errorf("failed to update %s lifecycle: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// existsWhere runs a single existence probe.
func existsWhere(ctx context.Context, db *database.DB, table, cond string, args ...any) (bool, error) {
	var exists bool
	sql := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s)", table, cond)
	if err := db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to probe %s: %w", table, err)
	}
	return exists, nil
}

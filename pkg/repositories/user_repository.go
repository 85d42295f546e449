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

// UserRepository provides data access for backend user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	GetActiveByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*models.User, error)
	PagedFind(ctx context.Context, f *query.Filter, order query.Order, page query.PageRequest) ([]*models.User, int, error)
	SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error

	// ExistsActiveByAirline is the dependency probe consulted before an
	// airline is deleted.
	ExistsActiveByAirline(ctx context.Context, airlineID uuid.UUID) (bool, error)
}

type userRepository struct {
	db *database.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *database.DB) UserRepository {
	return &userRepository{db: db}
}

var _ UserRepository = (*userRepository)(nil)

const userColumns = "id, email, display_name, user_type, airline_id, deleted, created_at, updated_at"

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()

	sql := `
		INSERT INTO users (email, display_name, user_type, airline_id, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, FALSE, $5, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, sql, user.Email, user.DisplayName, user.UserType, user.AirlineID, now).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return translateWriteErr("create user", err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	sql := `
		UPDATE users
		SET display_name = $2, user_type = $3, airline_id = $4, updated_at = now()
		WHERE id = $1 AND deleted = FALSE
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, sql, user.ID, user.DisplayName, user.UserType, user.AirlineID).
		Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return translateWriteErr("update user", err)
	}
	return nil
}

func (r *userRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	sql := fmt.Sprintf("SELECT %s FROM users WHERE id = $1 AND deleted = FALSE", userColumns)
	return scanUser(r.db.QueryRow(ctx, sql, id))
}

func (r *userRepository) GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*models.User, error) {
	sql := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)
	return scanUser(r.db.QueryRow(ctx, sql, id))
}

func (r *userRepository) PagedFind(ctx context.Context, f *query.Filter, order query.Order, page query.PageRequest) ([]*models.User, int, error) {
	return pagedFind(ctx, r.db, "users", userColumns, f, order, page,
		func(row pgx.Row) (*models.User, error) { return scanUser(row) })
}

func (r *userRepository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	return setDeleted(ctx, r.db, "users", id, deleted)
}

func (r *userRepository) ExistsActiveByAirline(ctx context.Context, airlineID uuid.UUID) (bool, error) {
	return existsWhere(ctx, r.db, "users", "airline_id = $1 AND deleted = FALSE", airlineID)
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.UserType, &u.AirlineID, &u.Deleted, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fareops/catalog-engine/pkg/apperrors"
	"github.com/fareops/catalog-engine/pkg/models"
	"github.com/fareops/catalog-engine/pkg/query"
	"github.com/fareops/catalog-engine/pkg/repositories"
)

// UserCriteria holds the optional filter terms of a user listing.
type UserCriteria struct {
	EmailContains  string
	UserType       string
	AirlineID      *uuid.UUID
	IncludeDeleted bool
}

// CreateUserInput is the payload for provisioning a user account.
type CreateUserInput struct {
	Email       string
	DisplayName string
	UserType    string
	AirlineID   *uuid.UUID
}

// UpdateUserInput is the payload for updating a user account. Email is
// immutable.
type UpdateUserInput struct {
	DisplayName string
	UserType    string
	AirlineID   *uuid.UUID
}

// UserService provides operations for backend user accounts.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, criteria UserCriteria, page query.PageRequest) (query.Page[*models.User], error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error

	// GetProfile resolves the type-specific profile shape for an active
	// user: one switch over the user type with an explicit default, so an
	// unrecognized stored value fails loudly instead of falling through.
	GetProfile(ctx context.Context, id uuid.UUID) (models.UserProfile, error)
}

type userService struct {
	users    repositories.UserRepository
	airlines repositories.AirlineRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	users repositories.UserRepository,
	airlines repositories.AirlineRepository,
	logger *zap.Logger,
) UserService {
	return &userService{
		users:    users,
		airlines: airlines,
		logger:   logger.Named("user-service"),
	}
}

var _ UserService = (*userService)(nil)

func (s *userService) validateTypeAndAirline(ctx context.Context, userType string, airlineID *uuid.UUID) error {
	if !models.IsValidUserType(userType) {
		return apperrors.Validationf("user type must be one of %s", strings.Join(models.ValidUserTypes, ", "))
	}
	if userType == models.UserTypeCarrierAgent {
		if airlineID == nil {
			return apperrors.Validationf("carrier agents must be assigned to an airline")
		}
		if _, err := s.airlines.GetActiveByID(ctx, *airlineID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.Validationf("airline %s does not exist or is deleted", *airlineID)
			}
			return err
		}
	} else if airlineID != nil {
		return apperrors.Validationf("only carrier agents can be assigned to an airline")
	}
	return nil
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.Validationf("a valid email address is required")
	}
	if err := s.validateTypeAndAirline(ctx, input.UserType, input.AirlineID); err != nil {
		return nil, err
	}

	user := &models.User{
		Email:       email,
		DisplayName: strings.TrimSpace(input.DisplayName),
		UserType:    input.UserType,
		AirlineID:   input.AirlineID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User provisioned",
		zap.String("user_id", user.ID.String()),
		zap.String("user_type", user.UserType))
	return user, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*models.User, error) {
	user, err := s.users.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateTypeAndAirline(ctx, input.UserType, input.AirlineID); err != nil {
		return nil, err
	}

	user.DisplayName = strings.TrimSpace(input.DisplayName)
	user.UserType = input.UserType
	user.AirlineID = input.AirlineID
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.GetActiveByID(ctx, id)
}

func (s *userService) List(ctx context.Context, criteria UserCriteria, page query.PageRequest) (query.Page[*models.User], error) {
	if err := page.Validate(); err != nil {
		return query.Page[*models.User]{}, err
	}

	f := query.NewFilter()
	if !criteria.IncludeDeleted {
		f.ActiveOnly()
	}
	f.ContainsFold("email", criteria.EmailContains)
	if criteria.UserType != "" {
		f.Equals("user_type", criteria.UserType)
	}
	f.EqualsID("airline_id", criteria.AirlineID)

	items, total, err := s.users.PagedFind(ctx, f, query.Order{Column: "email"}, page)
	if err != nil {
		return query.Page[*models.User]{}, err
	}
	return query.NewPage(items, total, page), nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, id, s.users.GetByIDIncludingDeleted, nil, s.users.SetDeleted)
}

func (s *userService) Reactivate(ctx context.Context, id uuid.UUID) error {
	return reactivate(ctx, id, s.users.GetByIDIncludingDeleted, s.users.SetDeleted)
}

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (models.UserProfile, error) {
	user, err := s.users.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch user.UserType {
	case models.UserTypeAdmin:
		return models.AdminProfile{User: *user}, nil
	case models.UserTypeCarrierAgent:
		var airline *models.Airline
		if user.AirlineID != nil {
			// Resolved including deleted rows: an agent of a since-deleted
			// carrier still has a profile.
			airline, err = s.airlines.GetByIDIncludingDeleted(ctx, *user.AirlineID)
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return nil, err
			}
		}
		return models.CarrierAgentProfile{User: *user, Airline: airline}, nil
	case models.UserTypeAnalyst:
		return models.AnalystProfile{User: *user}, nil
	default:
		s.logger.Warn("User row carries unrecognized user type",
			zap.String("user_id", user.ID.String()),
			zap.String("user_type", user.UserType))
		return nil, apperrors.ErrInvalidUserType
	}
}

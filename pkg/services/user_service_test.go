package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fareops/catalog-engine/pkg/apperrors"
	"github.com/fareops/catalog-engine/pkg/models"
)

type userFixture struct {
	svc      UserService
	users    *userRepoMock
	airlines *airlineRepoMock
}

func newUserFixture() *userFixture {
	f := &userFixture{
		users:    newUserRepoMock(),
		airlines: newAirlineRepoMock(),
	}
	f.svc = NewUserService(f.users, f.airlines, zap.NewNop())
	return f
}

func TestUserCreateValidations(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	airline := f.airlines.add(&models.Airline{Name: "Lufthansa", IataCode: "LH"})

	tests := []struct {
		name  string
		input CreateUserInput
	}{
		{"missing email", CreateUserInput{UserType: models.UserTypeAdmin}},
		{"malformed email", CreateUserInput{Email: "not-an-email", UserType: models.UserTypeAdmin}},
		{"unknown type", CreateUserInput{Email: "a@b.example", UserType: "superuser"}},
		{"agent without airline", CreateUserInput{Email: "a@b.example", UserType: models.UserTypeCarrierAgent}},
		{"admin with airline", CreateUserInput{Email: "a@b.example", UserType: models.UserTypeAdmin, AirlineID: &airline.ID}},
		{"analyst with airline", CreateUserInput{Email: "a@b.example", UserType: models.UserTypeAnalyst, AirlineID: &airline.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, tt.input)
			assert.True(t, apperrors.IsValidation(err), "got %v", err)
		})
	}
	assert.Empty(t, f.users.rows)
}

func TestUserCreateCarrierAgentRequiresActiveAirline(t *testing.T) {
	f := newUserFixture()
	airline := f.airlines.add(&models.Airline{Name: "Lufthansa", IataCode: "LH", Deleted: true})

	_, err := f.svc.Create(context.Background(), CreateUserInput{
		Email:     "agent@lh.example",
		UserType:  models.UserTypeCarrierAgent,
		AirlineID: &airline.ID,
	})

	assert.True(t, apperrors.IsValidation(err))
}

func TestUserCreateLowercasesEmail(t *testing.T) {
	f := newUserFixture()
	airline := f.airlines.add(&models.Airline{Name: "Lufthansa", IataCode: "LH"})

	user, err := f.svc.Create(context.Background(), CreateUserInput{
		Email:       " Agent@LH.Example ",
		DisplayName: "Agent",
		UserType:    models.UserTypeCarrierAgent,
		AirlineID:   &airline.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, "agent@lh.example", user.Email)
}

func TestUserProfileDispatch(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	airline := f.airlines.add(&models.Airline{Name: "Lufthansa", IataCode: "LH"})

	admin := f.users.add(&models.User{Email: "root@example.com", UserType: models.UserTypeAdmin})
	agent := f.users.add(&models.User{Email: "agent@lh.example", UserType: models.UserTypeCarrierAgent, AirlineID: &airline.ID})
	analyst := f.users.add(&models.User{Email: "ops@example.com", UserType: models.UserTypeAnalyst})

	profile, err := f.svc.GetProfile(ctx, admin.ID)
	require.NoError(t, err)
	assert.IsType(t, models.AdminProfile{}, profile)

	profile, err = f.svc.GetProfile(ctx, agent.ID)
	require.NoError(t, err)
	agentProfile, ok := profile.(models.CarrierAgentProfile)
	require.True(t, ok)
	require.NotNil(t, agentProfile.Airline)
	assert.Equal(t, airline.ID, agentProfile.Airline.ID)

	profile, err = f.svc.GetProfile(ctx, analyst.ID)
	require.NoError(t, err)
	assert.IsType(t, models.AnalystProfile{}, profile)
}

func TestUserProfileResolvesDeletedAirline(t *testing.T) {
	f := newUserFixture()
	airline := f.airlines.add(&models.Airline{Name: "Lufthansa", IataCode: "LH", Deleted: true})
	agent := f.users.add(&models.User{Email: "agent@lh.example", UserType: models.UserTypeCarrierAgent, AirlineID: &airline.ID})

	profile, err := f.svc.GetProfile(context.Background(), agent.ID)

	require.NoError(t, err)
	agentProfile, ok := profile.(models.CarrierAgentProfile)
	require.True(t, ok)
	require.NotNil(t, agentProfile.Airline)
	assert.True(t, agentProfile.Airline.Deleted)
}

func TestUserProfileUnknownStoredTypeFailsLoudly(t *testing.T) {
	f := newUserFixture()
	user := f.users.add(&models.User{Email: "ghost@example.com", UserType: "superuser"})

	_, err := f.svc.GetProfile(context.Background(), user.ID)

	assert.ErrorIs(t, err, apperrors.ErrInvalidUserType)
}

func TestUserProfileOfDeletedUserIsNotFound(t *testing.T) {
	f := newUserFixture()
	user := f.users.add(&models.User{Email: "gone@example.com", UserType: models.UserTypeAdmin, Deleted: true})

	_, err := f.svc.GetProfile(context.Background(), user.ID)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserDeleteReactivateRoundTrip(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	user := f.users.add(&models.User{Email: "ops@example.com", UserType: models.UserTypeAnalyst})

	require.NoError(t, f.svc.Delete(ctx, user.ID))
	assert.True(t, user.Deleted)

	require.NoError(t, f.svc.Reactivate(ctx, user.ID))
	assert.False(t, user.Deleted)
}

func TestUserUpdateRevalidatesTypeAndAirline(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	airline := f.airlines.add(&models.Airline{Name: "Lufthansa", IataCode: "LH"})
	user := f.users.add(&models.User{Email: "ops@example.com", UserType: models.UserTypeAnalyst})

	// Promoting an analyst to carrier agent needs an airline.
	_, err := f.svc.Update(ctx, user.ID, UpdateUserInput{DisplayName: "Ops", UserType: models.UserTypeCarrierAgent})
	assert.True(t, apperrors.IsValidation(err))

	updated, err := f.svc.Update(ctx, user.ID, UpdateUserInput{
		DisplayName: "Ops",
		UserType:    models.UserTypeCarrierAgent,
		AirlineID:   &airline.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserTypeCarrierAgent, updated.UserType)
}

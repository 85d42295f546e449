package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fareops/catalog-engine/pkg/apperrors"
	"github.com/fareops/catalog-engine/pkg/models"
	"github.com/fareops/catalog-engine/pkg/query"
)

func newCountryFixture() (CountryService, *countryRepoMock, *airlineRepoMock) {
	countries := newCountryRepoMock()
	airlines := newAirlineRepoMock()
	svc := NewCountryService(countries, airlines, zap.NewNop())
	return svc, countries, airlines
}

func TestCountryCreateNormalizesInput(t *testing.T) {
	svc, _, _ := newCountryFixture()

	country, err := svc.Create(context.Background(), "  Germany ", "de")

	require.NoError(t, err)
	assert.Equal(t, "Germany", country.Name)
	assert.Equal(t, "DE", country.IsoCode)
	assert.NotEqual(t, uuid.Nil, country.ID)
}

func TestCountryCreateRejectsBadInput(t *testing.T) {
	svc, _, _ := newCountryFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "DE")
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Create(ctx, "Germany", "DEU")
	assert.True(t, apperrors.IsValidation(err))
}

func TestCountryUpdateRequiresActiveRow(t *testing.T) {
	svc, countries, _ := newCountryFixture()
	deleted := countries.add(&models.Country{Name: "Atlantis", IsoCode: "AT", Deleted: true})

	_, err := svc.Update(context.Background(), deleted.ID, "New Atlantis")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCountryListExcludesDeletedByDefault(t *testing.T) {
	svc, countries, _ := newCountryFixture()

	_, err := svc.List(context.Background(), CountryCriteria{NameContains: "ger"}, query.PageRequest{Number: 1, Size: 25})
	require.NoError(t, err)

	where, args := countries.lastFilter.Clause()
	assert.Contains(t, where, "deleted = FALSE")
	assert.Contains(t, where, "UPPER(name)")
	assert.Equal(t, []any{"ger"}, args)
}

func TestCountryListIncludeDeletedDropsTheLifecycleTerm(t *testing.T) {
	svc, countries, _ := newCountryFixture()

	_, err := svc.List(context.Background(), CountryCriteria{IncludeDeleted: true}, query.PageRequest{Number: 1, Size: 25})
	require.NoError(t, err)

	where, _ := countries.lastFilter.Clause()
	assert.NotContains(t, where, "deleted = FALSE")
}

func TestCountryListRejectsBadPage(t *testing.T) {
	svc, _, _ := newCountryFixture()

	_, err := svc.List(context.Background(), CountryCriteria{}, query.PageRequest{Number: 0, Size: 25})

	assert.True(t, apperrors.IsValidation(err))
}

func TestCountryDeleteBlockedByActiveAirlines(t *testing.T) {
	svc, countries, airlines := newCountryFixture()
	country := countries.add(&models.Country{Name: "Germany", IsoCode: "DE"})
	airline := airlines.add(&models.Airline{Name: "Lufthansa", IataCode: "LH", CountryID: country.ID})

	err := svc.Delete(context.Background(), country.ID)

	var depErr *apperrors.DependencyBlockedError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, []string{"active airlines"}, depErr.Dependents)
	assert.False(t, country.Deleted)

	// A soft-deleted airline no longer blocks.
	airline.Deleted = true
	require.NoError(t, svc.Delete(context.Background(), country.ID))
	assert.True(t, country.Deleted)
}

func TestCountryDeleteBlockersIsAPureRead(t *testing.T) {
	svc, countries, airlines := newCountryFixture()
	country := countries.add(&models.Country{Name: "Germany", IsoCode: "DE"})
	airlines.add(&models.Airline{Name: "Lufthansa", IataCode: "LH", CountryID: country.ID})

	blockers, err := svc.DeleteBlockers(context.Background(), country.ID)

	require.NoError(t, err)
	assert.Equal(t, []string{"active airlines"}, blockers)
	assert.False(t, country.Deleted)
}

func TestCountryReactivateRoundTrip(t *testing.T) {
	svc, countries, _ := newCountryFixture()
	country := countries.add(&models.Country{Name: "Germany", IsoCode: "DE"})
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, country.ID))
	require.True(t, country.Deleted)

	require.NoError(t, svc.Reactivate(ctx, country.ID))
	assert.False(t, country.Deleted)

	assert.ErrorIs(t, svc.Reactivate(ctx, country.ID), apperrors.ErrAlreadyActive)
}

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
)

type fareCodeFixture struct {
	svc       FareBasisCodeService
	fareCodes *fareBasisCodeRepoMock
	airlines  *airlineRepoMock
	offers    *priceOfferRepoMock
}

func newFareCodeFixture() *fareCodeFixture {
	f := &fareCodeFixture{
		fareCodes: newFareBasisCodeRepoMock(),
		airlines:  newAirlineRepoMock(),
		offers:    newPriceOfferRepoMock(),
	}
	f.svc = NewFareBasisCodeService(f.fareCodes, f.airlines, f.offers, zap.NewNop())
	return f
}

func TestFareBasisCodeCreateUppercases(t *testing.T) {
	f := newFareCodeFixture()
	airline := f.airlines.add(&models.Airline{Name: "Lufthansa", IataCode: "LH"})

	fareCode, err := f.svc.Create(context.Background(), CreateFareBasisCodeInput{
		Code:        " yflex ",
		Description: "Flexible economy",
		AirlineID:   airline.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, "YFLEX", fareCode.Code)
}

func TestFareBasisCodeCreateRequiresActiveAirline(t *testing.T) {
	f := newFareCodeFixture()

	_, err := f.svc.Create(context.Background(), CreateFareBasisCodeInput{
		Code:      "YFLEX",
		AirlineID: uuid.New(),
	})

	assert.True(t, apperrors.IsValidation(err))
}

func TestFareBasisCodeDeleteBlockedByActiveOffers(t *testing.T) {
	f := newFareCodeFixture()
	airline := f.airlines.add(&models.Airline{Name: "Lufthansa", IataCode: "LH"})
	fareCode := f.fareCodes.add(&models.FareBasisCode{Code: "YFLEX", AirlineID: airline.ID})
	offer := f.offers.add(&models.PriceOfferLog{FareBasisCodeID: &fareCode.ID, ContextAttributesID: uuid.New()})

	err := f.svc.Delete(context.Background(), fareCode.ID)

	var depErr *apperrors.DependencyBlockedError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, []string{"active price offer logs"}, depErr.Dependents)

	// A soft-deleted offer log releases the block.
	offer.Deleted = true
	require.NoError(t, f.svc.Delete(context.Background(), fareCode.ID))
	assert.True(t, fareCode.Deleted)
}

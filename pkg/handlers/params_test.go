package handlers

import (
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fareops/catalog-engine/pkg/apperrors"
	"github.com/fareops/catalog-engine/pkg/config"
)

var testListing = config.ListingConfig{DefaultPageSize: 25, MaxPageSize: 200}

func TestParsePageDefaults(t *testing.T) {
	page, err := parsePage(url.Values{}, testListing)

	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 25, page.Size)
}

func TestParsePageReadsParameters(t *testing.T) {
	page, err := parsePage(url.Values{"page": {"3"}, "page_size": {"50"}}, testListing)

	require.NoError(t, err)
	assert.Equal(t, 3, page.Number)
	assert.Equal(t, 50, page.Size)
}

func TestParsePageRejectsOversizedWindow(t *testing.T) {
	_, err := parsePage(url.Values{"page_size": {"201"}}, testListing)

	assert.True(t, apperrors.IsValidation(err))
}

func TestParsePageRejectsGarbage(t *testing.T) {
	_, err := parsePage(url.Values{"page": {"first"}}, testListing)
	assert.True(t, apperrors.IsValidation(err))

	_, err = parsePage(url.Values{"page_size": {"many"}}, testListing)
	assert.True(t, apperrors.IsValidation(err))
}

func TestParsePagePassesNonPositiveValuesThrough(t *testing.T) {
	// Range checks live in the service layer so every entry point rejects
	// identically; the parser only guards the upper bound.
	page, err := parsePage(url.Values{"page": {"0"}}, testListing)

	require.NoError(t, err)
	assert.Equal(t, 0, page.Number)
	assert.Error(t, page.Validate())
}

func TestQueryUUID(t *testing.T) {
	id := uuid.New()

	got, err := queryUUID(url.Values{"airline_id": {id.String()}}, "airline_id")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, *got)

	got, err = queryUUID(url.Values{}, "airline_id")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = queryUUID(url.Values{"airline_id": {"not-a-uuid"}}, "airline_id")
	assert.True(t, apperrors.IsValidation(err))
}

func TestQueryTimeAcceptsBothFormats(t *testing.T) {
	got, err := queryTime(url.Values{"from": {"2026-03-14T09:26:53Z"}}, "from")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC), got.UTC())

	got, err = queryTime(url.Values{"from": {"2026-03-14"}}, "from")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), got.UTC())

	got, err = queryTime(url.Values{}, "from")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = queryTime(url.Values{"from": {"tomorrow"}}, "from")
	assert.True(t, apperrors.IsValidation(err))
}

func TestQueryBool(t *testing.T) {
	assert.True(t, queryBool(url.Values{"include_deleted": {"true"}}, "include_deleted"))
	assert.False(t, queryBool(url.Values{"include_deleted": {"yes"}}, "include_deleted"))
	assert.False(t, queryBool(url.Values{}, "include_deleted"))
}

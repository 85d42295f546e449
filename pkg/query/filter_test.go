package query

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEmptyFilterMatchesEverything(t *testing.T) {
	where, args := NewFilter().Clause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestFilterConjoinsTermsInOrder(t *testing.T) {
	id := uuid.New()
	f := NewFilter().
		ActiveOnly().
		ContainsFold("name", "luft").
		EqualsID("country_id", &id)

	where, args := f.Clause()

	assert.Equal(t, "WHERE deleted = FALSE AND UPPER(name) LIKE '%' || UPPER($1) || '%' AND country_id = $2", where)
	assert.Equal(t, []any{"luft", id}, args)
	assert.Equal(t, 3, f.NextPlaceholder())
}

func TestAbsentTermsAreSkipped(t *testing.T) {
	f := NewFilter().
		ContainsFold("name", "").
		EqualsID("country_id", nil).
		TimeRange("quoted_at", nil, nil)

	where, args := f.Clause()

	assert.Empty(t, where)
	assert.Empty(t, args)
	assert.Equal(t, 1, f.NextPlaceholder())
}

func TestTimeRangeBoundsAreInclusive(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	where, args := NewFilter().TimeRange("quoted_at", &from, &to).Clause()

	assert.Equal(t, "WHERE quoted_at >= $1 AND quoted_at <= $2", where)
	assert.Equal(t, []any{from, to}, args)
}

func TestTimeRangeOpenEnds(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	where, args := NewFilter().TimeRange("quoted_at", &from, nil).Clause()

	assert.Equal(t, "WHERE quoted_at >= $1", where)
	assert.Len(t, args, 1)
}

func TestOrderClauseAppendsTiebreak(t *testing.T) {
	assert.Equal(t, "ORDER BY name ASC, id", Order{Column: "name"}.Clause("id"))
	assert.Equal(t, "ORDER BY quoted_at DESC, id", Order{Column: "quoted_at", Descending: true}.Clause("id"))
}

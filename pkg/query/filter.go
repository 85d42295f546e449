package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Filter builds the WHERE clause of a catalog query out of independently
// optional terms. Terms are conjoined with AND in the order they were added;
// a term whose input is absent (nil pointer, empty string) is skipped rather
// than rendered as an always-true condition. Conflicting bounds are legal and
// simply match nothing.
//
// Column names are trusted literals supplied by the repositories, never
// caller input; values always travel as placeholder arguments.
type Filter struct {
	conds []string
	args  []any
}

// NewFilter returns an empty filter that matches every row.
func NewFilter() *Filter {
	return &Filter{}
}

// ActiveOnly restricts the filter to non-deleted rows.
func (f *Filter) ActiveOnly() *Filter {
	f.conds = append(f.conds, "deleted = FALSE")
	return f
}

// Equals adds an exact-match term.
func (f *Filter) Equals(column string, value any) *Filter {
	f.args = append(f.args, value)
	f.conds = append(f.conds, fmt.Sprintf("%s = $%d", column, len(f.args)))
	return f
}

// EqualsID adds an exact-match term on a UUID column, skipped when id is nil.
func (f *Filter) EqualsID(column string, id *uuid.UUID) *Filter {
	if id == nil {
		return f
	}
	return f.Equals(column, *id)
}

// ContainsFold adds a case-insensitive containment term, skipped when needle
// is empty. Both sides are upper-cased so "lh" matches "Lufthansa".
func (f *Filter) ContainsFold(column, needle string) *Filter {
	if needle == "" {
		return f
	}
	f.args = append(f.args, needle)
	f.conds = append(f.conds, fmt.Sprintf("UPPER(%s) LIKE '%%' || UPPER($%d) || '%%'", column, len(f.args)))
	return f
}

// TimeRange adds inclusive bounds on a timestamp column. Either bound may be
// nil, leaving that side open.
func (f *Filter) TimeRange(column string, from, to *time.Time) *Filter {
	if from != nil {
		f.args = append(f.args, *from)
		f.conds = append(f.conds, fmt.Sprintf("%s >= $%d", column, len(f.args)))
	}
	if to != nil {
		f.args = append(f.args, *to)
		f.conds = append(f.conds, fmt.Sprintf("%s <= $%d", column, len(f.args)))
	}
	return f
}

// Raw adds a pre-rendered condition that takes no arguments.
func (f *Filter) Raw(cond string) *Filter {
	f.conds = append(f.conds, cond)
	return f
}

// Clause renders the filter as a "WHERE ..." fragment plus its ordered
// arguments. An empty filter renders as the empty string.
func (f *Filter) Clause() (string, []any) {
	if len(f.conds) == 0 {
		return "", f.args
	}
	return "WHERE " + strings.Join(f.conds, " AND "), f.args
}

// NextPlaceholder returns the index the next $n placeholder should use, for
// callers that append LIMIT/OFFSET or other trailing arguments.
func (f *Filter) NextPlaceholder() int {
	return len(f.args) + 1
}

// Order describes the caller-supplied total order of a listing. The tiebreak
// column (always the unique id) keeps pagination stable when the primary
// column has duplicates.
type Order struct {
	Column     string
	Descending bool
}

// Clause renders "ORDER BY <col> <dir>, <tiebreak>".
func (o Order) Clause(tiebreak string) string {
	dir := "ASC"
	if o.Descending {
		dir = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s, %s", o.Column, dir, tiebreak)
}

package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fareops/catalog-engine/pkg/apperrors"
)

// Deletable is the lifecycle view of a catalog row: every entity owns exactly
// one Active/Deleted state through its deleted flag.
type Deletable interface {
	IsDeleted() bool
}

// DependencyProbe is one (label, existence check) pair of an entity type's
// fixed dependency set. The check is scoped to non-deleted rows referencing
// the key and performs no mutation, so probes are safe to run speculatively.
type DependencyProbe struct {
	Label  string
	Exists func(ctx context.Context, key uuid.UUID) (bool, error)
}

// CheckDependents runs every probe - deliberately not short-circuiting - and
// returns the labels of all blocking dependency kinds, so a refused delete
// can name everything standing in its way in one response.
func CheckDependents(ctx context.Context, key uuid.UUID, probes []DependencyProbe) ([]string, error) {
	var blocking []string
	for _, probe := range probes {
		exists, err := probe.Exists(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to probe %s: %w", probe.Label, err)
		}
		if exists {
			blocking = append(blocking, probe.Label)
		}
	}
	return blocking, nil
}

// softDelete drives the Active -> Deleted transition. The lookup resolves the
// row including deleted ones; a row that is already deleted surfaces as
// ErrNotFound because an active-only lookup would never have found it. The
// guard runs between lookup and flip: a dependent created in that window is
// an accepted race, but the flip itself is conditional on the flag, so a
// concurrent delete of the same row degrades to ErrConflict instead of a
// double write.
func softDelete[T Deletable](
	ctx context.Context,
	key uuid.UUID,
	lookup func(context.Context, uuid.UUID) (T, error),
	probes []DependencyProbe,
	flip func(context.Context, uuid.UUID, bool) error,
) error {
	entity, err := lookup(ctx, key)
	if err != nil {
		return err
	}
	if entity.IsDeleted() {
		return apperrors.ErrNotFound
	}

	blocking, err := CheckDependents(ctx, key, probes)
	if err != nil {
		return err
	}
	if len(blocking) > 0 {
		return &apperrors.DependencyBlockedError{Dependents: blocking}
	}

	return flip(ctx, key, true)
}

// reactivate drives the Deleted -> Active transition. Foreign keys are not
// re-validated: reactivating a row whose referenced target has since been
// deleted succeeds and leaves a dangling reference, which callers needing
// that guarantee must re-check themselves.
func reactivate[T Deletable](
	ctx context.Context,
	key uuid.UUID,
	lookup func(context.Context, uuid.UUID) (T, error),
	flip func(context.Context, uuid.UUID, bool) error,
) error {
	entity, err := lookup(ctx, key)
	if err != nil {
		return err
	}
	if !entity.IsDeleted() {
		return apperrors.ErrAlreadyActive
	}

	return flip(ctx, key, false)
}

package reaction

import (
	"context"

	"github.com/orangesnowtech/dxi-reactions/internal/domain"
)

// Store abstracts reaction record storage.
// The in-memory implementation is used for single-instance mode and tests.
// The Redis implementation applies mutations atomically via a Lua script,
// which closes the lost-update race between concurrent sessions.
type Store interface {
	// GetCounts returns the record for itemID, or all zeros when no record
	// exists yet. Absence is not an error.
	GetCounts(ctx context.Context, itemID string, variant domain.Variant) (domain.Counts, error)

	// Apply increments incr and decrements decr (floored at zero) in one
	// atomic step and returns the full new record. Either field may be
	// KindNone to skip that half.
	Apply(ctx context.Context, itemID string, incr, decr domain.Kind, variant domain.Variant) (domain.Counts, error)

	// Reset deletes the record for itemID, returning its counts to zero.
	Reset(ctx context.Context, itemID string) error
}

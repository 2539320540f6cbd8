package reaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/orangesnowtech/dxi-reactions/internal/domain"
	"github.com/orangesnowtech/dxi-reactions/internal/metrics"
)

// Service is the reaction aggregate service.
type Service struct {
	store         Store
	content       domain.ContentStore
	variant       domain.Variant
	hasWriteToken bool
}

// NewService creates the aggregate service. writeToken is the content-store
// write credential; when empty, every mutation fails fast with
// domain.ErrWriteTokenMissing while reads keep working.
func NewService(store Store, content domain.ContentStore, variant domain.Variant, writeToken string) *Service {
	return &Service{
		store:         store,
		content:       content,
		variant:       variant,
		hasWriteToken: writeToken != "",
	}
}

// Variant returns the deployment's fixed kind set.
func (s *Service) Variant() domain.Variant {
	return s.variant
}

// GetCounts reads the authoritative record for itemID. An item with no record
// yet yields all zeros; an item unknown to the content store is an error.
func (s *Service) GetCounts(ctx context.Context, itemID string) (domain.Counts, error) {
	if err := s.checkItem(ctx, itemID); err != nil {
		return nil, err
	}

	counts, err := s.store.GetCounts(ctx, itemID, s.variant)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return counts, nil
}

// ApplyReaction applies one mutation and returns the new authoritative counts.
// The response is what every local component must adopt as displayed state.
func (s *Service) ApplyReaction(ctx context.Context, itemID string, kind domain.Kind, intent domain.Intent, previous domain.Kind) (domain.Counts, error) {
	if !s.variant.Contains(kind) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}
	if intent != domain.IntentAdd && intent != domain.IntentRemove {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidIntent, intent)
	}
	if previous != domain.KindNone && !s.variant.Contains(previous) {
		return nil, fmt.Errorf("%w: previous %q", domain.ErrInvalidKind, previous)
	}
	if !s.hasWriteToken {
		return nil, domain.ErrWriteTokenMissing
	}
	if err := s.checkItem(ctx, itemID); err != nil {
		return nil, err
	}

	incr, decr := domain.MutationDelta(kind, intent, previous)
	counts, err := s.store.Apply(ctx, itemID, incr, decr, s.variant)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	metrics.ReactionsAppliedTotal.WithLabelValues(string(kind), string(intent)).Inc()
	slog.Debug("Reaction applied", "item_id", itemID, "kind", kind, "intent", intent, "previous", previous)
	return counts, nil
}

// ResetAll zeroes the record of every reactable content item and returns how
// many items were reset.
func (s *Service) ResetAll(ctx context.Context) (int, error) {
	if !s.hasWriteToken {
		return 0, domain.ErrWriteTokenMissing
	}

	itemIDs, err := s.content.ListItemIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	for _, itemID := range itemIDs {
		if err := s.store.Reset(ctx, itemID); err != nil {
			return 0, fmt.Errorf("%w: reset %s: %w", domain.ErrStoreUnavailable, itemID, err)
		}
	}

	metrics.ReactionResetsTotal.Inc()
	metrics.ReactionResetItems.Add(float64(len(itemIDs)))
	slog.Info("Reactions reset", "items", len(itemIDs))
	return len(itemIDs), nil
}

func (s *Service) checkItem(ctx context.Context, itemID string) error {
	exists, err := s.content.Exists(ctx, itemID)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	return nil
}

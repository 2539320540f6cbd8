package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/orangesnowtech/dxi-reactions/internal/domain"
	"github.com/orangesnowtech/dxi-reactions/internal/notify"
)

// inFlightTTL bounds how long a pending request blocks further taps on the
// same item. A request that outlives it is presumed lost and the guard opens
// again so the user is not stuck.
const inFlightTTL = 10 * time.Second

// State is what a widget renders after a controller operation. Counts is nil
// when the operation produced no confirmed counts (fire-once share replay,
// failed mutation), in which case the widget keeps whatever it last showed.
type State struct {
	Counts  domain.Counts
	Chosen  domain.Kind
	Shared  bool
	Applied bool
}

// Controller drives reaction interactions for one session. A tap becomes at
// most one mutation; concurrent taps on the same item are dropped, not
// queued. All confirmed updates flow through the notify bus so every widget
// rendering the same item converges.
type Controller struct {
	api     API
	markers *MarkerStore
	bus     *notify.Bus
	variant domain.Variant
	clock   clockwork.Clock

	mu       sync.Mutex
	inFlight map[string]time.Time

	syncGroup singleflight.Group
}

func NewController(api API, markers *MarkerStore, bus *notify.Bus, variant domain.Variant, clock clockwork.Clock) *Controller {
	return &Controller{
		api:      api,
		markers:  markers,
		bus:      bus,
		variant:  variant,
		clock:    clock,
		inFlight: make(map[string]time.Time),
	}
}

// React handles a tap on the given kind's button. The intent is derived from
// the local marker: tapping the current kind removes it, tapping another kind
// switches. The share kind fires at most once per item and never toggles.
//
// Returns ErrAlreadyInFlight when a previous tap on the same item has not
// resolved yet; the caller should simply ignore the tap.
func (c *Controller) React(ctx context.Context, itemID string, kind domain.Kind) (State, error) {
	if !c.variant.Contains(kind) {
		return State{}, fmt.Errorf("kind %q not in variant %q: %w", kind, c.variant, domain.ErrInvalidKind)
	}

	if kind == domain.KindShare {
		return c.reactShare(ctx, itemID)
	}

	if !c.acquire(itemID) {
		return State{}, domain.ErrAlreadyInFlight
	}
	defer c.release(itemID)

	chosen := c.markers.Chosen(itemID)
	intent := domain.IntentAdd
	previous := chosen
	if chosen == kind {
		intent = domain.IntentRemove
	}

	counts, err := c.api.ApplyReaction(ctx, itemID, kind, intent, previous)
	if err != nil {
		return State{Chosen: chosen, Shared: c.markers.Shared(itemID)}, err
	}

	next := kind
	if intent == domain.IntentRemove {
		next = domain.KindNone
	}
	if err := c.markers.SetChosen(itemID, next); err != nil {
		slog.Warn("persisting reaction marker failed", "item_id", itemID, "error", err)
	}

	c.bus.Publish(notify.Update{ItemID: itemID, Counts: counts, Chosen: next})
	return State{Counts: counts, Chosen: next, Shared: c.markers.Shared(itemID), Applied: true}, nil
}

// reactShare runs the fire-once share path. A replay returns the current
// local state without touching the server; the share UI action (copying the
// link) is the caller's job and happens on every tap regardless.
func (c *Controller) reactShare(ctx context.Context, itemID string) (State, error) {
	if c.markers.Shared(itemID) {
		return State{Chosen: c.markers.Chosen(itemID), Shared: true}, nil
	}

	if !c.acquire(itemID) {
		return State{}, domain.ErrAlreadyInFlight
	}
	defer c.release(itemID)

	counts, err := c.api.ApplyReaction(ctx, itemID, domain.KindShare, domain.IntentAdd, domain.KindNone)
	if err != nil {
		return State{Chosen: c.markers.Chosen(itemID)}, err
	}

	if err := c.markers.MarkShared(itemID); err != nil {
		slog.Warn("persisting share marker failed", "item_id", itemID, "error", err)
	}

	chosen := c.markers.Chosen(itemID)
	c.bus.Publish(notify.Update{ItemID: itemID, Counts: counts, Chosen: chosen})
	return State{Counts: counts, Chosen: chosen, Shared: true, Applied: true}, nil
}

// Sync reconciles a freshly mounted widget with the server. Concurrent syncs
// for the same item share one fetch. When the fetch fails the widget still
// gets something to render: the seed counts when provided, zeros otherwise,
// along with the local marker. The error is returned alongside so callers can
// schedule a retry.
func (c *Controller) Sync(ctx context.Context, itemID string, seed domain.Counts) (State, error) {
	chosen := c.markers.Chosen(itemID)
	shared := c.markers.Shared(itemID)

	v, err, _ := c.syncGroup.Do(itemID, func() (any, error) {
		return c.api.GetCounts(ctx, itemID)
	})
	if err != nil {
		fallback := domain.ZeroCounts(c.variant)
		if seed != nil {
			fallback = seed.Clone()
		}
		return State{Counts: fallback, Chosen: chosen, Shared: shared}, err
	}

	return State{Counts: v.(domain.Counts), Chosen: chosen, Shared: shared}, nil
}

// Subscribe registers a widget callback for one item's confirmed updates.
// The returned function cancels the subscription.
func (c *Controller) Subscribe(itemID string, fn func(notify.Update)) func() {
	return c.bus.Subscribe(itemID, fn)
}

// Chosen exposes the local marker for initial render before Sync completes.
func (c *Controller) Chosen(itemID string) domain.Kind {
	return c.markers.Chosen(itemID)
}

func (c *Controller) acquire(itemID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if started, ok := c.inFlight[itemID]; ok && c.clock.Since(started) < inFlightTTL {
		return false
	}
	c.inFlight[itemID] = c.clock.Now()
	return true
}

func (c *Controller) release(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, itemID)
}

// Package notify provides the in-process cross-component notifier.
//
// Multiple widgets bound to the same item inside one process stay in sync by
// subscribing here instead of each re-fetching counts after a mutation.
// Delivery is synchronous and scoped to the current process: no replay, no
// buffering, no cross-process fan-out. A subscriber registered after a publish
// simply missed it and must reconcile on mount.
package notify

import (
	"sync"

	"github.com/orangesnowtech/dxi-reactions/internal/domain"
)

// Update is delivered to every subscriber of an item after a confirmed mutation.
type Update struct {
	ItemID string
	Counts domain.Counts
	// Chosen is the publishing session's new local vote, KindNone after a remove.
	Chosen domain.Kind
}

// Bus is a publish/subscribe hub keyed by item id. The zero value is not
// usable; create one with NewBus.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]func(Update)
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[int]func(Update))}
}

// Subscribe registers fn for updates about itemID and returns a cancel
// function. fn is invoked synchronously from Publish.
func (b *Bus) Subscribe(itemID string, fn func(Update)) (cancel func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	if b.subs[itemID] == nil {
		b.subs[itemID] = make(map[int]func(Update))
	}
	b.subs[itemID][id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[itemID], id)
		if len(b.subs[itemID]) == 0 {
			delete(b.subs, itemID)
		}
	}
}

// Publish delivers u to every current subscriber for u.ItemID. Counts are
// cloned once so subscribers cannot mutate each other's view.
func (b *Bus) Publish(u Update) {
	b.mu.RLock()
	handlers := make([]func(Update), 0, len(b.subs[u.ItemID]))
	for _, fn := range b.subs[u.ItemID] {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	u.Counts = u.Counts.Clone()
	for _, fn := range handlers {
		fn(u)
	}
}

// SubscriberCount reports how many subscribers an item currently has.
func (b *Bus) SubscriberCount(itemID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[itemID])
}

package domain

import (
	"context"
	"time"
)

// ContentItem is the slice of a content document the reaction system cares
// about. The content backend itself (schemas, validation, studio) is an
// external collaborator.
type ContentItem struct {
	ID          string
	Type        string
	Slug        string
	Title       string
	Team        string
	PublishedAt time.Time
}

// ContentStore is the opaque content backend keyed by document id.
type ContentStore interface {
	// Exists reports whether itemID corresponds to a reactable content document.
	Exists(ctx context.Context, itemID string) (bool, error)
	// ListItemIDs returns the ids of every reactable document.
	ListItemIDs(ctx context.Context) ([]string, error)
	// ListItems returns every reactable document, newest first.
	ListItems(ctx context.Context) ([]ContentItem, error)
}

package dublincore

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for item and option persistence
type Repository interface {
	// Item operations
	CreateItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, id uuid.UUID) error

	// ListAttachments returns the live attachments of parentID, oldest first
	ListAttachments(ctx context.Context, parentID uuid.UUID) ([]*Item, error)

	// Site option operations
	GetOptions(ctx context.Context) (*Options, error)
	SetOptions(ctx context.Context, options *Options) error
}

// PermalinkStrategy resolves the public URL of an item.
type PermalinkStrategy interface {
	Permalink(item *Item) (string, error)
}

// MediaExtractor discovers media embedded in an item body.
type MediaExtractor interface {
	Extract(body string) EmbeddedMedia
}

// EventSink defines the interface for item lifecycle events
type EventSink interface {
	// ItemCreated is fired when an item is created
	ItemCreated(ctx context.Context, item *Item) error

	// ItemUpdated is fired when an item is updated
	ItemUpdated(ctx context.Context, item *Item) error

	// ItemDeleted is fired when an item is deleted
	ItemDeleted(ctx context.Context, itemID uuid.UUID) error
}

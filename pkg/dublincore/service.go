package dublincore

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the main interface for the simple-dublincore library
type Service interface {
	// Item operations
	CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error)
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	UpdateItem(ctx context.Context, req UpdateItemRequest) (*Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListAttachments(ctx context.Context, parentID uuid.UUID) ([]*Item, error)

	// Site option operations
	GetOptions(ctx context.Context) (*Options, error)
	SetOptions(ctx context.Context, options Options) error

	// HeadTags builds the Dublin Core tags of a stored item for view
	HeadTags(ctx context.Context, id uuid.UUID, view View) ([]Tag, error)

	// Site returns the site the service publishes for
	Site() Site
}

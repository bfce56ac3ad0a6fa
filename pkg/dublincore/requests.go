package dublincore

import (
	"time"

	"github.com/google/uuid"
)

// CreateItemRequest contains parameters for creating an item
type CreateItemRequest struct {
	Kind        ItemKind
	Title       string
	Slug        string
	Permalink   string // Optional; resolved through the permalink strategy when empty
	Author      Author
	Description string
	Excerpt     string
	Body        string
	Keywords    string
	Categories  []string
	Tags        []string
	MimeType    string     // Required for attachments
	ParentID    *uuid.UUID // Required for attachments
	PublishedAt time.Time  // Defaults to now
}

// UpdateItemRequest contains parameters for updating an item.
// Nil fields are left unchanged.
type UpdateItemRequest struct {
	ID          uuid.UUID
	Title       *string
	Slug        *string
	Permalink   *string
	Author      *Author
	Description *string
	Excerpt     *string
	Body        *string
	Keywords    *string
	Categories  []string
	Tags        []string
	MimeType    *string
}

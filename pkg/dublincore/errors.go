package dublincore

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrItemNotFound indicates an item was not found
	ErrItemNotFound = errors.New("item not found")

	// ErrOptionsNotFound indicates no site options have been stored yet
	ErrOptionsNotFound = errors.New("options not found")

	// ErrInvalidItem indicates an item failed validation
	ErrInvalidItem = errors.New("invalid item")

	// ErrInvalidParent indicates an attachment references an unusable parent
	ErrInvalidParent = errors.New("invalid parent item")

	// ErrInvalidOptions indicates site options failed validation
	ErrInvalidOptions = errors.New("invalid options")
)

// ItemError represents an error related to item operations
type ItemError struct {
	ItemID uuid.UUID
	Op     string
	Err    error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item operation %s failed for item %s: %v", e.Op, e.ItemID, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

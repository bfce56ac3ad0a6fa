package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-dublincore/pkg/dublincore"
)

// Repository implements dublincore.Repository using in-memory storage
type Repository struct {
	mu       sync.RWMutex
	items    map[uuid.UUID]*dublincore.Item
	children map[uuid.UUID][]uuid.UUID // parent_id -> []attachment_id
	options  *dublincore.Options
}

// New creates a new in-memory repository
func New() dublincore.Repository {
	return &Repository{
		items:    make(map[uuid.UUID]*dublincore.Item),
		children: make(map[uuid.UUID][]uuid.UUID),
	}
}

// Item operations

func (r *Repository) CreateItem(ctx context.Context, item *dublincore.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Create a copy to avoid external modifications
	itemCopy := copyItem(item)
	r.items[item.ID] = itemCopy
	if item.ParentID != nil {
		r.children[*item.ParentID] = append(r.children[*item.ParentID], item.ID)
	}

	return nil
}

func (r *Repository) GetItem(ctx context.Context, id uuid.UUID) (*dublincore.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists || item.DeletedAt != nil {
		return nil, dublincore.ErrItemNotFound
	}

	// Return a copy to prevent external modifications
	return copyItem(item), nil
}

func (r *Repository) UpdateItem(ctx context.Context, item *dublincore.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.items[item.ID]
	if !exists || existing.DeletedAt != nil {
		return dublincore.ErrItemNotFound
	}

	r.items[item.ID] = copyItem(item)
	return nil
}

func (r *Repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists || item.DeletedAt != nil {
		return dublincore.ErrItemNotFound
	}

	now := time.Now().UTC()
	item.DeletedAt = &now
	item.ModifiedAt = now
	return nil
}

func (r *Repository) ListAttachments(ctx context.Context, parentID uuid.UUID) ([]*dublincore.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*dublincore.Item
	for _, id := range r.children[parentID] {
		item, ok := r.items[id]
		if !ok || item.DeletedAt != nil {
			continue
		}
		result = append(result, copyItem(item))
	}

	// Sort by published_at ascending
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].PublishedAt.Before(result[j].PublishedAt)
	})

	return result, nil
}

// Site option operations

func (r *Repository) GetOptions(ctx context.Context) (*dublincore.Options, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.options == nil {
		return nil, dublincore.ErrOptionsNotFound
	}
	optionsCopy := *r.options
	return &optionsCopy, nil
}

func (r *Repository) SetOptions(ctx context.Context, options *dublincore.Options) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	optionsCopy := *options
	r.options = &optionsCopy
	return nil
}

func copyItem(item *dublincore.Item) *dublincore.Item {
	c := *item
	if item.Categories != nil {
		c.Categories = append([]string(nil), item.Categories...)
	}
	if item.Tags != nil {
		c.Tags = append([]string(nil), item.Tags...)
	}
	if item.ParentID != nil {
		parentID := *item.ParentID
		c.ParentID = &parentID
	}
	if item.DeletedAt != nil {
		deletedAt := *item.DeletedAt
		c.DeletedAt = &deletedAt
	}
	return &c
}

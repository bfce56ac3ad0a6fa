package dublincore

import (
	"context"
	"log/slog"
)

// Hooks let callers adjust the generated tag list without modifying the
// Builder. Tag filters run in order after all built-in tags are emitted.

// Hooks defines the available extension points.
type Hooks struct {
	TagFilters []TagFilterHook
}

// HookContext carries information through the hook chain.
type HookContext struct {
	Context   context.Context
	Item      *Item
	Metadata  map[string]interface{} // Custom metadata passed between hooks
	StopChain bool                   // Set to true to stop processing remaining hooks
}

// NewHookContext creates a new hook context for item.
func NewHookContext(ctx context.Context, item *Item) *HookContext {
	return &HookContext{
		Context:  ctx,
		Item:     item,
		Metadata: make(map[string]interface{}),
	}
}

// TagFilterHook may add, remove or reorder tags. Returning nil leaves the
// list unchanged; return an empty non-nil slice to drop every tag.
type TagFilterHook func(hctx *HookContext, tags []Tag) []Tag

// Add appends filters to the chain.
func (h *Hooks) Add(filters ...TagFilterHook) {
	for _, f := range filters {
		if f != nil {
			h.TagFilters = append(h.TagFilters, f)
		}
	}
}

// executeTagFilters runs all TagFilter hooks
func (h *Hooks) executeTagFilters(ctx context.Context, item *Item, tags []Tag) []Tag {
	if h == nil || len(h.TagFilters) == 0 {
		return tags
	}

	hctx := NewHookContext(ctx, item)
	current := tags
	for _, hook := range h.TagFilters {
		filtered := hook(hctx, current)
		if filtered != nil {
			current = filtered
		}
		if hctx.StopChain {
			break
		}
	}
	return current
}

// Common hook implementations

// DropTerms removes every tag whose name is in names.
func DropTerms(names ...string) TagFilterHook {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	return func(hctx *HookContext, tags []Tag) []Tag {
		out := make([]Tag, 0, len(tags))
		for _, t := range tags {
			if !drop[t.Name] {
				out = append(out, t)
			}
		}
		return out
	}
}

// AppendTags adds extra tags at the end of the list.
func AppendTags(extra ...Tag) TagFilterHook {
	return func(hctx *HookContext, tags []Tag) []Tag {
		out := make([]Tag, 0, len(tags)+len(extra))
		out = append(out, tags...)
		return append(out, extra...)
	}
}

// LoggingHook logs the number of tags produced for each item.
func LoggingHook(logger *slog.Logger) TagFilterHook {
	return func(hctx *HookContext, tags []Tag) []Tag {
		if hctx.Item != nil {
			logger.Debug("dublin core tags built", "item_id", hctx.Item.ID, "count", len(tags))
		}
		return nil
	}
}

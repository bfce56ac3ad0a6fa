package permalink

import (
	"fmt"
	"strings"

	"github.com/tendant/simple-dublincore/pkg/dublincore"
)

// IDStrategy generates permalinks based on item ID
// e.g. https://example.com/items/<id>/
type IDStrategy struct {
	BaseURL string
}

// NewIDStrategy creates a new ID-based strategy
func NewIDStrategy(baseURL string) *IDStrategy {
	return &IDStrategy{BaseURL: strings.TrimSuffix(baseURL, "/")}
}

// Permalink implements Strategy.
func (s *IDStrategy) Permalink(item *dublincore.Item) (string, error) {
	if s.BaseURL == "" {
		return "", fmt.Errorf("base URL not configured")
	}
	return fmt.Sprintf("%s/items/%s/", s.BaseURL, item.ID), nil
}

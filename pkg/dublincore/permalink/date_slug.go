package permalink

import (
	"fmt"
	"strings"

	"github.com/tendant/simple-dublincore/pkg/dublincore"
)

// DateSlugStrategy generates blog-style permalinks:
//
//	posts:       <base>/2024/03/hello-world/
//	pages:       <base>/about/
//	attachments: <base>/attachment/<slug>/
type DateSlugStrategy struct {
	BaseURL string
}

// NewDateSlugStrategy creates a new date/slug strategy
func NewDateSlugStrategy(baseURL string) *DateSlugStrategy {
	return &DateSlugStrategy{BaseURL: strings.TrimSuffix(baseURL, "/")}
}

// Permalink implements Strategy.
func (s *DateSlugStrategy) Permalink(item *dublincore.Item) (string, error) {
	if s.BaseURL == "" {
		return "", fmt.Errorf("base URL not configured")
	}
	slug := slugFor(item)
	switch item.Kind {
	case dublincore.KindPage:
		return fmt.Sprintf("%s/%s/", s.BaseURL, slug), nil
	case dublincore.KindAttachment:
		return fmt.Sprintf("%s/attachment/%s/", s.BaseURL, slug), nil
	default:
		published := item.PublishedAt.UTC()
		return fmt.Sprintf("%s/%04d/%02d/%s/", s.BaseURL, published.Year(), int(published.Month()), slug), nil
	}
}

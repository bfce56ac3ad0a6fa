package permalink

import (
	"fmt"
	"strings"

	"github.com/tendant/simple-dublincore/pkg/dublincore"
)

// CDNStrategy points attachment permalinks directly at a CDN and delegates
// posts and pages to another strategy (hybrid approach)
type CDNStrategy struct {
	CDNBaseURL string   // e.g., "https://cdn.example.com" (for attachments)
	Fallback   Strategy // used for posts and pages
}

// NewCDNStrategy creates a new CDN strategy
func NewCDNStrategy(cdnBaseURL string, fallback Strategy) *CDNStrategy {
	return &CDNStrategy{
		CDNBaseURL: strings.TrimSuffix(cdnBaseURL, "/"),
		Fallback:   fallback,
	}
}

// Permalink implements Strategy.
func (s *CDNStrategy) Permalink(item *dublincore.Item) (string, error) {
	if !item.IsAttachment() {
		if s.Fallback == nil {
			return "", fmt.Errorf("no fallback strategy for %s items", item.Kind)
		}
		return s.Fallback.Permalink(item)
	}
	if s.CDNBaseURL == "" {
		return "", fmt.Errorf("CDN base URL not configured")
	}
	return fmt.Sprintf("%s/%s/%s", s.CDNBaseURL, item.ID, slugFor(item)), nil
}

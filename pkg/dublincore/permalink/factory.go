package permalink

import (
	"fmt"
)

// StrategyType represents the type of permalink strategy
type StrategyType string

const (
	// StrategyTypeID uses item IDs in every permalink
	StrategyTypeID StrategyType = "id"

	// StrategyTypeDateSlug uses year/month/slug permalinks for posts
	StrategyTypeDateSlug StrategyType = "date-slug"

	// StrategyTypeCDN serves attachments from a CDN and posts via date-slug
	StrategyTypeCDN StrategyType = "cdn"
)

// Config holds configuration for strategy creation
type Config struct {
	Type       StrategyType
	BaseURL    string // Site base URL
	CDNBaseURL string // For CDN strategy attachments
}

// NewStrategy creates a permalink strategy based on the configuration
func NewStrategy(config Config) (Strategy, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required for permalink strategy")
	}

	switch config.Type {
	case StrategyTypeID:
		return NewIDStrategy(config.BaseURL), nil

	case StrategyTypeDateSlug, "":
		return NewDateSlugStrategy(config.BaseURL), nil

	case StrategyTypeCDN:
		if config.CDNBaseURL == "" {
			return nil, fmt.Errorf("CDN base URL is required for CDN strategy")
		}
		return NewCDNStrategy(config.CDNBaseURL, NewDateSlugStrategy(config.BaseURL)), nil

	default:
		return nil, fmt.Errorf("unknown permalink strategy type: %s", config.Type)
	}
}

package config

import (
	"fmt"

	"github.com/tendant/simple-dublincore/pkg/dublincore"
	"github.com/tendant/simple-dublincore/pkg/dublincore/permalink"
)

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithDatabase configures the database backend
func WithDatabase(dbType, url string) Option {
	return func(c *ServerConfig) error {
		if dbType != "memory" && dbType != "postgres" {
			return fmt.Errorf("database type must be 'memory' or 'postgres', got: %s", dbType)
		}
		if dbType == "postgres" && url == "" {
			return fmt.Errorf("database URL is required for postgres")
		}
		c.DatabaseType = dbType
		c.DatabaseURL = url
		return nil
	}
}

// WithDatabaseSchema sets the database schema (for Postgres)
func WithDatabaseSchema(schema string) Option {
	return func(c *ServerConfig) error {
		c.DBSchema = schema
		return nil
	}
}

// WithSite sets the site identity used for publisher, rights and language tags.
func WithSite(site dublincore.Site) Option {
	return func(c *ServerConfig) error {
		if site.URL == "" {
			return fmt.Errorf("site URL cannot be empty")
		}
		c.Site = site
		return nil
	}
}

// WithPermalinkStrategy selects how permalinks are generated. cdnBaseURL is
// only read by the cdn strategy.
func WithPermalinkStrategy(strategy permalink.StrategyType, cdnBaseURL string) Option {
	return func(c *ServerConfig) error {
		switch strategy {
		case permalink.StrategyTypeID, permalink.StrategyTypeDateSlug, permalink.StrategyTypeCDN:
		default:
			return fmt.Errorf("unknown permalink strategy: %s", strategy)
		}
		c.PermalinkStrategy = strategy
		c.CDNBaseURL = cdnBaseURL
		return nil
	}
}

// WithLicenseURL emits the given URL as the license of every item.
func WithLicenseURL(licenseURL string) Option {
	return func(c *ServerConfig) error {
		c.LicenseURL = licenseURL
		return nil
	}
}

// WithCreativeCommons licenses every item under a Creative Commons license.
func WithCreativeCommons(code, version string) Option {
	return func(c *ServerConfig) error {
		if _, err := dublincore.NewCreativeCommons(code, version); err != nil {
			return err
		}
		c.CCLicense = code
		if version != "" {
			c.CCVersion = version
		}
		return nil
	}
}

// WithJWTSecret enables HS256 authentication on write routes.
func WithJWTSecret(secret string) Option {
	return func(c *ServerConfig) error {
		c.JWTSecret = secret
		return nil
	}
}

// WithDebugLogging toggles debug level logging
func WithDebugLogging(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.EnableDebugLogging = enabled
		return nil
	}
}

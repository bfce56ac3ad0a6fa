package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-dublincore/pkg/dublincore"
	"github.com/tendant/simple-dublincore/pkg/dublincore/embed"
	"github.com/tendant/simple-dublincore/pkg/dublincore/permalink"
	"github.com/tendant/simple-dublincore/pkg/dublincore/repo/memory"
	repopg "github.com/tendant/simple-dublincore/pkg/dublincore/repo/postgres"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:         "8080",
		Environment:  "development",
		DatabaseType: "memory",
		DBSchema:     "dublincore",
		Site: dublincore.Site{
			Name:     "Example Site",
			URL:      "http://localhost:8080",
			Language: "en",
		},
		PermalinkStrategy: permalink.StrategyTypeDateSlug,
		CCVersion:         "4.0",
		AutoMigrate:       true,
	}
}

// ServerConfig represents server configuration for the Dublin Core service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Database configuration
	DatabaseURL  string
	DatabaseType string // "memory", "postgres"
	DBSchema     string // Postgres schema to use (default: dublincore)
	AutoMigrate  bool   // create tables on startup when using postgres

	// Site and permalinks
	Site              dublincore.Site
	PermalinkStrategy permalink.StrategyType
	CDNBaseURL        string

	// License: a fixed URL wins over a Creative Commons code
	LicenseURL string
	CCLicense  string
	CCVersion  string

	// JWTSecret protects the write routes when set
	JWTSecret string

	EnableDebugLogging bool
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}

	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	if err := validateAbsoluteURL("site_url", c.Site.URL); err != nil {
		return err
	}

	if c.PermalinkStrategy == permalink.StrategyTypeCDN {
		if err := validateAbsoluteURL("cdn_base_url", c.CDNBaseURL); err != nil {
			return err
		}
	}

	if c.LicenseURL != "" {
		if err := validateAbsoluteURL("license_url", c.LicenseURL); err != nil {
			return err
		}
	}

	if c.CCLicense != "" {
		if _, err := dublincore.NewCreativeCommons(c.CCLicense, c.CCVersion); err != nil {
			return err
		}
	}

	return nil
}

func validateAbsoluteURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL, got: %s", field, raw)
	}
	return nil
}

// LicenseProvider returns the configured license provider, or nil when no
// license is configured.
func (c *ServerConfig) LicenseProvider() (dublincore.LicenseProvider, error) {
	if c.LicenseURL != "" {
		return dublincore.StaticLicense(c.LicenseURL), nil
	}
	if c.CCLicense != "" {
		cc, err := dublincore.NewCreativeCommons(c.CCLicense, c.CCVersion)
		if err != nil {
			return nil, err
		}
		return cc, nil
	}
	return nil, nil
}

// BuildService creates a Service instance from the server configuration
func (c *ServerConfig) BuildService() (dublincore.Service, error) {
	logger := slog.Default()

	repo, err := c.buildRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}

	strategy, err := permalink.NewStrategy(permalink.Config{
		Type:       c.PermalinkStrategy,
		BaseURL:    c.Site.URL,
		CDNBaseURL: c.CDNBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build permalink strategy: %w", err)
	}

	builderOpts := []dublincore.BuilderOption{dublincore.WithTagFilter(dublincore.LoggingHook(logger))}
	license, err := c.LicenseProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to build license provider: %w", err)
	}
	if license != nil {
		builderOpts = append(builderOpts, dublincore.WithLicenseProvider(license))
	}

	return dublincore.New(
		dublincore.WithRepository(repo),
		dublincore.WithSite(c.Site),
		dublincore.WithPermalinkStrategy(strategy),
		dublincore.WithMediaExtractor(embed.New()),
		dublincore.WithEventSink(c.eventSink(logger)),
		dublincore.WithBuilder(dublincore.NewBuilder(builderOpts...)),
		dublincore.WithLogger(logger),
	)
}

// eventSink logs item events in development and discards them otherwise
func (c *ServerConfig) eventSink(logger *slog.Logger) dublincore.EventSink {
	if c.Environment == "development" || c.EnableDebugLogging {
		return dublincore.NewLoggingEventSink(logger)
	}
	return dublincore.NewNoopEventSink()
}

// buildRepository creates a Repository based on the configuration
func (c *ServerConfig) buildRepository() (dublincore.Repository, error) {
	switch c.DatabaseType {
	case "memory":
		return memory.New(), nil
	case "postgres":
		pool, err := newPool(c.DatabaseURL, c.DBSchema)
		if err != nil {
			return nil, err
		}
		repo := repopg.NewWithPool(pool)
		if c.AutoMigrate {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := repo.EnsureSchema(ctx); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

func newPool(databaseURL, schema string) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, errors.New("database_url is required for postgres")
	}
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	if schema != "" {
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			_, err := conn.Exec(ctx, "SET search_path TO "+pgx.Identifier{schema}.Sanitize())
			return err
		}
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	return pool, nil
}

// PingPostgres verifies connectivity to Postgres using the configured schema.
func PingPostgres(databaseURL, schema string) error {
	pool, err := newPool(databaseURL, schema)
	if err != nil {
		return err
	}
	defer pool.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/simple-dublincore/pkg/dublincore/permalink"
)

// envConfig lists every environment variable WithEnv understands.
// Unset variables leave the corresponding setting untouched.
type envConfig struct {
	Port        string `env:"PORT"`
	Environment string `env:"ENVIRONMENT"`

	DatabaseURL string `env:"DATABASE_URL"`
	DBSchema    string `env:"DB_SCHEMA"`
	AutoMigrate string `env:"DB_AUTO_MIGRATE"`

	SiteName     string `env:"SITE_NAME"`
	SiteURL      string `env:"SITE_URL"`
	SiteLanguage string `env:"SITE_LANGUAGE"`

	PermalinkStrategy string `env:"PERMALINK_STRATEGY"`
	CDNBaseURL        string `env:"CDN_BASE_URL"`

	LicenseURL string `env:"LICENSE_URL"`
	CCLicense  string `env:"CC_LICENSE"`
	CCVersion  string `env:"CC_VERSION"`

	JWTSecret string `env:"JWT_SECRET"`
	Debug     string `env:"DEBUG"`
}

// WithEnv applies environment variable overrides.
//
// Server:
//
//	PORT, ENVIRONMENT
//
// Database:
//
//	DATABASE_URL - "memory" (default) or a postgres:// / postgresql:// URL
//	DB_SCHEMA, DB_AUTO_MIGRATE
//
// Site and tags:
//
//	SITE_NAME, SITE_URL, SITE_LANGUAGE
//	PERMALINK_STRATEGY (id, date-slug, cdn), CDN_BASE_URL
//	LICENSE_URL or CC_LICENSE + CC_VERSION
//
// Security and logging:
//
//	JWT_SECRET, DEBUG
func WithEnv() Option {
	return func(c *ServerConfig) error {
		var env envConfig
		if err := cleanenv.ReadEnv(&env); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}
		return env.apply(c)
	}
}

func (e envConfig) apply(c *ServerConfig) error {
	setString(&c.Port, e.Port)
	setString(&c.Environment, e.Environment)

	if err := applyDatabaseURL(e.DatabaseURL, c); err != nil {
		return err
	}
	setString(&c.DBSchema, e.DBSchema)
	if err := setBool(&c.AutoMigrate, "DB_AUTO_MIGRATE", e.AutoMigrate); err != nil {
		return err
	}

	setString(&c.Site.Name, e.SiteName)
	setString(&c.Site.URL, strings.TrimRight(e.SiteURL, "/"))
	setString(&c.Site.Language, e.SiteLanguage)

	if e.PermalinkStrategy != "" {
		c.PermalinkStrategy = permalink.StrategyType(e.PermalinkStrategy)
	}
	setString(&c.CDNBaseURL, e.CDNBaseURL)

	setString(&c.LicenseURL, e.LicenseURL)
	setString(&c.CCLicense, e.CCLicense)
	setString(&c.CCVersion, e.CCVersion)

	setString(&c.JWTSecret, e.JWTSecret)
	return setBool(&c.EnableDebugLogging, "DEBUG", e.Debug)
}

// applyDatabaseURL auto-detects the database type from the URL.
func applyDatabaseURL(dbURL string, c *ServerConfig) error {
	switch {
	case dbURL == "":
		return nil
	case dbURL == "memory":
		c.DatabaseType = "memory"
		c.DatabaseURL = ""
	case strings.HasPrefix(dbURL, "postgresql://"), strings.HasPrefix(dbURL, "postgres://"):
		c.DatabaseType = "postgres"
		c.DatabaseURL = dbURL
	default:
		return fmt.Errorf("unsupported DATABASE_URL format: %s (use 'memory' or 'postgresql://...')", dbURL)
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key, raw string) error {
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("invalid boolean for %s: %w", key, err)
	}
	*dst = parsed
	return nil
}

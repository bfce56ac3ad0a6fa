package dublincore

import (
	"context"
	"fmt"
	"strings"
)

// LicenseProvider looks up the license URL that applies to an item.
// Installing one on the Builder enables the dcterms.license tag.
type LicenseProvider interface {
	LicenseURL(ctx context.Context, item *Item) string
}

// LicenseFunc adapts a function to LicenseProvider.
type LicenseFunc func(ctx context.Context, item *Item) string

// LicenseURL implements LicenseProvider.
func (f LicenseFunc) LicenseURL(ctx context.Context, item *Item) string {
	return f(ctx, item)
}

// StaticLicense returns the same license URL for every item.
type StaticLicense string

// LicenseURL implements LicenseProvider.
func (s StaticLicense) LicenseURL(ctx context.Context, item *Item) string {
	return string(s)
}

var creativeCommonsCodes = map[string]bool{
	"by":       true,
	"by-sa":    true,
	"by-nd":    true,
	"by-nc":    true,
	"by-nc-sa": true,
	"by-nc-nd": true,
}

// CreativeCommons resolves a Creative Commons license code and version to
// its canonical deed URL.
type CreativeCommons struct {
	Code    string
	Version string
}

// NewCreativeCommons validates the license code and returns a provider.
// An empty version defaults to 4.0.
func NewCreativeCommons(code, version string) (*CreativeCommons, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if !creativeCommonsCodes[code] {
		return nil, fmt.Errorf("unknown creative commons license code: %q", code)
	}
	version = strings.TrimSpace(version)
	if version == "" {
		version = "4.0"
	}
	return &CreativeCommons{Code: code, Version: version}, nil
}

// LicenseURL implements LicenseProvider.
func (c *CreativeCommons) LicenseURL(ctx context.Context, item *Item) string {
	return fmt.Sprintf("https://creativecommons.org/licenses/%s/%s/", c.Code, c.Version)
}

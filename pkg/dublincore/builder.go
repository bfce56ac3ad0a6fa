package dublincore

import (
	"context"
	"strings"
)

// Builder produces Dublin Core tags for a single content item.
// A Builder is immutable after construction and safe for concurrent use.
type Builder struct {
	license LicenseProvider
	hooks   *Hooks
}

// BuilderOption represents a functional option for configuring the builder
type BuilderOption func(*Builder)

// WithLicenseProvider enables the dcterms.license tag.
func WithLicenseProvider(p LicenseProvider) BuilderOption {
	return func(b *Builder) {
		b.license = p
	}
}

// WithHooks replaces the builder's hook set.
func WithHooks(h *Hooks) BuilderOption {
	return func(b *Builder) {
		b.hooks = h
	}
}

// WithTagFilter appends a tag filter to the builder's hook chain.
func WithTagFilter(f TagFilterHook) BuilderOption {
	return func(b *Builder) {
		if b.hooks == nil {
			b.hooks = &Hooks{}
		}
		b.hooks.Add(f)
	}
}

// NewBuilder creates a builder with the given options.
func NewBuilder(options ...BuilderOption) *Builder {
	b := &Builder{}
	for _, option := range options {
		option(b)
	}
	return b
}

// Build returns the tags for in. The result is empty when the view is not a
// single, non-front-page item or when automatic generation is disabled.
func (b *Builder) Build(ctx context.Context, in Input) []Tag {
	item := in.Item
	if item == nil {
		return nil
	}
	// Dublin Core describes individual content only. A static front page is
	// still the site's home view.
	if !in.View.Singular || in.View.FrontPage {
		return nil
	}
	if !in.Options.AutoDublinCore {
		return nil
	}

	var tags []Tag
	add := func(name, scheme, content string) {
		tags = append(tags, Tag{Name: name, Scheme: scheme, Content: content})
	}

	add(TermTitle, "", Paginate(strings.TrimSpace(item.Title), in.View.Page))
	add(TermIdentifier, SchemeURI, sanitizeURL(item.Permalink))
	add(TermCreator, "", AuthorNotation(item.Author))
	published := W3CDTF(item.PublishedAt)
	add(TermCreated, SchemeW3CDTF, published)
	add(TermAvailable, SchemeW3CDTF, published)
	add(TermModified, SchemeW3CDTF, W3CDTF(item.ModifiedAt))

	if desc := ContentDescription(item); desc != "" {
		add(TermDescription, "", Paginate(desc, in.View.Page))
	}

	// Attachments do not carry keywords.
	if !item.IsAttachment() {
		for _, subject := range SplitKeywords(ContentKeywords(item)) {
			add(TermSubject, "", subject)
		}
	}

	siteURL := sanitizeURL(in.Site.URL)
	add(TermLanguage, SchemeRFC4646, strings.TrimSpace(in.Site.Language))
	add(TermPublisher, SchemeURI, siteURL)

	if in.Options.CopyrightURL != "" {
		add(TermRights, SchemeURI, siteURL)
	}
	if b.license != nil {
		if license := sanitizeURL(b.license.LicenseURL(ctx, item)); license != "" {
			add(TermLicense, SchemeURI, license)
		}
	}

	add(TermCoverage, "", CoverageWorld)

	if item.IsAttachment() {
		add(TermIsPartOf, SchemeURI, sanitizeURL(item.ParentPermalink))
		mimeType := strings.TrimSpace(item.MimeType)
		if dcType := attachmentType(mimeType); dcType != "" {
			add(TermType, SchemeDCMIType, dcType)
			add(TermFormat, SchemeIMT, mimeType)
		}
	} else {
		add(TermType, SchemeDCMIType, TypeText)
		add(TermFormat, SchemeIMT, "text/html")

		hasPart := func(link string) {
			if link = sanitizeURL(link); link != "" {
				add(TermHasPart, SchemeURI, link)
			}
		}
		for _, a := range in.Attachments {
			hasPart(a.Permalink)
		}
		for _, group := range [][]MediaEntry{in.Embedded.Images, in.Embedded.Videos, in.Embedded.Sounds} {
			for _, m := range group {
				hasPart(m.Page)
			}
		}
	}

	return b.hooks.executeTagFilters(ctx, item, tags)
}

// attachmentType maps the primary MIME segment to a DCMI type.
func attachmentType(mimeType string) string {
	switch PrimaryMimeType(mimeType) {
	case "image":
		return TypeImage
	case "video":
		return TypeMovingImage
	case "audio":
		return TypeSound
	}
	return ""
}

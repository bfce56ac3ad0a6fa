package dublincore

import (
	"time"

	"github.com/google/uuid"
)

// ItemKind is the domain type for the kind of a content item.
type ItemKind string

// Item kind constants (typed).
const (
	KindPost       ItemKind = "post"
	KindPage       ItemKind = "page"
	KindAttachment ItemKind = "attachment"
)

// IsValid reports whether k is one of the known item kinds.
func (k ItemKind) IsValid() bool {
	switch k {
	case KindPost, KindPage, KindAttachment:
		return true
	}
	return false
}

// Author identifies who wrote an item.
type Author struct {
	DisplayName string `json:"display_name,omitempty" yaml:"display_name"`
	FirstName   string `json:"first_name,omitempty" yaml:"first_name"`
	LastName    string `json:"last_name,omitempty" yaml:"last_name"`
}

// Item represents a post, page or attachment.
//
// ParentID is set for attachments only. ParentPermalink is not persisted; the
// service layer fills it in before building tags for an attachment.
type Item struct {
	ID          uuid.UUID  `json:"id" yaml:"id"`
	Kind        ItemKind   `json:"kind" yaml:"kind"`
	Title       string     `json:"title" yaml:"title"`
	Slug        string     `json:"slug,omitempty" yaml:"slug"`
	Permalink   string     `json:"permalink" yaml:"permalink"`
	Author      Author     `json:"author" yaml:"author"`
	Description string     `json:"description,omitempty" yaml:"description"`
	Excerpt     string     `json:"excerpt,omitempty" yaml:"excerpt"`
	Body        string     `json:"body,omitempty" yaml:"body"`
	Keywords    string     `json:"keywords,omitempty" yaml:"keywords"`
	Categories  []string   `json:"categories,omitempty" yaml:"categories"`
	Tags        []string   `json:"tags,omitempty" yaml:"tags"`
	MimeType    string     `json:"mime_type,omitempty" yaml:"mime_type"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty" yaml:"parent_id"`
	PublishedAt time.Time  `json:"published_at" yaml:"published_at"`
	ModifiedAt  time.Time  `json:"modified_at" yaml:"modified_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" yaml:"-"`

	ParentPermalink string `json:"parent_permalink,omitempty" yaml:"parent_permalink"`
}

// IsAttachment reports whether the item is an attachment.
func (i *Item) IsAttachment() bool {
	return i.Kind == KindAttachment
}

// Attachment is a child attachment of a post or page.
type Attachment struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Permalink string    `json:"permalink" yaml:"permalink"`
}

// MediaEntry is a piece of media embedded in an item body.
// Page is the public page of the media on its provider's site.
type MediaEntry struct {
	Provider string `json:"provider"`
	Page     string `json:"page"`
	URL      string `json:"url,omitempty"`
}

// EmbeddedMedia groups embedded media by category.
type EmbeddedMedia struct {
	Images []MediaEntry `json:"images,omitempty"`
	Videos []MediaEntry `json:"videos,omitempty"`
	Sounds []MediaEntry `json:"sounds,omitempty"`
}

// Len returns the total number of embedded media entries.
func (m EmbeddedMedia) Len() int {
	return len(m.Images) + len(m.Videos) + len(m.Sounds)
}

// Site describes the publishing site.
type Site struct {
	Name     string `json:"name" yaml:"name"`
	URL      string `json:"url" yaml:"url"`
	Language string `json:"language" yaml:"language"`
}

// Options holds the site-wide Dublin Core settings.
type Options struct {
	AutoDublinCore bool   `json:"auto_dublin_core" yaml:"auto_dublin_core"`
	CopyrightURL   string `json:"copyright_url,omitempty" yaml:"copyright_url"`
}

// DefaultOptions returns the options used when none have been stored.
func DefaultOptions() Options {
	return Options{AutoDublinCore: true}
}

// View describes the rendering context a tag set is requested for.
//
// Page is the 1-based page number of paginated content; values below 2 mean
// the first page.
type View struct {
	Singular  bool `json:"singular"`
	FrontPage bool `json:"front_page"`
	Page      int  `json:"page,omitempty"`
}

// SingleView returns the view of a single item that is not the front page.
func SingleView() View {
	return View{Singular: true}
}

// Input bundles everything the Builder reads.
type Input struct {
	Item        *Item
	Attachments []Attachment
	Embedded    EmbeddedMedia
	Site        Site
	Options     Options
	View        View
}

// Package dublincore builds Dublin Core metadata tags for posts, pages and
// attachments.
//
// The Builder turns a single content item, its child attachments and the
// media embedded in its body into an ordered list of dcterms.* meta tags.
// It performs no I/O and never fails: a tag whose source data is missing is
// simply omitted. Site-wide switches arrive as an explicit Options value and
// optional capabilities (such as a license lookup) are injected as
// interfaces at construction time.
//
// The Service wraps the Builder with a pluggable Repository so that callers
// can ask for the head tags of a stored item by ID. Repository
// implementations (memory, Postgres) live under the repo subpackages;
// permalink strategies and embedded-media discovery live under permalink and
// embed.
//
// # Tag Content Strategy
//
// Tag values are stored sanitised but unescaped: markup is stripped from
// free text and URLs are restricted to http(s) or site-relative paths when
// the tag is built. Attribute escaping happens once, in Tag.HTML, so tag
// filters can inspect and rewrite plain values.
package dublincore

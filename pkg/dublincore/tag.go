package dublincore

import (
	"html"
	"strings"
)

// Dublin Core term names.
const (
	TermTitle       = "dcterms.title"
	TermIdentifier  = "dcterms.identifier"
	TermCreator     = "dcterms.creator"
	TermCreated     = "dcterms.created"
	TermAvailable   = "dcterms.available"
	TermModified    = "dcterms.modified"
	TermDescription = "dcterms.description"
	TermSubject     = "dcterms.subject"
	TermLanguage    = "dcterms.language"
	TermPublisher   = "dcterms.publisher"
	TermRights      = "dcterms.rights"
	TermLicense     = "dcterms.license"
	TermCoverage    = "dcterms.coverage"
	TermIsPartOf    = "dcterms.isPartOf"
	TermHasPart     = "dcterms.hasPart"
	TermType        = "dcterms.type"
	TermFormat      = "dcterms.format"
)

// Encoding schemes used in the scheme attribute.
const (
	SchemeURI      = "dcterms.URI"
	SchemeW3CDTF   = "dcterms.W3CDTF"
	SchemeRFC4646  = "dcterms.RFC4646"
	SchemeDCMIType = "dcterms.DCMIType"
	SchemeIMT      = "dcterms.IMT"
)

// DCMI type vocabulary values.
const (
	TypeText        = "Text"
	TypeImage       = "Image"
	TypeMovingImage = "MovingImage"
	TypeSound       = "Sound"
)

// CoverageWorld is the fixed coverage value.
const CoverageWorld = "World"

// Tag is a single meta element. Scheme is optional.
type Tag struct {
	Name    string `json:"name"`
	Scheme  string `json:"scheme,omitempty"`
	Content string `json:"content"`
}

// HTML renders the tag as a self-closing meta element with escaped attributes.
func (t Tag) HTML() string {
	var b strings.Builder
	b.WriteString(`<meta name="`)
	b.WriteString(html.EscapeString(t.Name))
	b.WriteString(`"`)
	if t.Scheme != "" {
		b.WriteString(` scheme="`)
		b.WriteString(html.EscapeString(t.Scheme))
		b.WriteString(`"`)
	}
	b.WriteString(` content="`)
	b.WriteString(html.EscapeString(t.Content))
	b.WriteString(`" />`)
	return b.String()
}

// String implements fmt.Stringer.
func (t Tag) String() string {
	return t.HTML()
}

// RenderHead renders tags one per line, ready to be placed in a document head.
func RenderHead(tags []Tag) string {
	if len(tags) == 0 {
		return ""
	}
	lines := make([]string, 0, len(tags))
	for _, t := range tags {
		lines = append(lines, t.HTML())
	}
	return strings.Join(lines, "\n")
}

// FilterByName returns the tags whose name equals name, preserving order.
func FilterByName(tags []Tag, name string) []Tag {
	var out []Tag
	for _, t := range tags {
		if t.Name == name {
			out = append(out, t)
		}
	}
	return out
}

package dublincore

import (
	"fmt"
	"strings"
	"time"
)

// descriptionWords is the number of body words used for a generated description.
const descriptionWords = 30

// Paginate appends the page marker to text for pages 2 and above.
func Paginate(text string, page int) string {
	if text == "" || page < 2 {
		return text
	}
	return fmt.Sprintf("%s | Page %d", text, page)
}

// AuthorNotation returns the creator in "Last, First" form when both names are
// known and falls back to the display name.
func AuthorNotation(a Author) string {
	first := strings.TrimSpace(a.FirstName)
	last := strings.TrimSpace(a.LastName)
	if first != "" && last != "" {
		return last + ", " + first
	}
	return strings.TrimSpace(a.DisplayName)
}

// ContentDescription derives a description from the item: the explicit
// description, then the excerpt, then the opening words of the body.
func ContentDescription(item *Item) string {
	if item == nil {
		return ""
	}
	if d := sanitizeText(item.Description); d != "" {
		return d
	}
	if e := sanitizeText(item.Excerpt); e != "" {
		return e
	}
	if item.IsAttachment() {
		return ""
	}
	words := strings.Fields(sanitizeText(item.Body))
	if len(words) == 0 {
		return ""
	}
	if len(words) > descriptionWords {
		return strings.Join(words[:descriptionWords], " ") + "..."
	}
	return strings.Join(words, " ")
}

// ContentKeywords returns the item's comma-separated keyword list: the
// explicit keywords, or else its categories followed by its tags.
func ContentKeywords(item *Item) string {
	if item == nil {
		return ""
	}
	if k := strings.TrimSpace(item.Keywords); k != "" {
		return k
	}
	terms := make([]string, 0, len(item.Categories)+len(item.Tags))
	terms = append(terms, item.Categories...)
	terms = append(terms, item.Tags...)
	return strings.Join(terms, ", ")
}

// SplitKeywords splits a comma-separated list, trimming each token and
// dropping empty ones.
func SplitKeywords(list string) []string {
	var out []string
	for _, token := range strings.Split(list, ",") {
		if token = strings.TrimSpace(token); token != "" {
			out = append(out, token)
		}
	}
	return out
}

// W3CDTF formats t as a W3C date-time with offset.
func W3CDTF(t time.Time) string {
	return t.Format(time.RFC3339)
}

// PrimaryMimeType returns the segment of a MIME type before the first slash.
func PrimaryMimeType(mimeType string) string {
	mimeType = strings.TrimSpace(mimeType)
	if i := strings.Index(mimeType, "/"); i >= 0 {
		return mimeType[:i]
	}
	return mimeType
}

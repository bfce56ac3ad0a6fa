// Package permalink provides strategies that resolve the public URL of an
// item. Every strategy implements dublincore.PermalinkStrategy.
package permalink

import (
	"strings"
	"unicode"

	"github.com/tendant/simple-dublincore/pkg/dublincore"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Strategy resolves the permalink of an item.
type Strategy interface {
	Permalink(item *dublincore.Item) (string, error)
}

var _ dublincore.PermalinkStrategy = (Strategy)(nil)

// Slugify lowercases s, strips diacritics and joins the remaining
// alphanumeric runs with hyphens.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// slugFor returns the item's slug, deriving one from its title when unset.
// Items without a usable title fall back to their ID.
func slugFor(item *dublincore.Item) string {
	if slug := Slugify(item.Slug); slug != "" {
		return slug
	}
	if slug := Slugify(item.Title); slug != "" {
		return slug
	}
	return item.ID.String()
}

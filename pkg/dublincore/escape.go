package dublincore

import (
	"html"
	"net/url"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// sanitizeText strips markup from HTML-bearing fields (description, excerpt,
// body) and collapses whitespace. bluemonday's entity encoding is undone so
// that Tag.HTML escapes exactly once.
func sanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := html.UnescapeString(textSanitizer().Sanitize(trimmed))
	return strings.Join(strings.Fields(cleaned), " ")
}

// sanitizeURL keeps http(s) and site-relative URLs and drops anything else.
func sanitizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.ContainsAny(trimmed, " \t\r\n\"<>`") {
		return ""
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" {
			return ""
		}
	case "":
		if !strings.HasPrefix(trimmed, "/") {
			return ""
		}
	default:
		return ""
	}
	return u.String()
}

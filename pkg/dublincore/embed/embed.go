// Package embed discovers media embedded in HTML item bodies.
//
// It recognises YouTube and Vimeo videos, SoundCloud sounds and Flickr
// images, whether they appear as iframes, links or bare URLs on their own in
// the text (the way oEmbed-style editors store them).
package embed

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tendant/simple-dublincore/pkg/dublincore"
	"golang.org/x/net/html"
)

// Provider names.
const (
	ProviderYouTube    = "youtube"
	ProviderVimeo      = "vimeo"
	ProviderSoundCloud = "soundcloud"
	ProviderFlickr     = "flickr"
)

type category int

const (
	categoryNone category = iota
	categoryImage
	categoryVideo
	categorySound
)

var (
	videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{6,}$`)
	slugPattern    = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
	digitsPattern  = regexp.MustCompile(`^[0-9]+$`)
)

// Extractor implements dublincore.MediaExtractor.
type Extractor struct{}

// New creates an extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns the media embedded in body, in order of first appearance
// and without duplicates. Unparseable bodies yield no media.
func (e *Extractor) Extract(body string) dublincore.EmbeddedMedia {
	var media dublincore.EmbeddedMedia
	if strings.TrimSpace(body) == "" {
		return media
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return media
	}

	var candidates []string
	collect(doc.Selection, func(raw string) {
		candidates = append(candidates, raw)
	})

	seen := make(map[string]bool)
	for _, raw := range candidates {
		cat, entry := classify(raw)
		if cat == categoryNone || seen[entry.Page] {
			continue
		}
		seen[entry.Page] = true
		switch cat {
		case categoryImage:
			media.Images = append(media.Images, entry)
		case categoryVideo:
			media.Videos = append(media.Videos, entry)
		case categorySound:
			media.Sounds = append(media.Sounds, entry)
		}
	}
	return media
}

// collect visits the children of s in document order, reporting media
// attributes of iframe, embed and anchor elements and each whitespace-separated
// token of every text node.
func collect(s *goquery.Selection, visit func(string)) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		node := c.Get(0)
		switch node.Type {
		case html.TextNode:
			for _, token := range strings.Fields(node.Data) {
				visit(token)
			}
		case html.ElementNode:
			switch node.Data {
			case "script", "style":
				return
			case "iframe", "embed":
				if src, ok := c.Attr("src"); ok {
					visit(src)
				}
			case "a":
				if href, ok := c.Attr("href"); ok {
					visit(href)
				}
			}
			collect(c, visit)
		}
	})
}

func classify(raw string) (category, dublincore.MediaEntry) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return categoryNone, dublincore.MediaEntry{}
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	segments := pathSegments(u.Path)

	switch host {
	case "youtube.com", "m.youtube.com", "youtube-nocookie.com":
		var id string
		switch {
		case u.Path == "/watch":
			id = u.Query().Get("v")
		case len(segments) == 2 && segments[0] == "embed":
			id = segments[1]
		}
		if videoIDPattern.MatchString(id) {
			return categoryVideo, dublincore.MediaEntry{
				Provider: ProviderYouTube,
				Page:     "https://www.youtube.com/watch?v=" + id,
				URL:      raw,
			}
		}
	case "youtu.be":
		if len(segments) == 1 && videoIDPattern.MatchString(segments[0]) {
			return categoryVideo, dublincore.MediaEntry{
				Provider: ProviderYouTube,
				Page:     "https://www.youtube.com/watch?v=" + segments[0],
				URL:      raw,
			}
		}
	case "vimeo.com", "player.vimeo.com":
		id := ""
		if len(segments) == 1 {
			id = segments[0]
		} else if len(segments) == 2 && segments[0] == "video" {
			id = segments[1]
		}
		if digitsPattern.MatchString(id) {
			return categoryVideo, dublincore.MediaEntry{
				Provider: ProviderVimeo,
				Page:     "https://vimeo.com/" + id,
				URL:      raw,
			}
		}
	case "soundcloud.com":
		if len(segments) == 2 && slugPattern.MatchString(segments[0]) && slugPattern.MatchString(segments[1]) {
			return categorySound, dublincore.MediaEntry{
				Provider: ProviderSoundCloud,
				Page:     "https://soundcloud.com/" + segments[0] + "/" + segments[1],
				URL:      raw,
			}
		}
	case "w.soundcloud.com":
		if track := u.Query().Get("url"); track != "" {
			if tu, err := url.Parse(track); err == nil && isSoundCloudHost(tu.Hostname()) {
				tu.Scheme = "https"
				return categorySound, dublincore.MediaEntry{
					Provider: ProviderSoundCloud,
					Page:     tu.String(),
					URL:      raw,
				}
			}
		}
	case "flickr.com":
		if len(segments) >= 3 && segments[0] == "photos" && slugPattern.MatchString(segments[1]) && digitsPattern.MatchString(segments[2]) {
			return categoryImage, dublincore.MediaEntry{
				Provider: ProviderFlickr,
				Page:     "https://www.flickr.com/photos/" + segments[1] + "/" + segments[2] + "/",
				URL:      raw,
			}
		}
	}
	return categoryNone, dublincore.MediaEntry{}
}

func isSoundCloudHost(host string) bool {
	host = strings.ToLower(host)
	return host == "soundcloud.com" || strings.HasSuffix(host, ".soundcloud.com")
}

func pathSegments(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

package embed

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/tendant/simple-dublincore/pkg/dublincore"
)

func TestExtract(t *testing.T) {
	body := `
<p>Intro https://www.youtube.com/watch?v=dQw4w9WgXcQ and again youtu.be is https://youtu.be/dQw4w9WgXcQ</p>
<iframe src="//player.vimeo.com/video/76979871?title=0"></iframe>
<iframe src="https://w.soundcloud.com/player/?url=http%3A%2F%2Fsoundcloud.com%2Fartist%2Fsong&auto_play=false"></iframe>
<a href="https://www.flickr.com/photos/someone/5500000000/in/photostream">photo</a>
<a href="https://example.com/not-media">link</a>
<embed src="https://www.youtube.com/embed/abcdef12345">
`
	got := New().Extract(body)

	want := dublincore.EmbeddedMedia{
		Images: []dublincore.MediaEntry{{Provider: ProviderFlickr, Page: "https://www.flickr.com/photos/someone/5500000000/"}},
		Videos: []dublincore.MediaEntry{
			{Provider: ProviderYouTube, Page: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
			{Provider: ProviderVimeo, Page: "https://vimeo.com/76979871"},
			{Provider: ProviderYouTube, Page: "https://www.youtube.com/watch?v=abcdef12345"},
		},
		Sounds: []dublincore.MediaEntry{{Provider: ProviderSoundCloud, Page: "https://soundcloud.com/artist/song"}},
	}
	opt := cmp.FilterPath(func(p cmp.Path) bool { return p.Last().String() == ".URL" }, cmp.Ignore())
	if diff := cmp.Diff(want, got, opt); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 5, got.Len())
}

func TestExtract_DocumentOrder(t *testing.T) {
	pages := func(entries []dublincore.MediaEntry) []string {
		out := make([]string, len(entries))
		for i, e := range entries {
			out[i] = e.Page
		}
		return out
	}

	t.Run("adjacent paragraphs", func(t *testing.T) {
		got := New().Extract(`<p>https://youtu.be/dQw4w9WgXcQ</p><p>https://vimeo.com/76979871</p>`)
		assert.Equal(t, []string{
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			"https://vimeo.com/76979871",
		}, pages(got.Videos))
	})

	t.Run("text before iframe", func(t *testing.T) {
		got := New().Extract(`<p>https://youtu.be/dQw4w9WgXcQ</p><iframe src="https://player.vimeo.com/video/76979871"></iframe>`)
		assert.Equal(t, []string{
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			"https://vimeo.com/76979871",
		}, pages(got.Videos))
	})

	t.Run("inline text and iframe", func(t *testing.T) {
		got := New().Extract(`<div><iframe src="https://player.vimeo.com/video/76979871"></iframe> then https://youtu.be/dQw4w9WgXcQ</div>`)
		assert.Equal(t, []string{
			"https://vimeo.com/76979871",
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		}, pages(got.Videos))
	})

	t.Run("script text ignored", func(t *testing.T) {
		got := New().Extract(`<script>var u = "https://youtu.be/dQw4w9WgXcQ";</script><p>nothing</p>`)
		assert.Equal(t, 0, got.Len())
	})
}

func TestExtract_Empty(t *testing.T) {
	assert.Equal(t, 0, New().Extract("").Len())
	assert.Equal(t, 0, New().Extract("<p>No media here, just https://example.com/</p>").Len())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		raw  string
		cat  category
		page string
	}{
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ", categoryVideo, "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=<bad>", categoryNone, ""},
		{"https://youtu.be/short", categoryNone, ""},
		{"https://vimeo.com/channels/staff", categoryNone, ""},
		{"https://soundcloud.com/artist", categoryNone, ""},
		{"ftp://vimeo.com/123", categoryNone, ""},
		{"https://flickr.com/photos/someone/not-a-number", categoryNone, ""},
		{"https://w.soundcloud.com/player/?url=https%3A%2F%2Fevilsoundcloud.com%2Fa%2Fb", categoryNone, ""},
		{"https://w.soundcloud.com/player/?url=https%3A%2F%2Fm.soundcloud.com%2Fa%2Fb", categorySound, "https://m.soundcloud.com/a/b"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			cat, entry := classify(tt.raw)
			assert.Equal(t, tt.cat, cat)
			if tt.page != "" {
				assert.Equal(t, tt.page, entry.Page)
			}
		})
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-dublincore/pkg/dublincore"
)

const postDocument = `
item:
  kind: post
  title: Hello World
  permalink: https://example.com/2024/05/hello-world/
  author:
    first_name: Ada
    last_name: Lovelace
  excerpt: A short introduction.
  categories: [news, science]
  body: |
    <p>Listen: <iframe src="https://w.soundcloud.com/player/?url=https://soundcloud.com/artist/track"></iframe></p>
  published_at: 2024-05-01T10:00:00Z
  modified_at: 2024-05-02T11:30:00Z
attachments:
  - permalink: https://example.com/2024/05/hello-world/photo/
site:
  name: Example
  url: https://example.com
  language: en
`

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "item.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	path := writeDocument(t, postDocument)

	t.Run("html", func(t *testing.T) {
		out, err := runCommand(t, "render", "--file", path, "--page", "2", "--cc-license", "by-sa")
		require.NoError(t, err)

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
		require.NoError(t, err)

		content := func(name string) []string {
			var values []string
			doc.Find(`meta[name="` + name + `"]`).Each(func(_ int, s *goquery.Selection) {
				v, _ := s.Attr("content")
				values = append(values, v)
			})
			return values
		}

		assert.Equal(t, []string{"Hello World | Page 2"}, content(dublincore.TermTitle))
		assert.Equal(t, []string{"Lovelace, Ada"}, content(dublincore.TermCreator))
		assert.Equal(t, []string{"2024-05-01T10:00:00Z"}, content(dublincore.TermCreated))
		assert.Equal(t, []string{"2024-05-02T11:30:00Z"}, content(dublincore.TermModified))
		assert.Equal(t, []string{"A short introduction. | Page 2"}, content(dublincore.TermDescription))
		assert.Equal(t, []string{"news", "science"}, content(dublincore.TermSubject))
		assert.Equal(t, []string{"https://creativecommons.org/licenses/by-sa/4.0/"}, content(dublincore.TermLicense))
		assert.Equal(t, []string{
			"https://example.com/2024/05/hello-world/photo/",
			"https://soundcloud.com/artist/track",
		}, content(dublincore.TermHasPart))
	})

	t.Run("json", func(t *testing.T) {
		out, err := runCommand(t, "render", "-f", path, "--json", "--no-embeds")
		require.NoError(t, err)

		var tags []dublincore.Tag
		require.NoError(t, json.Unmarshal([]byte(out), &tags))
		require.NotEmpty(t, tags)
		assert.Equal(t, dublincore.TermTitle, tags[0].Name)
		assert.Len(t, dublincore.FilterByName(tags, dublincore.TermHasPart), 1)
		assert.Empty(t, dublincore.FilterByName(tags, dublincore.TermLicense))
	})

	t.Run("front page prints nothing", func(t *testing.T) {
		out, err := runCommand(t, "render", "--file", path, "--front-page")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("disabled by options", func(t *testing.T) {
		disabled := writeDocument(t, postDocument+"options:\n  auto_dublin_core: false\n")
		out, err := runCommand(t, "render", "--file", disabled)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("attachment", func(t *testing.T) {
		attachment := writeDocument(t, `
item:
  kind: attachment
  title: Sunset
  mime_type: image/jpeg
  permalink: https://example.com/sunset/
  parent_permalink: https://example.com/gallery/
site:
  url: https://example.com
  language: en
`)
		out, err := runCommand(t, "render", "--file", attachment, "--json")
		require.NoError(t, err)

		var tags []dublincore.Tag
		require.NoError(t, json.Unmarshal([]byte(out), &tags))
		assert.Equal(t, []dublincore.Tag{{Name: dublincore.TermIsPartOf, Scheme: dublincore.SchemeURI, Content: "https://example.com/gallery/"}},
			dublincore.FilterByName(tags, dublincore.TermIsPartOf))
		assert.Equal(t, "Image", dublincore.FilterByName(tags, dublincore.TermType)[0].Content)
		assert.Equal(t, "image/jpeg", dublincore.FilterByName(tags, dublincore.TermFormat)[0].Content)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := runCommand(t, "render", "--file", filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, ErrDocumentNotFound)

		_, err = runCommand(t, "render")
		assert.Error(t, err)

		_, err = runCommand(t, "render", "--file", path, "--cc-license", "nope")
		assert.Error(t, err)

		bad := writeDocument(t, "item:\n  kind: podcast\n")
		_, err = runCommand(t, "render", "--file", bad)
		assert.ErrorIs(t, err, dublincore.ErrInvalidItem)
	})
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dcmeta dev (commit: none, built: unknown)\n", out)
}

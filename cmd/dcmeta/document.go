package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tendant/simple-dublincore/pkg/dublincore"
	"gopkg.in/yaml.v3"
)

// ErrDocumentNotFound is returned when the item file does not exist.
var ErrDocumentNotFound = errors.New("item file not found")

// Document is the YAML description of one item and its surroundings.
//
//	item:
//	  kind: post
//	  title: Hello
//	  permalink: https://example.com/hello/
//	attachments:
//	  - permalink: https://example.com/hello/photo/
//	site:
//	  name: Example
//	  url: https://example.com
//	  language: en
//	options:
//	  auto_dublin_core: true
type Document struct {
	Item        dublincore.Item         `yaml:"item"`
	Attachments []dublincore.Attachment `yaml:"attachments"`
	Site        dublincore.Site         `yaml:"site"`
	Options     *dublincore.Options     `yaml:"options"`
}

// LoadDocument reads and decodes a Document. Missing options fall back to
// dublincore.DefaultOptions and a missing kind to a post.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, path)
		}
		return nil, err
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if doc.Options == nil {
		opts := dublincore.DefaultOptions()
		doc.Options = &opts
	}
	if doc.Item.Kind == "" {
		doc.Item.Kind = dublincore.KindPost
	}
	if !doc.Item.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown kind %q", dublincore.ErrInvalidItem, doc.Item.Kind)
	}
	return &doc, nil
}

// Input projects the document into builder input for the given view.
func (d *Document) Input(view dublincore.View, media dublincore.MediaExtractor) dublincore.Input {
	in := dublincore.Input{
		Item:        &d.Item,
		Attachments: d.Attachments,
		Site:        d.Site,
		Options:     *d.Options,
		View:        view,
	}
	if media != nil && !d.Item.IsAttachment() {
		in.Embedded = media.Extract(d.Item.Body)
	}
	return in
}

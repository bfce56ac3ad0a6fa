package dublincore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repository Repository
	builder    *Builder
	site       Site
	permalinks PermalinkStrategy
	media      MediaExtractor
	eventSink  EventSink
	logger     *slog.Logger
	now        func() time.Time
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBuilder sets the tag builder
func WithBuilder(b *Builder) Option {
	return func(s *service) {
		s.builder = b
	}
}

// WithSite sets the publishing site
func WithSite(site Site) Option {
	return func(s *service) {
		s.site = site
	}
}

// WithPermalinkStrategy sets the strategy used for items created without a permalink
func WithPermalinkStrategy(p PermalinkStrategy) Option {
	return func(s *service) {
		s.permalinks = p
	}
}

// WithMediaExtractor sets the embedded-media extractor
func WithMediaExtractor(m MediaExtractor) Option {
	return func(s *service) {
		s.media = m
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		builder: NewBuilder(),
		logger:  slog.Default(),
		now:     time.Now,
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.builder == nil {
		s.builder = NewBuilder()
	}

	return s, nil
}

func (s *service) Site() Site {
	return s.site
}

// Item operations

func (s *service) CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error) {
	if req.Kind == "" {
		req.Kind = KindPost
	}
	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidItem, req.Kind)
	}

	now := s.now().UTC()
	published := req.PublishedAt
	if published.IsZero() {
		published = now
	}

	item := &Item{
		ID:          uuid.New(),
		Kind:        req.Kind,
		Title:       req.Title,
		Slug:        req.Slug,
		Permalink:   req.Permalink,
		Author:      req.Author,
		Description: req.Description,
		Excerpt:     req.Excerpt,
		Body:        req.Body,
		Keywords:    req.Keywords,
		Categories:  req.Categories,
		Tags:        req.Tags,
		MimeType:    req.MimeType,
		ParentID:    req.ParentID,
		PublishedAt: published.UTC(),
		ModifiedAt:  now,
	}

	if err := s.validate(ctx, item); err != nil {
		return nil, err
	}

	if item.Permalink == "" && s.permalinks != nil {
		link, err := s.permalinks.Permalink(item)
		if err != nil {
			return nil, &ItemError{ItemID: item.ID, Op: "permalink", Err: err}
		}
		item.Permalink = link
	}

	if err := s.repository.CreateItem(ctx, item); err != nil {
		return nil, &ItemError{ItemID: item.ID, Op: "create", Err: err}
	}

	if s.eventSink != nil {
		if err := s.eventSink.ItemCreated(ctx, item); err != nil {
			s.logger.WarnContext(ctx, "event sink failed", "event", "item_created", "item_id", item.ID, "error", err)
		}
	}
	return item, nil
}

func (s *service) validate(ctx context.Context, item *Item) error {
	if !item.IsAttachment() {
		if item.ParentID != nil {
			return fmt.Errorf("%w: only attachments may have a parent", ErrInvalidItem)
		}
		if item.Title == "" {
			return fmt.Errorf("%w: title is required", ErrInvalidItem)
		}
		return nil
	}

	if item.MimeType == "" {
		return fmt.Errorf("%w: attachments require a mime type", ErrInvalidItem)
	}
	if item.ParentID == nil {
		return fmt.Errorf("%w: attachments require a parent", ErrInvalidItem)
	}
	parent, err := s.repository.GetItem(ctx, *item.ParentID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return fmt.Errorf("%w: parent %s not found", ErrInvalidParent, *item.ParentID)
		}
		return err
	}
	if parent.IsAttachment() {
		return fmt.Errorf("%w: parent %s is an attachment", ErrInvalidParent, parent.ID)
	}
	return nil
}

func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	item, err := s.repository.GetItem(ctx, id)
	if err != nil {
		return nil, &ItemError{ItemID: id, Op: "get", Err: err}
	}
	return item, nil
}

func (s *service) UpdateItem(ctx context.Context, req UpdateItemRequest) (*Item, error) {
	item, err := s.repository.GetItem(ctx, req.ID)
	if err != nil {
		return nil, &ItemError{ItemID: req.ID, Op: "update", Err: err}
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Slug != nil {
		item.Slug = *req.Slug
	}
	if req.Permalink != nil {
		item.Permalink = *req.Permalink
	}
	if req.Author != nil {
		item.Author = *req.Author
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Excerpt != nil {
		item.Excerpt = *req.Excerpt
	}
	if req.Body != nil {
		item.Body = *req.Body
	}
	if req.Keywords != nil {
		item.Keywords = *req.Keywords
	}
	if req.Categories != nil {
		item.Categories = req.Categories
	}
	if req.Tags != nil {
		item.Tags = req.Tags
	}
	if req.MimeType != nil {
		item.MimeType = *req.MimeType
	}
	item.ModifiedAt = s.now().UTC()

	if err := s.validate(ctx, item); err != nil {
		return nil, err
	}

	if err := s.repository.UpdateItem(ctx, item); err != nil {
		return nil, &ItemError{ItemID: item.ID, Op: "update", Err: err}
	}

	if s.eventSink != nil {
		if err := s.eventSink.ItemUpdated(ctx, item); err != nil {
			s.logger.WarnContext(ctx, "event sink failed", "event", "item_updated", "item_id", item.ID, "error", err)
		}
	}
	return item, nil
}

func (s *service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.repository.DeleteItem(ctx, id); err != nil {
		return &ItemError{ItemID: id, Op: "delete", Err: err}
	}

	if s.eventSink != nil {
		if err := s.eventSink.ItemDeleted(ctx, id); err != nil {
			s.logger.WarnContext(ctx, "event sink failed", "event", "item_deleted", "item_id", id, "error", err)
		}
	}
	return nil
}

func (s *service) ListAttachments(ctx context.Context, parentID uuid.UUID) ([]*Item, error) {
	items, err := s.repository.ListAttachments(ctx, parentID)
	if err != nil {
		return nil, &ItemError{ItemID: parentID, Op: "list_attachments", Err: err}
	}
	return items, nil
}

// Site option operations

func (s *service) GetOptions(ctx context.Context) (*Options, error) {
	opts, err := s.repository.GetOptions(ctx)
	if err != nil {
		if errors.Is(err, ErrOptionsNotFound) {
			defaults := DefaultOptions()
			return &defaults, nil
		}
		return nil, fmt.Errorf("failed to load options: %w", err)
	}
	return opts, nil
}

func (s *service) SetOptions(ctx context.Context, options Options) error {
	if options.CopyrightURL != "" && sanitizeURL(options.CopyrightURL) == "" {
		return fmt.Errorf("%w: copyright url %q", ErrInvalidOptions, options.CopyrightURL)
	}
	if err := s.repository.SetOptions(ctx, &options); err != nil {
		return fmt.Errorf("failed to store options: %w", err)
	}
	return nil
}

// HeadTags

func (s *service) HeadTags(ctx context.Context, id uuid.UUID, view View) ([]Tag, error) {
	item, err := s.repository.GetItem(ctx, id)
	if err != nil {
		return nil, &ItemError{ItemID: id, Op: "head_tags", Err: err}
	}

	opts, err := s.GetOptions(ctx)
	if err != nil {
		return nil, &ItemError{ItemID: id, Op: "head_tags", Err: err}
	}

	in := Input{
		Item:    item,
		Site:    s.site,
		Options: *opts,
		View:    view,
	}

	if item.IsAttachment() {
		if item.ParentID != nil {
			parent, err := s.repository.GetItem(ctx, *item.ParentID)
			if err != nil {
				s.logger.WarnContext(ctx, "attachment parent unavailable", "item_id", id, "parent_id", *item.ParentID, "error", err)
			} else {
				item.ParentPermalink = parent.Permalink
			}
		}
	} else {
		children, err := s.repository.ListAttachments(ctx, item.ID)
		if err != nil {
			return nil, &ItemError{ItemID: id, Op: "head_tags", Err: err}
		}
		for _, child := range children {
			in.Attachments = append(in.Attachments, Attachment{ID: child.ID, Permalink: child.Permalink})
		}
		if s.media != nil {
			in.Embedded = s.media.Extract(item.Body)
		}
	}

	tags := s.builder.Build(ctx, in)
	if len(tags) == 0 {
		s.logger.DebugContext(ctx, "dublin core generation skipped", "item_id", id,
			"singular", view.Singular, "front_page", view.FrontPage, "auto", opts.AutoDublinCore)
	}
	return tags, nil
}

package dublincore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-dublincore/pkg/dublincore"
	"github.com/tendant/simple-dublincore/pkg/dublincore/embed"
	"github.com/tendant/simple-dublincore/pkg/dublincore/permalink"
	"github.com/tendant/simple-dublincore/pkg/dublincore/repo/memory"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, options ...dublincore.Option) dublincore.Service {
	t.Helper()
	base := []dublincore.Option{
		dublincore.WithRepository(memory.New()),
		dublincore.WithSite(site),
		dublincore.WithPermalinkStrategy(permalink.NewDateSlugStrategy("https://example.com")),
		dublincore.WithMediaExtractor(embed.New()),
		dublincore.WithClock(func() time.Time { return fixedNow }),
	}
	svc, err := dublincore.New(append(base, options...)...)
	require.NoError(t, err)
	return svc
}

func TestServiceCreation(t *testing.T) {
	tests := []struct {
		name        string
		options     []dublincore.Option
		expectError bool
	}{
		{
			name:        "no options should fail",
			options:     []dublincore.Option{},
			expectError: true,
		},
		{
			name:        "repository only",
			options:     []dublincore.Option{dublincore.WithRepository(memory.New())},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := dublincore.New(tt.options...)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func TestItemOperations(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	post, err := svc.CreateItem(ctx, dublincore.CreateItemRequest{
		Title:       "Hello World",
		PublishedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, dublincore.KindPost, post.Kind)
	assert.Equal(t, "https://example.com/2024/05/hello-world/", post.Permalink)
	assert.Equal(t, fixedNow, post.ModifiedAt)

	t.Run("default publish time", func(t *testing.T) {
		page, err := svc.CreateItem(ctx, dublincore.CreateItemRequest{Kind: dublincore.KindPage, Title: "About", Permalink: "https://example.com/about-us/"})
		require.NoError(t, err)
		assert.Equal(t, fixedNow, page.PublishedAt)
		assert.Equal(t, "https://example.com/about-us/", page.Permalink)
	})

	t.Run("attachment", func(t *testing.T) {
		parentID := post.ID
		att, err := svc.CreateItem(ctx, dublincore.CreateItemRequest{
			Kind: dublincore.KindAttachment, Title: "Photo", MimeType: "image/jpeg", ParentID: &parentID,
		})
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/attachment/photo/", att.Permalink)

		list, err := svc.ListAttachments(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, att.ID, list[0].ID)

		attID := att.ID
		_, err = svc.CreateItem(ctx, dublincore.CreateItemRequest{
			Kind: dublincore.KindAttachment, MimeType: "image/jpeg", ParentID: &attID,
		})
		assert.ErrorIs(t, err, dublincore.ErrInvalidParent)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := svc.CreateItem(ctx, dublincore.CreateItemRequest{})
		assert.ErrorIs(t, err, dublincore.ErrInvalidItem)

		_, err = svc.CreateItem(ctx, dublincore.CreateItemRequest{Kind: "podcast", Title: "x"})
		assert.ErrorIs(t, err, dublincore.ErrInvalidItem)

		missing := uuid.New()
		_, err = svc.CreateItem(ctx, dublincore.CreateItemRequest{Kind: dublincore.KindAttachment, MimeType: "image/png", ParentID: &missing})
		assert.ErrorIs(t, err, dublincore.ErrInvalidParent)

		_, err = svc.CreateItem(ctx, dublincore.CreateItemRequest{Kind: dublincore.KindAttachment, ParentID: &missing})
		assert.ErrorIs(t, err, dublincore.ErrInvalidItem)

		parentID := post.ID
		_, err = svc.CreateItem(ctx, dublincore.CreateItemRequest{Title: "child post", ParentID: &parentID})
		assert.ErrorIs(t, err, dublincore.ErrInvalidItem)
	})

	t.Run("update", func(t *testing.T) {
		title := "Hello Again"
		updated, err := svc.UpdateItem(ctx, dublincore.UpdateItemRequest{ID: post.ID, Title: &title, Tags: []string{"go"}})
		require.NoError(t, err)
		assert.Equal(t, title, updated.Title)
		assert.Equal(t, []string{"go"}, updated.Tags)
		assert.Equal(t, post.Permalink, updated.Permalink)

		empty := ""
		_, err = svc.UpdateItem(ctx, dublincore.UpdateItemRequest{ID: post.ID, Title: &empty})
		assert.ErrorIs(t, err, dublincore.ErrInvalidItem)
	})

	t.Run("delete", func(t *testing.T) {
		doomed, err := svc.CreateItem(ctx, dublincore.CreateItemRequest{Title: "Doomed"})
		require.NoError(t, err)
		require.NoError(t, svc.DeleteItem(ctx, doomed.ID))

		_, err = svc.GetItem(ctx, doomed.ID)
		assert.ErrorIs(t, err, dublincore.ErrItemNotFound)

		var itemErr *dublincore.ItemError
		require.True(t, errors.As(err, &itemErr))
		assert.Equal(t, doomed.ID, itemErr.ItemID)
		assert.Equal(t, "get", itemErr.Op)
	})
}

type recordingSink struct {
	events []string
	err    error
}

func (r *recordingSink) ItemCreated(ctx context.Context, item *dublincore.Item) error {
	r.events = append(r.events, "created:"+item.Title)
	return r.err
}

func (r *recordingSink) ItemUpdated(ctx context.Context, item *dublincore.Item) error {
	r.events = append(r.events, "updated:"+item.Title)
	return r.err
}

func (r *recordingSink) ItemDeleted(ctx context.Context, itemID uuid.UUID) error {
	r.events = append(r.events, "deleted:"+itemID.String())
	return r.err
}

func TestEventSink(t *testing.T) {
	ctx := context.Background()

	t.Run("lifecycle events", func(t *testing.T) {
		sink := &recordingSink{}
		svc := newTestService(t, dublincore.WithEventSink(sink))

		item, err := svc.CreateItem(ctx, dublincore.CreateItemRequest{Title: "First"})
		require.NoError(t, err)
		title := "Second"
		_, err = svc.UpdateItem(ctx, dublincore.UpdateItemRequest{ID: item.ID, Title: &title})
		require.NoError(t, err)
		require.NoError(t, svc.DeleteItem(ctx, item.ID))

		assert.Equal(t, []string{"created:First", "updated:Second", "deleted:" + item.ID.String()}, sink.events)
	})

	t.Run("failed operations fire nothing", func(t *testing.T) {
		sink := &recordingSink{}
		svc := newTestService(t, dublincore.WithEventSink(sink))

		_, err := svc.CreateItem(ctx, dublincore.CreateItemRequest{Kind: "podcast", Title: "x"})
		require.Error(t, err)
		require.Error(t, svc.DeleteItem(ctx, uuid.New()))
		assert.Empty(t, sink.events)
	})

	t.Run("sink errors do not fail the operation", func(t *testing.T) {
		sink := &recordingSink{err: errors.New("sink down")}
		svc := newTestService(t, dublincore.WithEventSink(sink))

		item, err := svc.CreateItem(ctx, dublincore.CreateItemRequest{Title: "Kept"})
		require.NoError(t, err)
		_, err = svc.GetItem(ctx, item.ID)
		assert.NoError(t, err)
		assert.NoError(t, svc.DeleteItem(ctx, item.ID))
		assert.Len(t, sink.events, 2)
	})
}

func TestOptionOperations(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	opts, err := svc.GetOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, dublincore.DefaultOptions(), *opts)

	require.NoError(t, svc.SetOptions(ctx, dublincore.Options{AutoDublinCore: true, CopyrightURL: "https://example.com/c"}))
	opts, err = svc.GetOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/c", opts.CopyrightURL)

	err = svc.SetOptions(ctx, dublincore.Options{CopyrightURL: "ftp://example.com"})
	assert.ErrorIs(t, err, dublincore.ErrInvalidOptions)
}

func TestHeadTags(t *testing.T) {
	svc := newTestService(t, dublincore.WithBuilder(dublincore.NewBuilder(
		dublincore.WithLicenseProvider(dublincore.StaticLicense("https://example.com/license")),
	)))
	ctx := context.Background()

	post, err := svc.CreateItem(ctx, dublincore.CreateItemRequest{
		Title:    "Gallery",
		Keywords: "foo, bar",
		Body:     `<p>See <a href="https://www.flickr.com/photos/someone/12345">this</a> and https://youtu.be/dQw4w9WgXcQ</p>`,
	})
	require.NoError(t, err)
	parentID := post.ID
	att, err := svc.CreateItem(ctx, dublincore.CreateItemRequest{
		Kind: dublincore.KindAttachment, Title: "Clip", MimeType: "video/mp4", ParentID: &parentID,
		Keywords: "ignored",
	})
	require.NoError(t, err)

	t.Run("post", func(t *testing.T) {
		tags, err := svc.HeadTags(ctx, post.ID, dublincore.SingleView())
		require.NoError(t, err)

		assert.Equal(t, []string{
			att.Permalink,
			"https://www.flickr.com/photos/someone/12345/",
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		}, contents(dublincore.FilterByName(tags, dublincore.TermHasPart)))
		assert.Equal(t, []string{"foo", "bar"}, contents(dublincore.FilterByName(tags, dublincore.TermSubject)))
		assert.Equal(t, []string{"https://example.com/license"}, contents(dublincore.FilterByName(tags, dublincore.TermLicense)))
		assert.Empty(t, dublincore.FilterByName(tags, dublincore.TermRights))
	})

	t.Run("attachment", func(t *testing.T) {
		tags, err := svc.HeadTags(ctx, att.ID, dublincore.SingleView())
		require.NoError(t, err)

		assert.Equal(t, []string{post.Permalink}, contents(dublincore.FilterByName(tags, dublincore.TermIsPartOf)))
		assert.Equal(t, []string{dublincore.TypeMovingImage}, contents(dublincore.FilterByName(tags, dublincore.TermType)))
		assert.Empty(t, dublincore.FilterByName(tags, dublincore.TermSubject))
	})

	t.Run("options apply", func(t *testing.T) {
		require.NoError(t, svc.SetOptions(ctx, dublincore.Options{AutoDublinCore: true, CopyrightURL: "https://example.com/c"}))
		tags, err := svc.HeadTags(ctx, post.ID, dublincore.SingleView())
		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com"}, contents(dublincore.FilterByName(tags, dublincore.TermRights)))

		require.NoError(t, svc.SetOptions(ctx, dublincore.Options{AutoDublinCore: false}))
		tags, err = svc.HeadTags(ctx, post.ID, dublincore.SingleView())
		require.NoError(t, err)
		assert.Empty(t, tags)
	})

	t.Run("orphaned attachment", func(t *testing.T) {
		require.NoError(t, svc.SetOptions(ctx, dublincore.DefaultOptions()))
		require.NoError(t, svc.DeleteItem(ctx, post.ID))

		tags, err := svc.HeadTags(ctx, att.ID, dublincore.SingleView())
		require.NoError(t, err)
		assert.Equal(t, []string{""}, contents(dublincore.FilterByName(tags, dublincore.TermIsPartOf)))
	})

	t.Run("missing item", func(t *testing.T) {
		_, err := svc.HeadTags(ctx, uuid.New(), dublincore.SingleView())
		assert.ErrorIs(t, err, dublincore.ErrItemNotFound)
	})
}

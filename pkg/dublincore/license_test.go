package dublincore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-dublincore/pkg/dublincore"
)

func TestCreativeCommons(t *testing.T) {
	ctx := context.Background()

	cc, err := dublincore.NewCreativeCommons(" BY-NC-SA ", "")
	require.NoError(t, err)
	assert.Equal(t, "https://creativecommons.org/licenses/by-nc-sa/4.0/", cc.LicenseURL(ctx, nil))

	cc, err = dublincore.NewCreativeCommons("by", "3.0")
	require.NoError(t, err)
	assert.Equal(t, "https://creativecommons.org/licenses/by/3.0/", cc.LicenseURL(ctx, &dublincore.Item{}))

	_, err = dublincore.NewCreativeCommons("cc0", "")
	assert.Error(t, err)
}

func TestStaticAndFuncLicense(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "https://example.com/l", dublincore.StaticLicense("https://example.com/l").LicenseURL(ctx, nil))

	f := dublincore.LicenseFunc(func(ctx context.Context, item *dublincore.Item) string {
		if item.IsAttachment() {
			return "https://example.com/media-license"
		}
		return ""
	})
	assert.Equal(t, "https://example.com/media-license", f.LicenseURL(ctx, &dublincore.Item{Kind: dublincore.KindAttachment}))
	assert.Equal(t, "", f.LicenseURL(ctx, &dublincore.Item{Kind: dublincore.KindPost}))
}

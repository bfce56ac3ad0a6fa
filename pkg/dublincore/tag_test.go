package dublincore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tendant/simple-dublincore/pkg/dublincore"
)

func TestTagHTML(t *testing.T) {
	tag := dublincore.Tag{Name: dublincore.TermIdentifier, Scheme: dublincore.SchemeURI, Content: "https://example.com/?a=1&b=2"}
	assert.Equal(t, `<meta name="dcterms.identifier" scheme="dcterms.URI" content="https://example.com/?a=1&amp;b=2" />`, tag.HTML())
	assert.Equal(t, tag.HTML(), tag.String())

	noScheme := dublincore.Tag{Name: dublincore.TermTitle, Content: `"Quoted" <title>`}
	assert.Equal(t, `<meta name="dcterms.title" content="&#34;Quoted&#34; &lt;title&gt;" />`, noScheme.HTML())
}

func TestRenderHead(t *testing.T) {
	assert.Equal(t, "", dublincore.RenderHead(nil))

	tags := []dublincore.Tag{
		{Name: dublincore.TermTitle, Content: "A"},
		{Name: dublincore.TermCoverage, Content: dublincore.CoverageWorld},
	}
	assert.Equal(t,
		`<meta name="dcterms.title" content="A" />`+"\n"+`<meta name="dcterms.coverage" content="World" />`,
		dublincore.RenderHead(tags))
}

func TestFilterByName(t *testing.T) {
	tags := []dublincore.Tag{
		{Name: dublincore.TermSubject, Content: "a"},
		{Name: dublincore.TermTitle, Content: "t"},
		{Name: dublincore.TermSubject, Content: "b"},
	}
	assert.Equal(t, []dublincore.Tag{tags[0], tags[2]}, dublincore.FilterByName(tags, dublincore.TermSubject))
	assert.Nil(t, dublincore.FilterByName(tags, dublincore.TermRights))
}

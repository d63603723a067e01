package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>  Sample Page  </title></head>
<body>
  <nav>Site navigation</nav>
  <article class="post">
    <h1>Heading One</h1>
    <p>First   paragraph
       spans lines.</p>
    <div><code class="language-go">fmt.Println("hi")</code></div>
    <pre class="lang-sh"><code>echo hello world</code></pre>
  </article>
  <footer>Footer</footer>
</body>
</html>`

func parse(t *testing.T, raw string) *Tree {
	t.Helper()

	tree, err := Parse(raw)
	require.NoError(t, err)
	return tree
}

func TestParse_TolerantOfBrokenMarkup(t *testing.T) {
	t.Parallel()

	tree := parse(t, "<div><p>unclosed <b>bold</div>")
	assert.Equal(t, "unclosed bold", Text(tree.Body()))
}

func TestTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Sample Page", parse(t, samplePage).Title())
	assert.Equal(t, "Only Heading", parse(t, "<body><h1> Only Heading </h1></body>").Title())
	assert.Empty(t, parse(t, "<body><p>nothing</p></body>").Title())
}

func TestStrip(t *testing.T) {
	t.Parallel()

	tree := parse(t, samplePage)
	removed := tree.Strip("nav", "footer", "aside")
	assert.Equal(t, 2, removed)
	assert.NotContains(t, Text(tree.Body()), "Site navigation")
	assert.NotContains(t, Text(tree.Body()), "Footer")
	assert.Contains(t, Text(tree.Body()), "Heading One")
}

func TestClassOf(t *testing.T) {
	t.Parallel()

	tree := parse(t, samplePage)
	assert.Equal(t, "language-go", ClassOf(tree.Find("div code")))
	// Falls back to the parent when the element has no class.
	assert.Equal(t, "lang-sh", ClassOf(tree.Find("pre code")))
	assert.Equal(t, "post", ClassOf(tree.Find("h1")))
	assert.Empty(t, ClassOf(tree.Find("nav")))
}

func TestWildcardClassSelector(t *testing.T) {
	t.Parallel()

	tree := parse(t, samplePage)
	assert.Equal(t, 1, tree.Find(`[class*="language-"]`).Length())
}

func TestHeadingLevel(t *testing.T) {
	t.Parallel()

	tree := parse(t, `<body><h1>a</h1><h4>b</h4><hr><p>c</p></body>`)
	assert.Equal(t, 1, HeadingLevel(tree.Find("h1")))
	assert.Equal(t, 4, HeadingLevel(tree.Find("h4")))
	assert.Equal(t, 0, HeadingLevel(tree.Find("hr")))
	assert.Equal(t, 0, HeadingLevel(tree.Find("p")))
	assert.Equal(t, 0, HeadingLevel(tree.Find("table")))
}

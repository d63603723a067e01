package extract

import (
	"strings"
	"testing"

	"github.com/gaurav-prasanna/docmind/core"
	"github.com/gaurav-prasanna/docmind/core/markup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTree(t *testing.T, raw string) *markup.Tree {
	t.Helper()

	tree, err := markup.Parse(raw)
	require.NoError(t, err)
	return tree
}

func TestExtractCode_ClassLanguage(t *testing.T) {
	t.Parallel()

	tree := parseTree(t, `<body><article>
		<h2>Running</h2>
		<pre><code class="language-python">def run():
    pass</code></pre>
	</article></body>`)

	blocks := ExtractCode(tree)
	require.Len(t, blocks, 1)
	assert.Equal(t, "python", blocks[0].Language)
	assert.Equal(t, "def run():\n    pass", blocks[0].Code)
	assert.Equal(t, "Running", blocks[0].Context)
	assert.Equal(t, "pre code", blocks[0].Element)
}

func TestExtractCode_ParentClass(t *testing.T) {
	t.Parallel()

	tree := parseTree(t, `<body><pre class="lang-Ruby"><code>puts "hello world"</code></pre></body>`)

	blocks := ExtractCode(tree)
	require.Len(t, blocks, 1)
	assert.Equal(t, "ruby", blocks[0].Language)
	assert.Equal(t, core.DefaultCodeContext, blocks[0].Context)
}

func TestExtractCode_ContentHeuristic(t *testing.T) {
	t.Parallel()

	tree := parseTree(t, `<body><div><p>Usage</p><pre><code>import React from 'react'
const x = 1</code></pre></div></body>`)

	blocks := ExtractCode(tree)
	require.Len(t, blocks, 1)
	assert.Equal(t, "javascript", blocks[0].Language)
	assert.Equal(t, "Usage", blocks[0].Context)
}

func TestExtractCode_DuplicateKeepsFirstSelector(t *testing.T) {
	t.Parallel()

	tree := parseTree(t, `<body>
		<div class="code-block">echo "same snippet"</div>
		<pre><code>echo "same snippet"</code></pre>
	</body>`)

	blocks := ExtractCode(tree)
	require.Len(t, blocks, 1)
	assert.Equal(t, "pre code", blocks[0].Element)
}

func TestExtractCode_SkipsShortFragments(t *testing.T) {
	t.Parallel()

	tree := parseTree(t, `<body><p>Call <code>foo()</code> or <code>0123456789</code>.</p>
		<code>01234567890</code></body>`)

	blocks := ExtractCode(tree)
	require.Len(t, blocks, 1)
	assert.Equal(t, "01234567890", blocks[0].Code)
	assert.Equal(t, "code", blocks[0].Element)
}

func TestExtractCode_HighlighterHooks(t *testing.T) {
	t.Parallel()

	tree := parseTree(t, `<body>
		<div class="highlight"><pre>SELECT * FROM users;</pre></div>
		<span class="hljs">let total = items.length</span>
		<div class="language-yaml">name: docmind</div>
	</body>`)

	blocks := ExtractCode(tree)
	require.Len(t, blocks, 3)

	assert.Equal(t, ".highlight pre", blocks[0].Element)
	assert.Equal(t, PlainText, blocks[0].Language)
	assert.Equal(t, `[class*="language-"]`, blocks[1].Element)
	assert.Equal(t, "yaml", blocks[1].Language)
	assert.Equal(t, ".hljs", blocks[2].Element)
	assert.Equal(t, "javascript", blocks[2].Language)
}

func TestExtractCode_ContextTruncated(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 40)
	tree := parseTree(t, `<body><section><p>`+long+`</p><pre><code>make build all</code></pre></section></body>`)

	blocks := ExtractCode(tree)
	require.Len(t, blocks, 1)
	assert.Len(t, []rune(blocks[0].Context), core.MaxCodeContextChars)
}

func TestExtractCode_UniqueAndLongEnough(t *testing.T) {
	t.Parallel()

	tree := parseTree(t, `<body>
		<pre><code class="language-go">package main</code></pre>
		<pre><code class="language-go">package main</code></pre>
		<code>package main</code>
		<pre><code>fmt.Println("x")</code></pre>
	</body>`)

	blocks := ExtractCode(tree)
	seen := map[string]bool{}
	for _, b := range blocks {
		assert.False(t, seen[b.Code], "duplicate code %q", b.Code)
		seen[b.Code] = true
		assert.Greater(t, len([]rune(strings.TrimSpace(b.Code))), core.MinCodeChars)
	}
	assert.Len(t, blocks, 2)
}

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTMLParagraph(t *testing.T) {
	out, err := renderHTML("<article><p>Example puzzle</p></article>")
	require.NoError(t, err)
	assert.Equal(t, "Example puzzle", out)
}

func TestRenderHTMLIgnoresPageChrome(t *testing.T) {
	src := `<html><head><title>Day 1</title></head><body>
<header><nav>menu</nav></header>
<article><p>The real statement.</p></article>
<footer>footer text</footer>
</body></html>`
	out, err := renderHTML(src)
	require.NoError(t, err)
	assert.Equal(t, "The real statement.", out)
}

func TestRenderHTMLBlocks(t *testing.T) {
	src := `<article>
<h2>--- Day 5: Example ---</h2>
<p>First paragraph with <em>emphasis</em> and <code>inline code</code>.</p>
<p>Second paragraph.</p>
</article>`
	out, err := renderHTML(src)
	require.NoError(t, err)
	assert.Equal(t,
		"--- Day 5: Example ---\n\n"+
			"First paragraph with *emphasis* and `inline code`.\n\n"+
			"Second paragraph.",
		out)
}

func TestRenderHTMLList(t *testing.T) {
	src := `<article><p>Rules:</p><ul>
<li>first rule</li>
<li>second rule</li>
</ul></article>`
	out, err := renderHTML(src)
	require.NoError(t, err)
	assert.Equal(t, "Rules:\n\n  - first rule\n  - second rule", out)
}

func TestRenderHTMLCodeBlockPreservesWhitespace(t *testing.T) {
	src := "<article><pre><code>..#..\n#...#\n..#..</code></pre></article>"
	out, err := renderHTML(src)
	require.NoError(t, err)
	assert.Equal(t, "    ..#..\n    #...#\n    ..#..", out)
}

func TestRenderHTMLMultipleArticles(t *testing.T) {
	src := `<body><article><p>Part one.</p></article><article><p>Part two.</p></article></body>`
	out, err := renderHTML(src)
	require.NoError(t, err)
	assert.Equal(t, "Part one.\n\nPart two.", out)
}

func TestRenderHTMLWithoutArticleRendersBody(t *testing.T) {
	out, err := renderHTML("<p>bare fragment</p>")
	require.NoError(t, err)
	assert.Equal(t, "bare fragment", out)
}

func TestRenderHTMLDeterministic(t *testing.T) {
	src := `<article><p>Stable <em>output</em></p><pre>a b</pre></article>`
	first, err := renderHTML(src)
	require.NoError(t, err)
	second, err := renderHTML(src)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

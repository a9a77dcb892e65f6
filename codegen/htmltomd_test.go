package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLToMarkdown(t *testing.T) {
	in := `<p>Inline: <a href="#">foo</a>, <b>baz</b>.</p>`
	want := "Inline: [foo](#), **baz**."
	assert.Equal(t, want, HtmlToMarkdown(in))
}

func TestHTMLToMarkdownStripsUnknownTags(t *testing.T) {
	in := `<kbd>Ctrl</kbd>+C`
	want := "Ctrl+C"
	assert.Equal(t, want, HtmlToMarkdown(in))
}

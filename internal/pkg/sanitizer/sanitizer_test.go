package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_StripsScripts(t *testing.T) {
	s := New()

	out := s.Sanitize(`hello <script>alert("xss")</script>world`)
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "alert")
}

func TestSanitize_KeepsFormattingAllowList(t *testing.T) {
	s := New()

	in := `<b>bold</b> <i>italic</i> <code>x := 1</code> <blockquote>quote</blockquote>`
	out := s.Sanitize(in)
	assert.Contains(t, out, "<b>bold</b>")
	assert.Contains(t, out, "<i>italic</i>")
	assert.Contains(t, out, "<code>x := 1</code>")
	assert.Contains(t, out, "<blockquote>quote</blockquote>")
}

func TestSanitize_LinksRestrictedToSafeSchemes(t *testing.T) {
	s := New()

	out := s.Sanitize(`<a href="https://example.com">ok</a>`)
	assert.Contains(t, out, `href="https://example.com"`)
	assert.Contains(t, out, `rel="nofollow"`)

	out = s.Sanitize(`<a href="javascript:alert(1)">bad</a>`)
	assert.NotContains(t, out, "javascript:")
}

func TestSanitize_DropsEventHandlers(t *testing.T) {
	s := New()

	out := s.Sanitize(`<b onclick="steal()">text</b>`)
	assert.NotContains(t, out, "onclick")
	assert.Contains(t, out, "text")
}

func TestSanitize_TrimsWhitespace(t *testing.T) {
	s := New()

	assert.Equal(t, "hi", s.Sanitize("  hi  "))
}

package sanitizer

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips rich-text message content down to an explicit allow-list
// of tags, attributes and inline style properties before it is persisted.
// Everything outside the list is removed, not escaped.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func New() *Sanitizer {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"b", "i", "em", "strong", "u", "s", "code", "pre",
		"p", "br", "ul", "ol", "li", "blockquote", "span",
	)

	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireNoFollowOnLinks(true)

	p.AllowAttrs("class").OnElements("code", "span")
	p.AllowStyles("color", "background-color", "font-weight", "text-decoration").OnElements("span")

	return &Sanitizer{policy: p}
}

// Sanitize returns the cleaned content. Surrounding whitespace introduced by
// stripped block elements is trimmed.
func (s *Sanitizer) Sanitize(content string) string {
	return strings.TrimSpace(s.policy.Sanitize(content))
}

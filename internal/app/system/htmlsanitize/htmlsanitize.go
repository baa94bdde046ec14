// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize cleans user-supplied text before it is persisted.
//
// Two policies:
//   - Sanitize: rich-text policy for long-form content (destination guides).
//     Keeps standard formatting, links, images, and tables; strips scripts,
//     event handlers, iframes, forms, and unsafe protocols.
//   - Plain: strips all markup. Used for names, chat messages, post bodies,
//     reviews, and anywhere else the product renders text, not HTML.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var richPolicy = buildRichPolicy()
var strictPolicy = bluemonday.StrictPolicy()

func buildRichPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	// Extra inline formatting beyond UGC defaults.
	p.AllowElements("u", "s", "sub", "sup", "mark", "hr")

	// Tables with the attributes the editor emits.
	p.AllowElements("table", "thead", "tbody", "tfoot", "tr", "th", "td", "caption")
	p.AllowAttrs("colspan", "rowspan").OnElements("th", "td")
	p.AllowAttrs("class", "style").OnElements("table", "thead", "tbody", "tr", "th", "td")

	return p
}

// Sanitize cleans rich-text content, preserving safe formatting.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return richPolicy.Sanitize(s)
}

// Plain strips every tag and unescapes entities, returning display text.
func Plain(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// IsPlainText reports whether s contains no HTML tags.
func IsPlainText(s string) bool {
	return !(strings.Contains(s, "<") && strings.Contains(s, ">"))
}

// internal/app/system/sanitize/sanitize.go

// Package sanitize cleans participant-submitted contribution text before
// it is stored. Contributions allow basic formatting (paragraphs, lists,
// emphasis, links) but never scripts or event handlers.
package sanitize

import "github.com/microcosm-cc/bluemonday"

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AllowElements("u", "s", "sub", "sup", "mark")
	return p
}

// Contribution returns the sanitized form of contribution text.
func Contribution(text string) string {
	return policy.Sanitize(text)
}

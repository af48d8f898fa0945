package validation

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML removes markup from user-supplied content, keeping only text
// nodes. Posts and comments are stored and rendered as plain text, so any
// tags in the input are noise at best and script injection at worst.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return SanitizeString(s)
	}

	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.Write(tokenizer.Text())
		}
	}

	return SanitizeString(b.String())
}

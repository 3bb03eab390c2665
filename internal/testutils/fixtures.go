package testutils

import (
	"fmt"
	"strings"
)

// HTMLPage wraps body paragraphs in a minimal document with a head, a
// script and a style block, none of which should reach the evidence text.
func HTMLPage(title string, paragraphs ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<html><head><title>%s</title><style>p{margin:0}</style></head><body>", title)
	b.WriteString("<script>var hidden = 'uno uno uno';</script>")
	for _, p := range paragraphs {
		fmt.Fprintf(&b, "<p>%s</p>", p)
	}
	b.WriteString("</body></html>")
	return b.String()
}

// Repeat joins n copies of word with spaces.
func Repeat(word string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSpace(strings.Repeat(word+" ", n))
}

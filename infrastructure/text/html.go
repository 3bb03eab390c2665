package text

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// invisible elements whose text never reaches the page body.
var invisible = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Head:     true,
	atom.Title:    true,
	atom.Noscript: true,
	atom.Template: true,
}

// CleanHTML returns the visible text of an HTML document, lowercased and
// transliterated to ASCII with entities unescaped and whitespace collapsed.
// Comments and the content of script, style, head, title and noscript
// elements are dropped. Malformed markup is cleaned as far as the
// tokenizer gets; the empty string yields the empty string.
func CleanHTML(raw string) string {
	if raw == "" {
		return ""
	}

	z := html.NewTokenizer(strings.NewReader(raw))
	var b strings.Builder
	b.Grow(len(raw) / 2)
	skip := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or a tokenizer failure; keep what was collected.
			return finish(b.String())

		case html.StartTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if a == atom.Body {
				skip = 0
			}
			if invisible[a] {
				skip++
			}
			b.WriteByte(' ')

		case html.EndTagToken:
			name, _ := z.TagName()
			if invisible[atom.Lookup(name)] && skip > 0 {
				skip--
			}
			b.WriteByte(' ')

		case html.SelfClosingTagToken:
			b.WriteByte(' ')

		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func finish(s string) string {
	s = Transliterate(s)
	s = cases.Lower(language.Und).String(s)
	return strings.Join(strings.Fields(s), " ")
}

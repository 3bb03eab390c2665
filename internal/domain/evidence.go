package domain

// Document is the normalized visible text of one fetched page: lowercased,
// tag free, entity unescaped and transliterated to ASCII. A failed or timed
// out fetch yields a Document with empty Text rather than an error.
type Document struct {
	// URL is the source address, kept for logging only.
	URL string `json:"url"`

	// Text is the corpus scoring methods count occurrences in.
	Text string `json:"text"`
}

// Empty reports whether the document carries no evidence.
func (d Document) Empty() bool { return d.Text == "" }

// Texts returns the text of every document, preserving order.
func Texts(docs []Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Text
	}
	return out
}

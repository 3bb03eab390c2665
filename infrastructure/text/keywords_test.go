package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordExtractor_Extract(t *testing.T) {
	e := NewKeywordExtractor(DefaultKeywordConfig())

	tests := []struct {
		name      string
		in        string
		sentences bool
		want      []string
	}{
		{
			name:      "quoted phrase stays whole",
			in:        `I do love "The Scarlet Letter".`,
			sentences: true,
			want:      []string{"love", "The Scarlet Letter"},
		},
		{
			name:      "consecutive capitals with possessive",
			in:        "Do you love Nathaniel Hawthorne's books?",
			sentences: true,
			want:      []string{"love", "Nathaniel Hawthorne's", "books"},
		},
		{
			name:      "sentence opener does not start a phrase",
			in:        "The Beatles and Elvis Presley",
			sentences: true,
			want:      []string{"Beatles", "Elvis Presley"},
		},
		{
			name:      "opener kept without sentence handling",
			in:        "The Beatles and Elvis Presley",
			sentences: false,
			want:      []string{"The Beatles", "Elvis Presley"},
		},
		{
			name:      "polarity words survive",
			in:        "Which is the most populous?",
			sentences: true,
			want:      []string{"most", "populous"},
		},
		{
			name:      "every sentence is lowered",
			in:        "Hello there. Where is Paris?",
			sentences: true,
			want:      []string{"hello", "Paris"},
		},
		{
			name:      "duplicates keep first occurrence",
			in:        "court games court",
			sentences: false,
			want:      []string{"court", "games"},
		},
		{
			name:      "court question",
			in:        "Which of these games is played on a court?",
			sentences: true,
			want:      []string{"games", "played", "court"},
		},
		{
			name:      "empty input",
			in:        "",
			sentences: true,
			want:      []string{},
		},
		{
			name:      "punctuation only",
			in:        "?!...",
			sentences: true,
			want:      []string{},
		},
		{
			name:      "stopwords only",
			in:        "Which of these is it?",
			sentences: true,
			want:      []string{},
		},
		{
			name:      "capitalized negation is a keyword",
			in:        "Which of these is NOT a mammal?",
			sentences: true,
			want:      []string{"NOT", "mammal"},
		},
		{
			name:      "capitalized stopword choice is kept",
			in:        "It",
			sentences: false,
			want:      []string{"It"},
		},
		{
			name:      "proper noun colliding with a stopword",
			in:        "The Who",
			sentences: true,
			want:      []string{"Who"},
		},
		{
			name:      "abbreviation does not end the sentence",
			in:        "Which U.S. President Lincoln speech?",
			sentences: true,
			want:      []string{"US", "President Lincoln", "speech"},
		},
		{
			name:      "empty quotes are ignored",
			in:        `say "" loudly`,
			sentences: false,
			want:      []string{"say", "loudly"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Extract(tt.in, tt.sentences))
		})
	}
}

func TestKeywordExtractor_Idempotent(t *testing.T) {
	e := NewKeywordExtractor(DefaultKeywordConfig())
	inputs := []string{
		`I do love "The Scarlet Letter".`,
		"Do you love Nathaniel Hawthorne's books?",
		"Which of these is NOT a mammal?",
	}

	for _, in := range inputs {
		first := e.Extract(in, true)
		second := e.Extract(in, true)
		assert.Equal(t, first, second, in)
	}
}

func TestKeywordExtractor_Config(t *testing.T) {
	e := NewKeywordExtractor(KeywordConfig{
		Stopwords: []string{"games", "Most"},
		Keep:      []string{"most"},
	})

	assert.True(t, e.IsStopword("games"))
	assert.False(t, e.IsStopword("Games"), "Stopwords match exactly.")
	assert.True(t, e.IsStopword("Most"))
	assert.False(t, e.IsStopword("most"))
	assert.Equal(t, []string{"most", "court"}, e.Extract("most games court", false))
}

func TestDefaultStopwords_ExcludesPolarityWords(t *testing.T) {
	words := DefaultStopwords()
	require.NotEmpty(t, words)
	assert.NotContains(t, words, "most")
	assert.NotContains(t, words, "least")

	words[0] = "mutated"
	assert.NotEqual(t, "mutated", DefaultStopwords()[0])
}

func TestLowerSentenceStarts(t *testing.T) {
	tests := map[string]string{
		"Hello. World":        "hello. world",
		"Wait... What? Yes!":  "wait... what? yes!",
		"U.S. Army":           "u.S. Army",
		"Say e.g. Paris":      "say e.g. Paris",
		"Is it Mr. Smith?":    "is it Mr. smith?",
		`He said "Go." Then`:  `he said "Go." then`,
		"  Leading space":     "  leading space",
		"Écoute":              "écoute",
		"no capitals at all.": "no capitals at all.",
	}

	for in, want := range tests {
		assert.Equal(t, want, lowerSentenceStarts(in), in)
	}
}

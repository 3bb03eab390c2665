package domain

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Choice is one candidate answer as presented by the game.
type Choice struct {
	// Text is the choice exactly as the game displayed it.
	Text string `json:"text"`

	// Variants holds the normalized spellings used for occurrence counting.
	// The first variant is the canonical form.
	Variants []string `json:"variants"`
}

// Canonical returns the first variant, or the empty string when the choice
// has no usable variant.
func (c Choice) Canonical() string {
	if len(c.Variants) == 0 {
		return ""
	}
	return c.Variants[0]
}

// Question is the unit of work for one incoming question event.
// It is built once and never mutated.
type Question struct {
	// ID correlates log lines and API responses for one question.
	ID string `json:"id"`

	// Text is the raw question text.
	Text string `json:"text"`

	// Choices are the candidate answers in game order.
	Choices []Choice `json:"choices"`

	// Reverse is true when the question asks for the least associated
	// answer ("Which of these is NOT ...").
	Reverse bool `json:"reverse"`
}

// NewQuestion builds a Question, deriving polarity from the raw text with
// the given rules.
func NewQuestion(id, text string, choices []Choice, rules PolarityRules) Question {
	return Question{
		ID:      id,
		Text:    text,
		Choices: slices.Clone(choices),
		Reverse: rules.Reverse(text),
	}
}

// VariantGroups returns one group of variants per choice, in choice order.
func (q Question) VariantGroups() [][]string {
	groups := make([][]string, len(q.Choices))
	for i, c := range q.Choices {
		groups[i] = slices.Clone(c.Variants)
	}
	return groups
}

// Variants returns every variant of every choice, flattened and
// de-duplicated in first-seen order.
func (q Question) Variants() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range q.Choices {
		for _, v := range c.Variants {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// PolarityRules decides whether a question is negated.
// Markers are matched case-sensitively as whole tokens on the raw text.
// FoldedMarkers are matched case-insensitively as substrings and are
// suppressed when any of the Exceptions also occurs.
type PolarityRules struct {
	Markers       []string `yaml:"markers" json:"markers"`
	FoldedMarkers []string `yaml:"folded_markers" json:"folded_markers"`
	Exceptions    []string `yaml:"exceptions" json:"exceptions"`
}

// DefaultPolarityRules returns the rules observed on live shows:
// "NOT", "NEVER", and "least" unless the question says "at least".
func DefaultPolarityRules() PolarityRules {
	return PolarityRules{
		Markers:       []string{"NOT", "NEVER"},
		FoldedMarkers: []string{"least"},
		Exceptions:    []string{"at least"},
	}
}

// Reverse reports whether the best answer for question is the least
// occurring one.
func (r PolarityRules) Reverse(question string) bool {
	for _, m := range r.Markers {
		if containsToken(question, m) {
			return true
		}
	}

	lower := strings.ToLower(question)
	for _, e := range r.Exceptions {
		if e != "" && strings.Contains(lower, strings.ToLower(e)) {
			return false
		}
	}
	for _, m := range r.FoldedMarkers {
		if m != "" && strings.Contains(lower, strings.ToLower(m)) {
			return true
		}
	}
	return false
}

// containsToken reports whether tok occurs in s without a letter or digit
// directly before or after it.
func containsToken(s, tok string) bool {
	if tok == "" {
		return false
	}
	for start := 0; start <= len(s)-len(tok); {
		i := strings.Index(s[start:], tok)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(tok)
		if !isWordRuneBefore(s, i) && !isWordRuneAt(s, end) {
			return true
		}
		start = i + 1
	}
	return false
}

func isWordRuneBefore(s string, i int) bool {
	if i == 0 {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(s[:i])
	return unicode.IsLetter(last) || unicode.IsDigit(last)
}

func isWordRuneAt(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

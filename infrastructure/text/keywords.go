package text

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// quotedRe matches a double-quoted phrase; the phrase is group 1.
	quotedRe = regexp.MustCompile(`"([^"]*)"`)

	// capitalizedRe matches two or more consecutive capitalized words. The
	// trailing words may carry an apostrophe so possessives stay attached.
	capitalizedRe = regexp.MustCompile(`[A-Z][a-z]+(?:\s[A-Z][a-z']+)+`)

	tokenRe = regexp.MustCompile(`\S+`)
)

// KeywordConfig configures a KeywordExtractor.
type KeywordConfig struct {
	// Stopwords are dropped from single-token keywords. Matching is exact,
	// so with the lowercase default list "NOT" and "Who" survive while a
	// lowercased sentence opener does not.
	Stopwords []string `yaml:"stopwords" json:"stopwords"`

	// Keep lists words that are never dropped, even if they appear in
	// Stopwords.
	Keep []string `yaml:"keep" json:"keep"`
}

// DefaultKeywordConfig returns the English stopword list with the polarity
// words "most" and "least" kept.
func DefaultKeywordConfig() KeywordConfig {
	return KeywordConfig{
		Stopwords: DefaultStopwords(),
		Keep:      append([]string(nil), polarityWords...),
	}
}

// KeywordExtractor derives ordered, de-duplicated keywords from text.
// It holds no mutable state after construction and is safe for
// concurrent use.
type KeywordExtractor struct {
	stop map[string]struct{}
}

// NewKeywordExtractor builds an extractor from cfg.
func NewKeywordExtractor(cfg KeywordConfig) *KeywordExtractor {
	stop := make(map[string]struct{}, len(cfg.Stopwords))
	for _, w := range cfg.Stopwords {
		stop[w] = struct{}{}
	}
	for _, w := range cfg.Keep {
		delete(stop, w)
	}
	return &KeywordExtractor{stop: stop}
}

// IsStopword reports whether w is dropped by the extractor.
func (e *KeywordExtractor) IsStopword(w string) bool {
	_, ok := e.stop[w]
	return ok
}

type keyword struct {
	text   string
	offset int
}

// Extract returns the keywords of s in order of first occurrence.
//
// Quoted phrases are taken whole, then runs of two or more capitalized
// words, then every remaining token that is not a stopword. Each stage
// blanks out what it matched so later stages cannot match it again.
// When sentences is true the first letter of every sentence is lowercased
// first, so a capitalized sentence opener does not start a phrase.
// Empty or punctuation-only input yields an empty list.
func (e *KeywordExtractor) Extract(s string, sentences bool) []string {
	if sentences {
		s = lowerSentenceStarts(s)
	}
	s = stripPunctuationExcept(s, `"'`)

	var found []keyword
	s = consume(s, quotedRe, 1, &found)
	s = consume(s, capitalizedRe, 0, &found)

	for _, loc := range tokenRe.FindAllStringIndex(s, -1) {
		tok := s[loc[0]:loc[1]]
		if e.IsStopword(tok) {
			continue
		}
		found = append(found, keyword{text: tok, offset: loc[0]})
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].offset < found[j].offset })

	seen := make(map[string]struct{}, len(found))
	out := make([]string, 0, len(found))
	for _, k := range found {
		if _, ok := seen[k.text]; ok {
			continue
		}
		seen[k.text] = struct{}{}
		out = append(out, k.text)
	}
	return out
}

// consume records every match of re (using capture group) as a keyword and
// returns s with each match replaced by spaces of equal byte length, so
// offsets found by later stages still refer to the original text.
func consume(s string, re *regexp.Regexp, group int, found *[]keyword) string {
	locs := re.FindAllStringSubmatchIndex(s, -1)
	if len(locs) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if phrase := strings.TrimSpace(s[loc[2*group]:loc[2*group+1]]); phrase != "" {
			*found = append(*found, keyword{text: phrase, offset: start})
		}
		b.WriteString(s[last:start])
		b.WriteString(strings.Repeat(" ", end-start))
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}

// lowerSentenceStarts lowercases the first character of s and of every
// sentence that follows a run of '.', '!' or '?' and whitespace. A period
// after a single letter ("U.S.", "e.g.") is an abbreviation and ends no
// sentence; longer abbreviations such as "Mr." still do, and so does a
// sentence that really ends in a lone letter ("Plan A.").
func lowerSentenceStarts(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	atStart, afterTerminator := true, false
	letters := 0 // letters since the last space or period
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		ends := isTerminator(r) && !(r == '.' && letters == 1)

		switch {
		case unicode.IsSpace(r):
			if afterTerminator {
				atStart = true
			}
			afterTerminator = false
		case atStart:
			r = unicode.ToLower(r)
			atStart = false
			afterTerminator = ends
		default:
			afterTerminator = ends || (afterTerminator && isCloser(r))
		}
		b.WriteRune(r)

		switch {
		case unicode.IsSpace(r) || r == '.':
			letters = 0
		case unicode.IsLetter(r):
			letters++
		}
	}
	return b.String()
}

func isTerminator(r rune) bool { return r == '.' || r == '!' || r == '?' }

func isCloser(r rune) bool { return r == '"' || r == '\'' || r == ')' || isTerminator(r) }

// Package text provides the normalization, keyword extraction and HTML
// cleaning used by every stage of the answer pipeline.
package text

import (
	"strings"
)

// Punctuation is the fixed ASCII punctuation class. It is independent of
// locale so the same choice always yields the same variants.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var (
	punctuationToNone  = newPunctuationReplacer("")
	punctuationToSpace = newPunctuationReplacer(" ")
)

func newPunctuationReplacer(with string) *strings.Replacer {
	pairs := make([]string, 0, 2*len(Punctuation))
	for _, r := range Punctuation {
		pairs = append(pairs, string(r), with)
	}
	return strings.NewReplacer(pairs...)
}

// IsPunctuation reports whether r belongs to the Punctuation class.
func IsPunctuation(r rune) bool {
	return r < 0x80 && strings.ContainsRune(Punctuation, r)
}

// StripPunctuation removes every punctuation character from s.
func StripPunctuation(s string) string { return punctuationToNone.Replace(s) }

// SpacePunctuation replaces every punctuation character in s with a single
// space.
func SpacePunctuation(s string) string { return punctuationToSpace.Replace(s) }

// stripPunctuationExcept removes punctuation from s, keeping the runes in
// keep.
func stripPunctuationExcept(s, keep string) string {
	return strings.Map(func(r rune) rune {
		if IsPunctuation(r) && !strings.ContainsRune(keep, r) {
			return -1
		}
		return r
	}, s)
}

// ChoiceVariants returns the de-duplicated variant set of a choice: the
// punctuation-stripped form first, then the punctuation-spaced form.
// Both are transliterated to ASCII and trimmed. Empty variants are dropped,
// so a choice made only of punctuation has no variants.
func ChoiceVariants(choice string) []string {
	ascii := Transliterate(choice)
	candidates := []string{
		strings.TrimSpace(StripPunctuation(ascii)),
		strings.TrimSpace(SpacePunctuation(ascii)),
	}

	variants := make([]string, 0, len(candidates))
	for _, v := range candidates {
		if v == "" {
			continue
		}
		dup := false
		for _, seen := range variants {
			if seen == v {
				dup = true
				break
			}
		}
		if !dup {
			variants = append(variants, v)
		}
	}
	return variants
}

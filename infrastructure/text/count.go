package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CountWord counts the non-overlapping occurrences of needle in haystack
// that have no letter or digit directly before or after them, so "art"
// is not counted inside "part". The match is case-sensitive; callers
// lowercase both sides when they want a folded count.
func CountWord(haystack, needle string) int {
	if needle == "" || len(needle) > len(haystack) {
		return 0
	}

	count := 0
	for start := 0; start <= len(haystack)-len(needle); {
		i := strings.Index(haystack[start:], needle)
		if i < 0 {
			break
		}
		i += start
		end := i + len(needle)
		if isBoundary(haystack, i, end) {
			count++
			start = end
			continue
		}
		_, size := utf8.DecodeRuneInString(haystack[i:])
		start = i + size
	}
	return count
}

func isBoundary(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

package domain

import (
	"fmt"
	"maps"
)

// MethodKind identifies one of the fixed scoring heuristics.
type MethodKind string

// Supported scoring methods. New heuristics are added here as new kinds.
const (
	// MethodExactMatch counts word-bounded occurrences of each choice variant.
	MethodExactMatch MethodKind = "exact_match"

	// MethodKeywordOverlap counts word-bounded occurrences of the keywords of
	// each choice variant.
	MethodKeywordOverlap MethodKind = "keyword_overlap"
)

// MethodKinds lists every supported method in default execution order.
func MethodKinds() []MethodKind {
	return []MethodKind{MethodExactMatch, MethodKeywordOverlap}
}

// ParseMethodKind converts a configuration string into a MethodKind.
func ParseMethodKind(s string) (MethodKind, error) {
	for _, k := range MethodKinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown scoring method %q", ErrInvalidConfiguration, s)
}

// ScoreTable maps a choice variant to its occurrence count for one scoring
// pass.
type ScoreTable map[string]int

// Clone returns an independent copy of the table.
func (t ScoreTable) Clone() ScoreTable {
	if t == nil {
		return nil
	}
	return maps.Clone(t)
}

// Result is the outcome of one scoring method for one question.
type Result struct {
	// Method is the heuristic that produced the result.
	Method MethodKind `json:"method"`

	// Answer is the canonical variant of the chosen choice, falling back to
	// its display text when it has none. Empty when there is no confident
	// answer; Choice indexes the displayed choice.
	Answer string `json:"answer"`

	// Choice is the index of the chosen choice, -1 when there is none.
	Choice int `json:"choice"`

	// Scores holds the merged per-choice scores, in choice order.
	Scores []int `json:"scores"`

	// Reason explains why no answer was given. Empty when Answer is set.
	Reason Rejection `json:"reason,omitempty"`
}

// Confident reports whether the method produced an answer.
func (r Result) Confident() bool { return r.Choice >= 0 }

package domain

// Rejection explains why the selector declined to answer.
type Rejection string

// Rejection reasons.
const (
	// RejectNone means a single best choice was found.
	RejectNone Rejection = ""

	// RejectNoChoices means the question carried no choices.
	RejectNoChoices Rejection = "no_choices"

	// RejectAllZero means no choice occurred in the evidence at all.
	RejectAllZero Rejection = "all_zero"

	// RejectTie means more than one choice shares the best score.
	RejectTie Rejection = "tie"
)

// Selection is the outcome of SelectBest.
type Selection struct {
	// Index is the winning choice, or -1 when Reason is set.
	Index int

	// Best is the best merged score (maximum, or minimum when reversed).
	Best int

	// Merged holds the summed score of every choice's variants.
	Merged []int

	// Reason is RejectNone when Index is valid.
	Reason Rejection
}

// MergeScores sums the scores of each group's variants into one score per
// group. Variants missing from scores count as zero.
func MergeScores(scores ScoreTable, groups [][]string) []int {
	merged := make([]int, len(groups))
	for i, group := range groups {
		for _, v := range group {
			merged[i] += scores[v]
		}
	}
	return merged
}

// SelectBest picks the choice whose merged score is the maximum, or the
// minimum when reverse is set. It declines to answer when every merged
// score is zero or when more than one choice ties at the best value.
func SelectBest(scores ScoreTable, groups [][]string, reverse bool) Selection {
	merged := MergeScores(scores, groups)
	if len(merged) == 0 {
		return Selection{Index: -1, Merged: merged, Reason: RejectNoChoices}
	}

	allZero := true
	bestIdx, best, ties := 0, merged[0], 1
	for i, score := range merged {
		if score != 0 {
			allZero = false
		}
		if i == 0 {
			continue
		}
		switch {
		case (!reverse && score > best) || (reverse && score < best):
			bestIdx, best, ties = i, score, 1
		case score == best:
			ties++
		}
	}

	switch {
	case allZero:
		return Selection{Index: -1, Best: 0, Merged: merged, Reason: RejectAllZero}
	case ties > 1:
		return Selection{Index: -1, Best: best, Merged: merged, Reason: RejectTie}
	}
	return Selection{Index: bestIdx, Best: best, Merged: merged}
}

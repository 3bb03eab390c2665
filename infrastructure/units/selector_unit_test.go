package units

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-hackq/internal/domain"
)

func TestSelectorUnit_Execute(t *testing.T) {
	su, err := NewSelectorUnit("selector")
	require.NoError(t, err)

	tests := []struct {
		name     string
		question domain.Question
		scores   domain.ScoreTable
		want     domain.Result
	}{
		{
			name:     "most occurring wins",
			question: newQuestion("Which of these games is played on a court?", "Basketball", "Uno"),
			scores:   domain.ScoreTable{"Basketball": 5, "Uno": 1},
			want: domain.Result{
				Method: domain.MethodExactMatch,
				Answer: "Basketball",
				Choice: 0,
				Scores: []int{5, 1},
			},
		},
		{
			name:     "negated question picks least occurring",
			question: newQuestion("Which of these is NOT played on a court?", "Basketball", "Uno"),
			scores:   domain.ScoreTable{"Basketball": 5, "Uno": 1},
			want: domain.Result{
				Method: domain.MethodExactMatch,
				Answer: "Uno",
				Choice: 1,
				Scores: []int{5, 1},
			},
		},
		{
			name:     "variants are merged per choice",
			question: newQuestion("Who wrote it?", "Hawthorne's", "Poe"),
			scores:   domain.ScoreTable{"Hawthornes": 2, "Hawthorne s": 2, "Poe": 3},
			want: domain.Result{
				Method: domain.MethodExactMatch,
				Answer: "Hawthornes",
				Choice: 0,
				Scores: []int{4, 3},
			},
		},
		{
			name:     "choice without variants answers with its text",
			question: newQuestion("Which is NOT a color?", "Red", "?!"),
			scores:   domain.ScoreTable{"Red": 2},
			want: domain.Result{
				Method: domain.MethodExactMatch,
				Answer: "?!",
				Choice: 1,
				Scores: []int{2, 0},
			},
		},
		{
			name:     "tie declines",
			question: newQuestion("Which?", "A", "B", "C"),
			scores:   domain.ScoreTable{"A": 3, "B": 3, "C": 1},
			want: domain.Result{
				Method: domain.MethodExactMatch,
				Choice: -1,
				Scores: []int{3, 3, 1},
				Reason: domain.RejectTie,
			},
		},
		{
			name:     "all zero declines even when reversed",
			question: newQuestion("Which is NEVER true?", "A", "B"),
			scores:   domain.ScoreTable{},
			want: domain.Result{
				Method: domain.MethodExactMatch,
				Choice: -1,
				Scores: []int{0, 0},
				Reason: domain.RejectAllZero,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := domain.With(domain.NewState(), domain.KeyQuestion, tt.question)
			state = domain.With(state, domain.KeyScores, tt.scores)
			state = domain.With(state, domain.KeyMethod, domain.MethodExactMatch)

			next, err := su.Execute(context.Background(), state)
			require.NoError(t, err)

			got, ok := domain.Get(next, domain.KeyResult)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Choice >= 0, got.Confident())
		})
	}
}

func TestSelectorUnit_MissingState(t *testing.T) {
	su, err := NewSelectorUnit("selector")
	require.NoError(t, err)

	_, err = su.Execute(context.Background(), domain.NewState())
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	state := domain.With(domain.NewState(), domain.KeyQuestion, newQuestion("Q?", "A"))
	_, err = su.Execute(context.Background(), state)
	var stateErr *domain.StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "scores", stateErr.Key)

	_, err = NewSelectorUnit("")
	assert.ErrorIs(t, err, ErrEmptyUnitName)
}

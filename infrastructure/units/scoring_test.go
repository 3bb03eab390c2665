package units

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-hackq/internal/domain"
	"github.com/ahrav/go-hackq/internal/ports"
)

func TestExactMatchUnit_Score(t *testing.T) {
	emu, err := NewExactMatchUnit("exact")
	require.NoError(t, err)

	tests := []struct {
		name     string
		evidence []string
		variants []string
		want     domain.ScoreTable
	}{
		{
			name:     "counts across documents",
			evidence: []string{"basketball is played on a court basketball", "uno is a card game"},
			variants: []string{"Basketball", "Uno"},
			want:     domain.ScoreTable{"Basketball": 2, "Uno": 1},
		},
		{
			name:     "word bounded",
			evidence: []string{"unobtainium and unicorns"},
			variants: []string{"Uno"},
			want:     domain.ScoreTable{"Uno": 0},
		},
		{
			name:     "multi word variant",
			evidence: []string{"super mario kart on the super nintendo"},
			variants: []string{"Super Mario Kart", "Super"},
			want:     domain.ScoreTable{"Super Mario Kart": 1, "Super": 2},
		},
		{
			name:     "plurals are not stemmed",
			evidence: []string{"tennis courts"},
			variants: []string{"court"},
			want:     domain.ScoreTable{"court": 0},
		},
		{
			name:     "empty evidence keeps every variant",
			evidence: []string{"", ""},
			variants: []string{"A", "B"},
			want:     domain.ScoreTable{"A": 0, "B": 0},
		},
		{
			name:     "no variants",
			evidence: []string{"anything"},
			variants: nil,
			want:     domain.ScoreTable{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, emu.Score(tt.evidence, tt.variants, false))
			assert.Equal(t, tt.want, emu.Score(tt.evidence, tt.variants, true), "Polarity must not change counting.")
		})
	}
}

func TestKeywordOverlapUnit_Score(t *testing.T) {
	kou, err := NewKeywordOverlapUnit("overlap", defaultExtractor())
	require.NoError(t, err)

	tests := []struct {
		name     string
		evidence []string
		variants []string
		want     domain.ScoreTable
	}{
		{
			name:     "phrase and token keywords",
			evidence: []string{"mario kart racing is racing"},
			variants: []string{"Mario Kart racing"},
			want:     domain.ScoreTable{"Mario Kart racing": 3},
		},
		{
			name:     "stopwords ignored",
			evidence: []string{"the court of the king"},
			variants: []string{"the court"},
			want:     domain.ScoreTable{"the court": 1},
		},
		{
			name:     "variant without keywords scores zero",
			evidence: []string{"the the the"},
			variants: []string{"the"},
			want:     domain.ScoreTable{"the": 0},
		},
		{
			name:     "capitalized stopword choice is its own keyword",
			evidence: []string{"it is it"},
			variants: []string{"It"},
			want:     domain.ScoreTable{"It": 2},
		},
		{
			name:     "capitalized run stays one phrase",
			evidence: []string{"mario kart and super smash"},
			variants: []string{"Super Mario Kart"},
			want:     domain.ScoreTable{"Super Mario Kart": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kou.Score(tt.evidence, tt.variants, false))
		})
	}
}

func TestScoringUnits_Execute(t *testing.T) {
	emu, err := NewExactMatchUnit("exact")
	require.NoError(t, err)
	kou, err := NewKeywordOverlapUnit("overlap", defaultExtractor())
	require.NoError(t, err)

	q := newQuestion("Which of these games is played on a court?", "Basketball", "Uno")
	state := domain.With(domain.NewState(), domain.KeyQuestion, q)
	state = domain.With(state, domain.KeyEvidence, []domain.Document{
		{URL: "a", Text: "basketball basketball uno"},
		{URL: "b"},
	})

	for _, unit := range []interface {
		ports.Unit
		ports.ScoringMethod
	}{emu, kou} {
		t.Run(unit.Name(), func(t *testing.T) {
			next, err := unit.Execute(context.Background(), state)
			require.NoError(t, err)

			scores, ok := domain.Get(next, domain.KeyScores)
			require.True(t, ok)
			assert.Equal(t, domain.ScoreTable{"Basketball": 2, "Uno": 1}, scores)

			kind, ok := domain.Get(next, domain.KeyMethod)
			require.True(t, ok)
			assert.Equal(t, unit.Kind(), kind)
		})
	}
}

func TestScoringUnits_MissingState(t *testing.T) {
	emu, err := NewExactMatchUnit("exact")
	require.NoError(t, err)

	_, err = emu.Execute(context.Background(), domain.NewState())
	var stateErr *domain.StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "question", stateErr.Key)

	onlyQuestion := domain.With(domain.NewState(), domain.KeyQuestion, newQuestion("Q?", "A"))
	_, err = emu.Execute(context.Background(), onlyQuestion)
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "evidence", stateErr.Key)
}

func TestScoringUnits_Constructors(t *testing.T) {
	_, err := NewExactMatchUnit("")
	assert.ErrorIs(t, err, ErrEmptyUnitName)

	_, err = NewKeywordOverlapUnit("", defaultExtractor())
	assert.ErrorIs(t, err, ErrEmptyUnitName)

	_, err = NewKeywordOverlapUnit("overlap", nil)
	assert.ErrorIs(t, err, ErrMissingDependency)

	emu, err := NewExactMatchUnit("exact")
	require.NoError(t, err)
	assert.Equal(t, domain.MethodExactMatch, emu.Kind())
	assert.NoError(t, emu.Validate())

	kou, err := NewKeywordOverlapUnit("overlap", defaultExtractor())
	require.NoError(t, err)
	assert.Equal(t, domain.MethodKeywordOverlap, kou.Kind())
	assert.NoError(t, kou.Validate())
}

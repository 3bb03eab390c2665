package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolarityRules_Reverse(t *testing.T) {
	rules := DefaultPolarityRules()

	tests := []struct {
		name     string
		question string
		want     bool
	}{
		{"NOT marker", "Which of these is NOT a mammal?", true},
		{"NEVER marker", "Which of these has NEVER won a Grammy?", true},
		{"least marker", "Which planet has the least moons?", true},
		{"least is case insensitive", "LEAST populated state?", true},
		{"at least suppresses least", "At least how many moons does Jupiter have?", false},
		{"lowercase not is not a marker", "Which of these is not a fruit?", false},
		{"NOT inside a word", "Which NOTABLE author wrote Emma?", false},
		{"NOT followed by punctuation", "Which is NOT, in fact, a bird?", true},
		{"plain question", "Which of these games is played on a court?", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.Reverse(tt.question))
		})
	}
}

func TestPolarityRules_Extensible(t *testing.T) {
	rules := DefaultPolarityRules()
	rules.Markers = append(rules.Markers, "NEITHER")

	assert.True(t, rules.Reverse("NEITHER of these is a planet?"))
	assert.False(t, DefaultPolarityRules().Reverse("NEITHER of these is a planet?"))
}

func TestQuestion_Variants(t *testing.T) {
	q := NewQuestion("id", "Which country?", []Choice{
		{Text: "U.S.", Variants: []string{"US", "U S"}},
		{Text: "US", Variants: []string{"US"}},
		{Text: "Canada", Variants: []string{"Canada"}},
	}, DefaultPolarityRules())

	assert.Equal(t, []string{"US", "U S", "Canada"}, q.Variants())
	assert.Equal(t, [][]string{{"US", "U S"}, {"US"}, {"Canada"}}, q.VariantGroups())
	assert.Equal(t, "US", q.Choices[0].Canonical())
	assert.False(t, q.Reverse)
}

func TestChoice_CanonicalEmpty(t *testing.T) {
	assert.Equal(t, "", Choice{Text: "???"}.Canonical())
}

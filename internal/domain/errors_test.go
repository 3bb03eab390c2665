package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateError(t *testing.T) {
	err := NewStateError("selector", KeyScores)

	assert.Equal(t, "state error: unit=selector, key=scores, err=key not found", err.Error())
	assert.True(t, errors.Is(err, ErrKeyNotFound), "StateError should unwrap to ErrKeyNotFound")

	var stateErr *StateError
	assert.True(t, errors.As(error(err), &stateErr))
	assert.Equal(t, "scores", stateErr.Key)
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		messages []string
		wantMsg  string
	}{
		{
			name:     "single error",
			messages: []string{"question is empty"},
			wantMsg:  "validation error for question: question is empty",
		},
		{
			name:     "multiple errors",
			messages: []string{"question is empty", "no choices"},
			wantMsg:  "validation errors for question: [question is empty no choices]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError("question")
			assert.False(t, err.HasErrors())

			for _, m := range tt.messages {
				err.AddError(m)
			}

			assert.True(t, err.HasErrors())
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestParseMethodKind(t *testing.T) {
	kind, err := ParseMethodKind("keyword_overlap")
	assert.NoError(t, err)
	assert.Equal(t, MethodKeywordOverlap, kind)

	_, err = ParseMethodKind("semantic")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

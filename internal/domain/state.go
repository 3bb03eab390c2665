// Package domain contains pure, dependency-free domain models and types
// for the answer inference pipeline.
package domain

import (
	"fmt"
	"maps"
	"slices"
	"sort"
)

// Key represents a type-safe generic key for accessing values in State.
// The type parameter T ensures compile-time type safety when getting and
// setting values, eliminating the need for runtime type assertions.
type Key[T any] struct{ name string }

// NewKey creates a new Key with the specified name and type.
func NewKey[T any](name string) Key[T] { return Key[T]{name: name} }

// Name returns the string identifier of the key.
func (k Key[T]) Name() string { return k.name }

// Predefined state keys used by the pipeline units.
var (
	// KeyQuestion stores the question being answered, with its choices and
	// polarity already derived.
	KeyQuestion = Key[Question]{"question"}

	// KeyKeywords stores the ordered keywords extracted from the question.
	KeyKeywords = Key[[]string]{"keywords"}

	// KeyEvidence stores the evidence documents gathered for the question,
	// in search-rank order.
	KeyEvidence = Key[[]Document]{"evidence"}

	// KeyScores stores the variant score table of the most recent scoring
	// method.
	KeyScores = Key[ScoreTable]{"scores"}

	// KeyMethod stores the kind of the most recent scoring method.
	KeyMethod = Key[MethodKind]{"method"}

	// KeyResult stores the selection outcome of the most recent scoring
	// method.
	KeyResult = Key[Result]{"result"}
)

// State is an immutable bag of pipeline data passed between units.
// With returns a new State and never mutates the receiver. Values stored
// in a State must be treated as read-only by every unit; slices and maps
// are cloned on the way in so a caller cannot mutate them afterwards.
type State struct {
	data map[string]any
}

// NewState creates a new empty State.
func NewState() State {
	return State{data: make(map[string]any)}
}

// Get retrieves a value from the State with compile-time type safety.
// It reports whether the key exists and holds a value of type T.
func Get[T any](s State, key Key[T]) (T, bool) {
	var zero T
	value, exists := s.data[key.name]
	if !exists {
		return zero, false
	}
	val, ok := value.(T)
	return val, ok
}

// With creates a new State with the key set to value, leaving s unchanged.
//
// Example:
//
//	next := With(state, KeyKeywords, []string{"court", "games"})
func With[T any](s State, key Key[T], value T) State {
	newData := maps.Clone(s.data)
	if newData == nil {
		newData = make(map[string]any)
	}
	newData[key.name] = cloneValue(value)
	return State{data: newData}
}

// cloneValue copies the reference types the pipeline stores so values held
// by a State cannot be mutated through the caller's original.
func cloneValue(value any) any {
	switch v := value.(type) {
	case []string:
		return slices.Clone(v)
	case []Document:
		return slices.Clone(v)
	case ScoreTable:
		return v.Clone()
	default:
		return value
	}
}

// Keys returns the sorted names of all keys present in the State.
func (s State) Keys() []string {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String returns a string representation of the State for debugging purposes.
func (s State) String() string {
	return fmt.Sprintf("State%v", s.Keys())
}

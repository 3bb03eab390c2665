// Package ports defines the core interfaces that form the contract between
// the domain/application layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the system testable.
package ports

import (
	"context"

	"github.com/ahrav/go-hackq/internal/domain"
)

// Unit is one stage of the answer pipeline. It reads what it needs from
// State and returns a new State carrying its output.
// Units should be stateless and safe for concurrent execution.
type Unit interface {
	// Name returns a unique identifier for this unit, used in logs and spans.
	Name() string

	// Execute performs the unit's transformation on the provided State and
	// returns a new State. The input State must not be modified.
	// Errors are reserved for misuse, such as a missing state key; degraded
	// evidence is never an error.
	//
	// Example:
	//
	//	next, err := unit.Execute(ctx, state)
	//	if err != nil {
	//	    return fmt.Errorf("unit %s failed: %w", unit.Name(), err)
	//	}
	Execute(ctx context.Context, state domain.State) (domain.State, error)

	// Validate checks if the unit is properly configured and ready for
	// execution.
	Validate() error
}

// ScoringMethod assigns an occurrence score to every choice variant given a
// corpus of evidence texts. Implementations must not mutate their inputs.
type ScoringMethod interface {
	// Kind identifies the heuristic.
	Kind() domain.MethodKind

	// Score returns the score of every variant. Every variant in variants
	// appears in the returned table, with zero when it never occurs.
	// reverse does not change counting; it is passed so a method can report
	// which polarity it scored under.
	Score(evidence []string, variants []string, reverse bool) domain.ScoreTable
}

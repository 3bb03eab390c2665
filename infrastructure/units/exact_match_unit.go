package units

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-hackq/infrastructure/text"
	"github.com/ahrav/go-hackq/internal/domain"
	"github.com/ahrav/go-hackq/internal/ports"
)

var (
	_ ports.Unit          = (*ExactMatchUnit)(nil)
	_ ports.ScoringMethod = (*ExactMatchUnit)(nil)
)

// ExactMatchUnit scores each choice variant by how often it occurs in the
// evidence as a whole word or phrase. Evidence is lowercase, so variants
// are lowercased before counting.
//
// Concurrency: ExactMatchUnit is stateless and safe for concurrent
// execution.
type ExactMatchUnit struct {
	name   string
	tracer trace.Tracer
}

// NewExactMatchUnit creates a new ExactMatchUnit.
func NewExactMatchUnit(name string) (*ExactMatchUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	return &ExactMatchUnit{name: name, tracer: otel.Tracer("exact-match-unit")}, nil
}

// Name returns the unique identifier for this unit instance.
func (emu *ExactMatchUnit) Name() string { return emu.name }

// Kind implements ports.ScoringMethod.
func (emu *ExactMatchUnit) Kind() domain.MethodKind { return domain.MethodExactMatch }

// Score sums, over every evidence text, the word-bounded occurrences of
// each variant. reverse does not affect counting.
func (emu *ExactMatchUnit) Score(evidence []string, variants []string, _ bool) domain.ScoreTable {
	table := zeroTable(variants)
	needles := lowerAll(variants)
	for _, doc := range evidence {
		if doc == "" {
			continue
		}
		for i, v := range variants {
			table[v] += text.CountWord(doc, needles[i])
		}
	}
	return table
}

// Execute scores the question's variants against the evidence in state.
//
// State requirements:
//   - domain.KeyQuestion
//   - domain.KeyEvidence (may be empty)
//
// Writes domain.KeyScores and domain.KeyMethod.
func (emu *ExactMatchUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	return scoreState(ctx, emu.tracer, emu.name, emu, state)
}

// Validate verifies the unit is ready for execution.
func (emu *ExactMatchUnit) Validate() error {
	if emu.name == "" {
		return fmt.Errorf("exact match: %w", ErrEmptyUnitName)
	}
	return nil
}

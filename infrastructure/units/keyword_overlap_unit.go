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
	_ ports.Unit          = (*KeywordOverlapUnit)(nil)
	_ ports.ScoringMethod = (*KeywordOverlapUnit)(nil)
)

// KeywordOverlapUnit scores each choice variant by the occurrences of its
// own keywords in the evidence. It helps multi-word choices that pages
// rarely quote verbatim. A variant with no keywords scores zero.
//
// No stemming is applied, so "court" does not match "courts".
type KeywordOverlapUnit struct {
	name      string
	extractor *text.KeywordExtractor
	tracer    trace.Tracer
}

// NewKeywordOverlapUnit creates a KeywordOverlapUnit that splits variants
// with extractor.
func NewKeywordOverlapUnit(name string, extractor *text.KeywordExtractor) (*KeywordOverlapUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if extractor == nil {
		return nil, fmt.Errorf("%w: keyword extractor", ErrMissingDependency)
	}
	return &KeywordOverlapUnit{
		name:      name,
		extractor: extractor,
		tracer:    otel.Tracer("keyword-overlap-unit"),
	}, nil
}

// Name returns the unique identifier for this unit instance.
func (kou *KeywordOverlapUnit) Name() string { return kou.name }

// Kind implements ports.ScoringMethod.
func (kou *KeywordOverlapUnit) Kind() domain.MethodKind { return domain.MethodKeywordOverlap }

// Score sums, over every evidence text, the word-bounded occurrences of
// every keyword of each variant. Keywords are extracted without sentence
// handling, so a capitalized choice stays one phrase.
func (kou *KeywordOverlapUnit) Score(evidence []string, variants []string, _ bool) domain.ScoreTable {
	table := zeroTable(variants)
	keywords := make([][]string, len(variants))
	for i, v := range variants {
		keywords[i] = lowerAll(kou.extractor.Extract(v, false))
	}

	for _, doc := range evidence {
		if doc == "" {
			continue
		}
		for i, v := range variants {
			for _, kw := range keywords[i] {
				table[v] += text.CountWord(doc, kw)
			}
		}
	}
	return table
}

// Execute scores the question's variants against the evidence in state.
// It has the same state requirements as ExactMatchUnit.
func (kou *KeywordOverlapUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	return scoreState(ctx, kou.tracer, kou.name, kou, state)
}

// Validate verifies the unit is ready for execution.
func (kou *KeywordOverlapUnit) Validate() error {
	if kou.extractor == nil {
		return fmt.Errorf("%w: keyword extractor", ErrMissingDependency)
	}
	return nil
}

package units

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-hackq/infrastructure/text"
	"github.com/ahrav/go-hackq/internal/domain"
	"github.com/ahrav/go-hackq/internal/ports"
)

var _ ports.Unit = (*KeywordUnit)(nil)

// KeywordUnit extracts the question's keywords, honoring sentence
// boundaries, and stores them under domain.KeyKeywords.
type KeywordUnit struct {
	name      string
	extractor *text.KeywordExtractor
	tracer    trace.Tracer
}

// NewKeywordUnit creates a KeywordUnit backed by extractor.
func NewKeywordUnit(name string, extractor *text.KeywordExtractor) (*KeywordUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if extractor == nil {
		return nil, fmt.Errorf("%w: keyword extractor", ErrMissingDependency)
	}
	return &KeywordUnit{name: name, extractor: extractor, tracer: otel.Tracer("keyword-unit")}, nil
}

// Name returns the unique identifier for this unit instance.
func (ku *KeywordUnit) Name() string { return ku.name }

// Execute reads domain.KeyQuestion and writes domain.KeyKeywords.
// A question with no extractable content yields an empty keyword list.
func (ku *KeywordUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	_, span := ku.tracer.Start(ctx, "KeywordUnit.Execute",
		trace.WithAttributes(
			attribute.String("unit.type", "keywords"),
			attribute.String("unit.id", ku.name),
		),
	)
	defer span.End()

	q, ok := domain.Get(state, domain.KeyQuestion)
	if !ok {
		err := domain.NewStateError(ku.name, domain.KeyQuestion)
		span.RecordError(err)
		return state, err
	}

	keywords := ku.extractor.Extract(q.Text, true)
	span.SetAttributes(attribute.StringSlice("keywords", keywords))

	return domain.With(state, domain.KeyKeywords, keywords), nil
}

// Validate verifies the unit is ready for execution.
func (ku *KeywordUnit) Validate() error {
	if ku.extractor == nil {
		return fmt.Errorf("%w: keyword extractor", ErrMissingDependency)
	}
	return nil
}

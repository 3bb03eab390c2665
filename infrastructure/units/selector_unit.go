package units

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-hackq/internal/domain"
	"github.com/ahrav/go-hackq/internal/ports"
)

var _ ports.Unit = (*SelectorUnit)(nil)

// SelectorUnit turns the latest score table into a Result. Variant scores
// are summed per choice, the best is the maximum or, for a reversed
// question, the minimum, and the unit declines when every choice scored
// zero or the best value is shared.
type SelectorUnit struct {
	name   string
	tracer trace.Tracer
}

// NewSelectorUnit creates a SelectorUnit.
func NewSelectorUnit(name string) (*SelectorUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	return &SelectorUnit{name: name, tracer: otel.Tracer("selector-unit")}, nil
}

// Name returns the unique identifier for this unit instance.
func (su *SelectorUnit) Name() string { return su.name }

// Execute reads domain.KeyQuestion, domain.KeyScores and domain.KeyMethod
// and writes domain.KeyResult. Declining is a normal Result, not an error.
func (su *SelectorUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	_, span := su.tracer.Start(ctx, "SelectorUnit.Execute",
		trace.WithAttributes(
			attribute.String("unit.type", "selector"),
			attribute.String("unit.id", su.name),
		),
	)
	defer span.End()

	q, ok := domain.Get(state, domain.KeyQuestion)
	if !ok {
		err := domain.NewStateError(su.name, domain.KeyQuestion)
		span.RecordError(err)
		return state, err
	}
	scores, ok := domain.Get(state, domain.KeyScores)
	if !ok {
		err := domain.NewStateError(su.name, domain.KeyScores)
		span.RecordError(err)
		return state, err
	}
	method, _ := domain.Get(state, domain.KeyMethod)

	sel := domain.SelectBest(scores, q.VariantGroups(), q.Reverse)
	result := domain.Result{
		Method: method,
		Choice: sel.Index,
		Scores: sel.Merged,
		Reason: sel.Reason,
	}
	if sel.Index >= 0 {
		c := q.Choices[sel.Index]
		result.Answer = c.Canonical()
		if result.Answer == "" {
			result.Answer = c.Text
		}
	}

	span.SetAttributes(
		attribute.Int("selection.choice", result.Choice),
		attribute.Int("selection.best", sel.Best),
		attribute.String("selection.reason", string(sel.Reason)),
		attribute.Bool("selection.reverse", q.Reverse),
	)

	return domain.With(state, domain.KeyResult, result), nil
}

// Validate verifies the unit is ready for execution.
func (su *SelectorUnit) Validate() error { return nil }

package units

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-hackq/internal/domain"
	"github.com/ahrav/go-hackq/internal/ports"
)

// scoreState runs method over the evidence and variants held in state and
// stores the table under domain.KeyScores and the method kind under
// domain.KeyMethod. Both the question and the evidence must be present.
func scoreState(
	ctx context.Context,
	tracer trace.Tracer,
	unit string,
	method ports.ScoringMethod,
	state domain.State,
) (domain.State, error) {
	_, span := tracer.Start(ctx, string(method.Kind())+".Execute",
		trace.WithAttributes(
			attribute.String("unit.type", string(method.Kind())),
			attribute.String("unit.id", unit),
		),
	)
	defer span.End()

	start := time.Now()

	q, ok := domain.Get(state, domain.KeyQuestion)
	if !ok {
		err := domain.NewStateError(unit, domain.KeyQuestion)
		span.RecordError(err)
		return state, err
	}
	docs, ok := domain.Get(state, domain.KeyEvidence)
	if !ok {
		err := domain.NewStateError(unit, domain.KeyEvidence)
		span.RecordError(err)
		return state, err
	}

	variants := q.Variants()
	table := method.Score(domain.Texts(docs), variants, q.Reverse)

	span.SetAttributes(
		attribute.Int("eval.variants", len(variants)),
		attribute.Int("eval.documents", len(docs)),
		attribute.Bool("eval.reverse", q.Reverse),
		attribute.Int64("eval.latency_ms", time.Since(start).Milliseconds()),
	)

	next := domain.With(state, domain.KeyScores, table)
	return domain.With(next, domain.KeyMethod, method.Kind()), nil
}

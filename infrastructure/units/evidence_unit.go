package units

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-hackq/internal/domain"
	"github.com/ahrav/go-hackq/internal/ports"
)

var _ ports.Unit = (*EvidenceUnit)(nil)

// Gatherer produces evidence documents for a query. Failures degrade to
// fewer or empty documents and are never returned.
type Gatherer interface {
	Gather(ctx context.Context, query string, n int) []domain.Document
}

// EvidenceConfig configures an EvidenceUnit.
type EvidenceConfig struct {
	// NumSources is how many search results are fetched per question.
	NumSources int `yaml:"num_sources" json:"num_sources" validate:"min=1,max=50"`
}

// DefaultEvidenceConfig returns five sources per question.
func DefaultEvidenceConfig() EvidenceConfig { return EvidenceConfig{NumSources: 5} }

// EvidenceUnit searches for the question and stores the fetched pages
// under domain.KeyEvidence in search-rank order.
//
// The query is the question's keywords joined by spaces, or the raw
// question when no keywords were extracted.
type EvidenceUnit struct {
	name     string
	gatherer Gatherer
	config   EvidenceConfig
	tracer   trace.Tracer
}

// NewEvidenceUnit creates an EvidenceUnit.
func NewEvidenceUnit(name string, gatherer Gatherer, config EvidenceConfig) (*EvidenceUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if gatherer == nil {
		return nil, fmt.Errorf("%w: gatherer", ErrMissingDependency)
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &EvidenceUnit{
		name:     name,
		gatherer: gatherer,
		config:   config,
		tracer:   otel.Tracer("evidence-unit"),
	}, nil
}

// Name returns the unique identifier for this unit instance.
func (eu *EvidenceUnit) Name() string { return eu.name }

// Query builds the search query for q from its keywords.
func Query(q domain.Question, keywords []string) string {
	if query := strings.TrimSpace(strings.Join(keywords, " ")); query != "" {
		return query
	}
	return q.Text
}

// Execute reads domain.KeyQuestion and, when present, domain.KeyKeywords,
// and writes domain.KeyEvidence.
func (eu *EvidenceUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	ctx, span := eu.tracer.Start(ctx, "EvidenceUnit.Execute",
		trace.WithAttributes(
			attribute.String("unit.type", "evidence"),
			attribute.String("unit.id", eu.name),
			attribute.Int("config.num_sources", eu.config.NumSources),
		),
	)
	defer span.End()

	q, ok := domain.Get(state, domain.KeyQuestion)
	if !ok {
		err := domain.NewStateError(eu.name, domain.KeyQuestion)
		span.RecordError(err)
		return state, err
	}
	keywords, _ := domain.Get(state, domain.KeyKeywords)

	query := Query(q, keywords)
	docs := eu.gatherer.Gather(ctx, query, eu.config.NumSources)
	if docs == nil {
		docs = []domain.Document{}
	}

	nonEmpty := 0
	for _, d := range docs {
		if !d.Empty() {
			nonEmpty++
		}
	}
	span.SetAttributes(
		attribute.String("search.query", query),
		attribute.Int("evidence.documents", len(docs)),
		attribute.Int("evidence.non_empty", nonEmpty),
	)

	return domain.With(state, domain.KeyEvidence, docs), nil
}

// Validate verifies the unit is properly configured.
func (eu *EvidenceUnit) Validate() error {
	if err := validate.Struct(eu.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

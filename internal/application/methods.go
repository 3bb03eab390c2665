package application

import (
	"fmt"

	"github.com/ahrav/go-hackq/infrastructure/text"
	"github.com/ahrav/go-hackq/infrastructure/units"
	"github.com/ahrav/go-hackq/internal/domain"
	"github.com/ahrav/go-hackq/internal/ports"
)

// ScoringUnit is a scoring method that also runs as a pipeline unit.
type ScoringUnit interface {
	ports.Unit
	ports.ScoringMethod
}

// NewScoringMethod builds the scoring unit for kind. The set of kinds is
// closed; adding a heuristic means adding a MethodKind and a case here.
func NewScoringMethod(kind domain.MethodKind, extractor *text.KeywordExtractor) (ScoringUnit, error) {
	var (
		unit ScoringUnit
		err  error
	)
	switch kind {
	case domain.MethodExactMatch:
		unit, err = units.NewExactMatchUnit(string(kind))
	case domain.MethodKeywordOverlap:
		unit, err = units.NewKeywordOverlapUnit(string(kind), extractor)
	default:
		return nil, fmt.Errorf("%w: unknown scoring method %q", domain.ErrInvalidConfiguration, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s method: %w", kind, err)
	}
	return unit, nil
}

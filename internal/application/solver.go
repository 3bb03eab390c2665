package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ahrav/go-hackq/infrastructure/text"
	"github.com/ahrav/go-hackq/infrastructure/units"
	"github.com/ahrav/go-hackq/internal/domain"
	"github.com/ahrav/go-hackq/internal/ports"
)

// Answer is everything the Solver produced for one question.
type Answer struct {
	// Question is the question as answered, with its ID and polarity.
	Question domain.Question

	// Keywords are the keywords the search query was built from.
	Keywords []string

	// Documents is the number of evidence documents, Empty how many of
	// them carried no text.
	Documents int
	Empty     int

	// Results holds one result per configured method, in configured order.
	Results []domain.Result

	Elapsed time.Duration
}

// Solver answers multiple-choice questions from web evidence.
// It is safe for concurrent use; each call builds its own State.
type Solver struct {
	polarity domain.PolarityRules
	keywords ports.Unit
	evidence ports.Unit
	methods  []ScoringUnit
	selector ports.Unit
	metrics  ports.MetricsCollector
	logger   *slog.Logger
}

// NewSolver builds a Solver running cfg.Methods over evidence from
// gatherer. A nil metrics collector discards metrics and a nil logger
// uses slog.Default().
func NewSolver(cfg Config, gatherer units.Gatherer, metrics ports.MetricsCollector, logger *slog.Logger) (*Solver, error) {
	if gatherer == nil {
		return nil, errors.New("gatherer is required")
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	extractor := text.NewKeywordExtractor(cfg.Keywords.KeywordConfig())

	keywordUnit, err := units.NewKeywordUnit("keywords", extractor)
	if err != nil {
		return nil, err
	}
	evidenceUnit, err := units.NewEvidenceUnit("evidence", gatherer, cfg.Evidence)
	if err != nil {
		return nil, err
	}
	selector, err := units.NewSelectorUnit("selector")
	if err != nil {
		return nil, err
	}

	if len(cfg.Methods) == 0 {
		return nil, fmt.Errorf("%w: no scoring methods", domain.ErrInvalidConfiguration)
	}
	methods := make([]ScoringUnit, 0, len(cfg.Methods))
	for _, kind := range cfg.Methods {
		m, err := NewScoringMethod(kind, extractor)
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}

	return &Solver{
		polarity: cfg.Polarity,
		keywords: keywordUnit,
		evidence: evidenceUnit,
		methods:  methods,
		selector: selector,
		metrics:  metrics,
		logger:   logger,
	}, nil
}

// Methods returns the configured method kinds in reporting order.
func (s *Solver) Methods() []domain.MethodKind {
	kinds := make([]domain.MethodKind, len(s.methods))
	for i, m := range s.methods {
		kinds[i] = m.Kind()
	}
	return kinds
}

// NewQuestion builds the domain question for raw question and choice
// texts. Both are transliterated to ASCII so they line up with the
// evidence; polarity is read from the transliterated text.
func (s *Solver) NewQuestion(question string, choices []string) domain.Question {
	cs := make([]domain.Choice, len(choices))
	for i, c := range choices {
		cs[i] = domain.Choice{Text: c, Variants: text.ChoiceVariants(c)}
	}
	return domain.NewQuestion(uuid.NewString(), text.Transliterate(question), cs, s.polarity)
}

// AnswerQuestion returns one result per configured method. Degraded
// evidence is not an error: it shows up as results without an answer.
func (s *Solver) AnswerQuestion(ctx context.Context, question string, choices []string) ([]domain.Result, error) {
	a, err := s.Answer(ctx, question, choices)
	if err != nil {
		return nil, err
	}
	return a.Results, nil
}

// Answer runs the full pipeline for one question.
func (s *Solver) Answer(ctx context.Context, question string, choices []string) (Answer, error) {
	start := time.Now()
	q := s.NewQuestion(question, choices)
	logger := s.logger.With("question_id", q.ID)
	logger.Debug("question received", "question", q.Text, "choices", len(q.Choices), "reverse", q.Reverse)

	state := domain.With(domain.NewState(), domain.KeyQuestion, q)

	state, err := s.keywords.Execute(ctx, state)
	if err != nil {
		return Answer{}, fmt.Errorf("keyword extraction failed: %w", err)
	}
	keywords, _ := domain.Get(state, domain.KeyKeywords)

	searchStart := time.Now()
	state, err = s.evidence.Execute(ctx, state)
	if err != nil {
		return Answer{}, fmt.Errorf("evidence gathering failed: %w", err)
	}
	docs, _ := domain.Get(state, domain.KeyEvidence)
	empty := 0
	for _, d := range docs {
		if d.Empty() {
			empty++
		}
	}
	logger.Info("evidence gathered",
		"query", units.Query(q, keywords),
		"documents", len(docs),
		"empty", empty,
		"elapsed", time.Since(searchStart),
	)

	results := make([]domain.Result, 0, len(s.methods))
	for _, m := range s.methods {
		res, err := s.runMethod(ctx, logger, m, state)
		if err != nil {
			return Answer{}, err
		}
		results = append(results, res)
	}

	elapsed := time.Since(start)
	s.metrics.RecordHistogram(ports.MetricQuestionDuration, elapsed.Seconds(),
		map[string]string{"status": "success"})
	logger.Info("question answered", "elapsed", elapsed, "methods", len(results))

	return Answer{
		Question:  q,
		Keywords:  keywords,
		Documents: len(docs),
		Empty:     empty,
		Results:   results,
		Elapsed:   elapsed,
	}, nil
}

func (s *Solver) runMethod(ctx context.Context, logger *slog.Logger, m ScoringUnit, state domain.State) (domain.Result, error) {
	scored, err := m.Execute(ctx, state)
	if err != nil {
		return domain.Result{}, fmt.Errorf("%s scoring failed: %w", m.Kind(), err)
	}
	if scores, ok := domain.Get(scored, domain.KeyScores); ok {
		logger.Debug("scores", "method", m.Kind(), "table", scores)
	}

	selected, err := s.selector.Execute(ctx, scored)
	if err != nil {
		return domain.Result{}, fmt.Errorf("%s selection failed: %w", m.Kind(), err)
	}
	res, ok := domain.Get(selected, domain.KeyResult)
	if !ok {
		return domain.Result{}, domain.NewStateError(s.selector.Name(), domain.KeyResult)
	}

	outcome := "answered"
	if !res.Confident() {
		outcome = string(res.Reason)
	}
	s.metrics.RecordCounter(ports.MetricAnswerTotal, 1,
		map[string]string{"method": string(res.Method), "outcome": outcome})

	logger.Info("method result",
		"method", res.Method,
		"answer", res.Answer,
		"choice", res.Choice,
		"scores", res.Scores,
		"reason", res.Reason,
	)
	return res, nil
}

type nopMetrics struct{}

func (nopMetrics) RecordLatency(string, time.Duration, map[string]string) {}
func (nopMetrics) RecordCounter(string, float64, map[string]string)       {}
func (nopMetrics) RecordGauge(string, float64, map[string]string)         {}
func (nopMetrics) RecordHistogram(string, float64, map[string]string)     {}

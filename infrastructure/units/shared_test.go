package units

import (
	"github.com/ahrav/go-hackq/infrastructure/text"
	"github.com/ahrav/go-hackq/internal/domain"
)

// newQuestion builds a question whose choices carry the normalized
// variants used in production.
func newQuestion(q string, choices ...string) domain.Question {
	cs := make([]domain.Choice, len(choices))
	for i, c := range choices {
		cs[i] = domain.Choice{Text: c, Variants: text.ChoiceVariants(c)}
	}
	return domain.NewQuestion("q-test", q, cs, domain.DefaultPolarityRules())
}

func defaultExtractor() *text.KeywordExtractor {
	return text.NewKeywordExtractor(text.DefaultKeywordConfig())
}

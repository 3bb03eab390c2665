package units

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-hackq/internal/domain"
)

type stubGatherer struct {
	mu      sync.Mutex
	docs    []domain.Document
	queries []string
	ns      []int
}

func (s *stubGatherer) Gather(_ context.Context, query string, n int) []domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, query)
	s.ns = append(s.ns, n)
	return s.docs
}

func TestNewEvidenceUnit(t *testing.T) {
	g := &stubGatherer{}

	_, err := NewEvidenceUnit("", g, DefaultEvidenceConfig())
	assert.ErrorIs(t, err, ErrEmptyUnitName)

	_, err = NewEvidenceUnit("evidence", nil, DefaultEvidenceConfig())
	assert.ErrorIs(t, err, ErrMissingDependency)

	_, err = NewEvidenceUnit("evidence", g, EvidenceConfig{NumSources: 0})
	assert.Error(t, err)

	eu, err := NewEvidenceUnit("evidence", g, DefaultEvidenceConfig())
	require.NoError(t, err)
	assert.Equal(t, "evidence", eu.Name())
	assert.NoError(t, eu.Validate())
}

func TestQuery(t *testing.T) {
	q := newQuestion("Which is it?", "A", "B")

	assert.Equal(t, "games played court", Query(q, []string{"games", "played", "court"}))
	assert.Equal(t, "Which is it?", Query(q, nil), "No keywords should fall back to the raw question.")
	assert.Equal(t, "Which is it?", Query(q, []string{""}))
}

func TestEvidenceUnit_Execute(t *testing.T) {
	g := &stubGatherer{docs: []domain.Document{
		{URL: "https://a.example", Text: "basketball court"},
		{URL: "https://b.example"},
	}}
	eu, err := NewEvidenceUnit("evidence", g, EvidenceConfig{NumSources: 2})
	require.NoError(t, err)

	state := domain.With(domain.NewState(), domain.KeyQuestion, newQuestion("Which of these games is played on a court?", "A"))
	state = domain.With(state, domain.KeyKeywords, []string{"games", "played", "court"})

	next, err := eu.Execute(context.Background(), state)
	require.NoError(t, err)

	docs, ok := domain.Get(next, domain.KeyEvidence)
	require.True(t, ok)
	assert.Equal(t, g.docs, docs)
	assert.Equal(t, []string{"games played court"}, g.queries)
	assert.Equal(t, []int{2}, g.ns)
}

func TestEvidenceUnit_NoDocuments(t *testing.T) {
	eu, err := NewEvidenceUnit("evidence", &stubGatherer{}, DefaultEvidenceConfig())
	require.NoError(t, err)

	state := domain.With(domain.NewState(), domain.KeyQuestion, newQuestion("Anything?", "A"))
	next, err := eu.Execute(context.Background(), state)
	require.NoError(t, err)

	docs, ok := domain.Get(next, domain.KeyEvidence)
	require.True(t, ok)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestEvidenceUnit_MissingQuestion(t *testing.T) {
	eu, err := NewEvidenceUnit("evidence", &stubGatherer{}, DefaultEvidenceConfig())
	require.NoError(t, err)

	_, err = eu.Execute(context.Background(), domain.NewState())
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

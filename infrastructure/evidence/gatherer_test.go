package evidence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-hackq/internal/testutils"
)

func newTestGatherer(t *testing.T, s *testutils.MockSearcher, f *testutils.MockFetcher, timeout time.Duration) *Gatherer {
	t.Helper()
	g, err := NewGatherer(s, f, GathererConfig{FetchTimeout: timeout}, nil)
	require.NoError(t, err)
	return g
}

func TestNewGatherer_Validation(t *testing.T) {
	s := &testutils.MockSearcher{}
	f := testutils.NewMockFetcher(nil)

	_, err := NewGatherer(nil, f, GathererConfig{FetchTimeout: time.Second}, nil)
	assert.Error(t, err)

	_, err = NewGatherer(s, nil, GathererConfig{FetchTimeout: time.Second}, nil)
	assert.Error(t, err)

	_, err = NewGatherer(s, f, GathererConfig{}, nil)
	assert.Error(t, err, "zero fetch timeout must be rejected")

	_, err = NewGatherer(s, f, GathererConfig{FetchTimeout: time.Second, MaxConcurrency: -1}, nil)
	assert.Error(t, err)
}

func TestGatherer_FetchAllPreservesOrder(t *testing.T) {
	f := &testutils.MockFetcher{Pages: map[string]testutils.MockPage{
		"https://a.test": {Body: "<p>Alpha</p>", Delay: 60 * time.Millisecond},
		"https://b.test": {Body: "<p>Bravo</p>", Delay: 20 * time.Millisecond},
		"https://c.test": {Body: "<p>Charlie</p>"},
	}}
	g := newTestGatherer(t, &testutils.MockSearcher{}, f, time.Second)

	docs := g.FetchAll(context.Background(), []string{"https://a.test", "https://b.test", "https://c.test"})

	require.Len(t, docs, 3)
	assert.Equal(t, "https://a.test", docs[0].URL)
	assert.Equal(t, "alpha", docs[0].Text)
	assert.Equal(t, "bravo", docs[1].Text)
	assert.Equal(t, "charlie", docs[2].Text)
}

func TestGatherer_PartialFailureIsBoundedByOneTimeout(t *testing.T) {
	const timeout = 100 * time.Millisecond
	f := &testutils.MockFetcher{Pages: map[string]testutils.MockPage{
		"https://slow-1.test": {Body: "<p>late</p>", Delay: 5 * time.Second},
		"https://ok.test":     {Body: "<p>Basketball court</p>"},
		"https://slow-2.test": {Body: "<p>late</p>", Delay: 5 * time.Second},
		"https://err.test":    {Err: errors.New("connection reset")},
	}}
	g := newTestGatherer(t, &testutils.MockSearcher{}, f, timeout)

	urls := []string{"https://slow-1.test", "https://ok.test", "https://slow-2.test", "https://err.test"}
	start := time.Now()
	docs := g.FetchAll(context.Background(), urls)
	elapsed := time.Since(start)

	require.Len(t, docs, len(urls))
	assert.True(t, docs[0].Empty())
	assert.Equal(t, "basketball court", docs[1].Text)
	assert.True(t, docs[2].Empty())
	assert.True(t, docs[3].Empty())
	for i, d := range docs {
		assert.Equal(t, urls[i], d.URL)
	}
	assert.Less(t, elapsed, 2*timeout+200*time.Millisecond, "fetches must run concurrently")
}

func TestGatherer_Gather(t *testing.T) {
	s := &testutils.MockSearcher{URLs: []string{
		"https://a.test", "https://a.test", "", "https://b.test", "https://c.test",
	}}
	f := testutils.NewMockFetcher(map[string]string{
		"https://a.test": testutils.HTMLPage("A", "Basketball"),
		"https://b.test": testutils.HTMLPage("B", "Uno"),
		"https://c.test": testutils.HTMLPage("C", "Kart"),
	})
	g := newTestGatherer(t, s, f, time.Second)

	docs := g.Gather(context.Background(), "games court", 4)

	require.Len(t, docs, 2, "duplicates and blanks are dropped after truncation to n")
	assert.Equal(t, "basketball", docs[0].Text)
	assert.Equal(t, "uno", docs[1].Text)
	assert.Equal(t, []string{"games court"}, s.Queries())
	assert.Equal(t, 1, f.Calls("https://a.test"))
}

func TestGatherer_SearchFailureYieldsNoEvidence(t *testing.T) {
	s := &testutils.MockSearcher{Err: errors.New("403 forbidden")}
	f := testutils.NewMockFetcher(nil)
	g := newTestGatherer(t, s, f, time.Second)

	docs := g.Gather(context.Background(), "anything", 5)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestGatherer_NonPositiveSourcesSkipsSearch(t *testing.T) {
	s := &testutils.MockSearcher{URLs: []string{"https://a.test"}}
	g := newTestGatherer(t, s, testutils.NewMockFetcher(nil), time.Second)

	assert.Empty(t, g.Gather(context.Background(), "q", 0))
	assert.Empty(t, s.Queries())
}

func TestGatherer_MaxConcurrency(t *testing.T) {
	f := testutils.NewMockFetcher(map[string]string{
		"https://a.test": "a", "https://b.test": "b", "https://c.test": "c",
	})
	g, err := NewGatherer(&testutils.MockSearcher{}, f, GathererConfig{FetchTimeout: time.Second, MaxConcurrency: 1}, nil)
	require.NoError(t, err)

	docs := g.FetchAll(context.Background(), []string{"https://a.test", "https://b.test", "https://c.test"})
	assert.Equal(t, []string{"a", "b", "c"}, []string{docs[0].Text, docs[1].Text, docs[2].Text})
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, dedupe([]string{"a", "", "a", "b", "c"}, 2))
	assert.Equal(t, []string{}, dedupe(nil, 3))
}

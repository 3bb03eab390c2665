package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-hackq/internal/application"
	"github.com/ahrav/go-hackq/internal/domain"
)

func TestParseFlags(t *testing.T) {
	var stderr bytes.Buffer

	opts, err := parseFlags([]string{"-q", "Which?", "-choices", "A|B", "-log-level", "debug"}, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "Which?", opts.question)
	assert.Equal(t, "A|B", opts.choices)
	assert.Equal(t, ".env", opts.envPath)
	assert.Equal(t, "debug", opts.logLevel)

	opts, err = parseFlags([]string{"-serve"}, &stderr)
	require.NoError(t, err)
	assert.True(t, opts.serve)

	_, err = parseFlags([]string{"-q", "Which?"}, &stderr)
	assert.Error(t, err)

	_, err = parseFlags([]string{"-bogus"}, &stderr)
	assert.Error(t, err)
}

func TestSplitChoices(t *testing.T) {
	assert.Equal(t, []string{"Basketball", "Super Mario Kart", "Uno"}, splitChoices("Basketball| Super Mario Kart |Uno"))
	assert.Equal(t, []string{"A"}, splitChoices("A||  |"))
	assert.Nil(t, splitChoices(""))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := newLogger(&buf, "warn", "json")
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	_, err = newLogger(&buf, "loud", "text")
	assert.Error(t, err)
	_, err = newLogger(&buf, "info", "xml")
	assert.Error(t, err)
}

func TestPrintAnswer(t *testing.T) {
	var out bytes.Buffer
	printAnswer(&out, application.Answer{
		Question: domain.Question{Reverse: true},
		Results: []domain.Result{
			{Method: domain.MethodExactMatch, Answer: "Uno", Choice: 2, Scores: []int{3, 2, 1}},
			{Method: domain.MethodKeywordOverlap, Choice: -1, Scores: []int{1, 1, 1}, Reason: domain.RejectTie},
		},
	})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "negated")
	assert.Contains(t, lines[1], "exact_match")
	assert.Contains(t, lines[1], "Uno")
	assert.Contains(t, lines[2], "no confident answer (tie)")
}

func TestRun_OneShot(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<a class="result__a" href="%s/page">x</a>`, srv.URL)
	})
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>Basketball is played on a court. Basketball!</p></body></html>")
	})

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "hackq.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`
search:
  provider: html
  url_template: %s/search?q={query}
cache:
  backend: none
`, srv.URL)), 0o600))

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-config", cfgPath,
		"-env", filepath.Join(dir, "missing.env"),
		"-q", "Which of these games is played on a court?",
		"-choices", "Basketball|Uno",
		"-log-level", "error",
	}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	assert.Contains(t, stdout.String(), "exact_match")
	assert.Contains(t, stdout.String(), "Basketball")
	assert.NotContains(t, stdout.String(), "no confident answer")
}

func TestRun_BadConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-config", filepath.Join(t.TempDir(), "nope.yaml"),
		"-q", "Q?", "-choices", "A|B",
	}, &stdout, &stderr)
	assert.Error(t, err)
}

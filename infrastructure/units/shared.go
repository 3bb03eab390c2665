// Package units provides the pipeline stages that implement ports.Unit
// for the answer engine: keyword extraction, evidence gathering, the
// scoring methods and answer selection.
package units

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ahrav/go-hackq/internal/domain"
)

// Common errors returned by units.
var (
	// ErrEmptyUnitName is returned when attempting to create a unit with an empty name.
	ErrEmptyUnitName = errors.New("unit name cannot be empty")

	// ErrMissingDependency is returned when a unit is built without a
	// collaborator it needs.
	ErrMissingDependency = errors.New("missing unit dependency")
)

// Package-level validator instance for configuration validation.
var validate = validator.New()

// lowerAll returns lowercased copies of ss.
func lowerAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToLower(s)
	}
	return out
}

// zeroTable returns a table with every variant at zero.
func zeroTable(variants []string) domain.ScoreTable {
	t := make(domain.ScoreTable, len(variants))
	for _, v := range variants {
		t[v] = 0
	}
	return t
}

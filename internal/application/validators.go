package application

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/ahrav/go-hackq/infrastructure/evidence"
	"github.com/ahrav/go-hackq/internal/domain"
)

var (
	validatorOnce sync.Once
	configValid   *validator.Validate
	validatorErr  error
)

// configValidator returns the package validator with the custom
// validations registered.
func configValidator() (*validator.Validate, error) {
	validatorOnce.Do(func() {
		v := validator.New()
		if err := RegisterConfigValidators(v); err != nil {
			validatorErr = err
			return
		}
		configValid = v
	})
	return configValid, validatorErr
}

// RegisterConfigValidators registers the custom validations used in
// Config struct tags with v.
func RegisterConfigValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("methodkind", validateMethodKind); err != nil {
		return fmt.Errorf("failed to register methodkind validator: %w", err)
	}
	return nil
}

// validateMethodKind accepts only the supported scoring method kinds.
func validateMethodKind(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	_, err := domain.ParseMethodKind(fl.Field().String())
	return err == nil
}

// ValidateConfig checks struct constraints and the cross-field rules tags
// cannot express. All problems are reported in one domain.ValidationError.
func ValidateConfig(cfg Config) error {
	v, err := configValidator()
	if err != nil {
		return err
	}

	verr := domain.NewValidationError("config")
	if err := v.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("config validation failed: %w", err)
		}
		for _, fe := range fieldErrs {
			verr.AddError(describeFieldError(fe))
		}
	}

	if !slices.Contains(evidence.Providers(), cfg.Search.Provider) {
		verr.AddError(fmt.Sprintf("search.provider: unknown provider %q (have %s)",
			cfg.Search.Provider, strings.Join(evidence.Providers(), ", ")))
	}
	if cfg.Search.Provider == "google_cse" {
		if cfg.Search.APIKey == "" {
			verr.AddError("search: google_cse requires " + EnvGoogleAPIKey)
		}
		if cfg.Search.EngineID == "" {
			verr.AddError("search: google_cse requires " + EnvGoogleCSEID)
		}
	}
	if cfg.Search.RatePerSecond > 0 && cfg.Search.Burst == 0 {
		verr.AddError("search.burst: must be positive when rate_per_second is set")
	}
	if cfg.Search.BreakerFailures > 0 && cfg.Search.BreakerCooldown == 0 {
		verr.AddError("search.breaker_cooldown: must be positive when breaker_failures is set")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// describeFieldError renders a field error without the Config prefix,
// e.g. "Search.Timeout failed on gt".
func describeFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	if fe.Param() != "" {
		return fmt.Sprintf("%s failed on %s=%s", field, fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s failed on %s", field, fe.Tag())
}

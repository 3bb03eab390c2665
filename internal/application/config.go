// Package application wires the answer pipeline together: configuration,
// the evidence client chain, the scoring methods and the Solver that
// answers one question per call.
package application

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-hackq/infrastructure/evidence"
	"github.com/ahrav/go-hackq/infrastructure/text"
	"github.com/ahrav/go-hackq/infrastructure/units"
	"github.com/ahrav/go-hackq/internal/domain"
	"github.com/ahrav/go-hackq/internal/ports"
)

// Environment variables read by ApplyEnv.
const (
	EnvGoogleAPIKey  = "GOOGLE_API_KEY"
	EnvGoogleCSEID   = "GOOGLE_CSE_ID"
	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvPort          = "HACKQ_PORT"
)

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config is the complete configuration of the answer engine.
// Secrets never come from YAML; ApplyEnv fills them in.
type Config struct {
	// Methods lists the scoring methods to run, in reporting order.
	Methods []domain.MethodKind `yaml:"methods" validate:"required,min=1,unique,dive,methodkind"`

	// Polarity decides which questions ask for the least associated choice.
	Polarity domain.PolarityRules `yaml:"polarity"`

	Keywords KeywordsConfig          `yaml:"keywords"`
	Evidence units.EvidenceConfig    `yaml:"evidence"`
	Gatherer evidence.GathererConfig `yaml:"gatherer"`
	Fetcher  evidence.FetcherConfig  `yaml:"fetcher"`

	// FetchLimit throttles page fetches across all questions.
	FetchLimit RateLimitConfig `yaml:"fetch_limit"`

	Search SearchConfig `yaml:"search"`
	Cache  CacheConfig  `yaml:"cache"`
	Server ServerConfig `yaml:"server"`
}

// KeywordsConfig extends the default English stopword list.
type KeywordsConfig struct {
	// ExtraStopwords are dropped in addition to the defaults.
	ExtraStopwords []string `yaml:"extra_stopwords" validate:"dive,required"`

	// Keep words are never dropped. "most" and "least" are always kept.
	Keep []string `yaml:"keep" validate:"dive,required"`
}

// KeywordConfig returns the extractor configuration.
func (k KeywordsConfig) KeywordConfig() text.KeywordConfig {
	cfg := text.DefaultKeywordConfig()
	cfg.Stopwords = append(cfg.Stopwords, k.ExtraStopwords...)
	cfg.Keep = append(cfg.Keep, k.Keep...)
	return cfg
}

// SearchConfig selects the search provider and the resilience policy
// wrapped around it.
type SearchConfig struct {
	evidence.SearchConfig `yaml:",inline"`

	Timeout        time.Duration `yaml:"timeout" validate:"required,gt=0"`
	MaxRetries     int           `yaml:"max_retries" validate:"gte=0,lte=10"`
	RetryBaseDelay time.Duration `yaml:"retry_base_delay" validate:"gte=0"`
	RetryMaxDelay  time.Duration `yaml:"retry_max_delay" validate:"gtefield=RetryBaseDelay"`

	// RatePerSecond limits search calls; zero disables the limiter.
	RatePerSecond float64 `yaml:"rate_per_second" validate:"gte=0"`
	Burst         int     `yaml:"burst" validate:"gte=0"`

	// BreakerFailures consecutive failures open the circuit for
	// BreakerCooldown. Zero disables the breaker.
	BreakerFailures int           `yaml:"breaker_failures" validate:"gte=0"`
	BreakerCooldown time.Duration `yaml:"breaker_cooldown" validate:"gte=0"`
}

// RateLimitConfig is a token bucket. A zero rate disables limiting.
type RateLimitConfig struct {
	RatePerSecond float64 `yaml:"rate_per_second" validate:"gte=0"`
	Burst         int     `yaml:"burst" validate:"gte=0"`
}

// CacheConfig configures the page cache placed in front of the fetcher.
type CacheConfig struct {
	Backend string        `yaml:"backend" validate:"oneof=none memory redis"`
	TTL     time.Duration `yaml:"ttl" validate:"gte=0"`

	RedisAddr     string `yaml:"redis_addr" validate:"required_if=Backend redis"`
	RedisPassword string `yaml:"-"`
	RedisDB       int    `yaml:"redis_db" validate:"gte=0"`

	// Prefix scopes clearing the Redis cache.
	Prefix string `yaml:"prefix" validate:"required_if=Backend redis"`
}

// ServerConfig configures the HTTP answer API.
type ServerConfig struct {
	Port            int           `yaml:"port" validate:"min=1,max=65535"`
	RequestTimeout  time.Duration `yaml:"request_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
}

// DefaultConfig returns a configuration that runs both scoring methods
// against the keyless HTML search provider with an in-process cache.
func DefaultConfig() Config {
	return Config{
		Methods:  domain.MethodKinds(),
		Polarity: domain.DefaultPolarityRules(),
		Evidence: units.DefaultEvidenceConfig(),
		Gatherer: evidence.GathererConfig{FetchTimeout: 5 * time.Second},
		Fetcher: evidence.FetcherConfig{
			UserAgent:    evidence.DefaultUserAgent,
			MaxBodyBytes: evidence.DefaultMaxBodyBytes,
		},
		Search: SearchConfig{
			SearchConfig:    evidence.SearchConfig{Provider: "html"},
			Timeout:         5 * time.Second,
			MaxRetries:      2,
			RetryBaseDelay:  100 * time.Millisecond,
			RetryMaxDelay:   time.Second,
			RatePerSecond:   5,
			Burst:           5,
			BreakerFailures: 5,
			BreakerCooldown: 30 * time.Second,
		},
		Cache: CacheConfig{
			Backend: CacheMemory,
			TTL:     10 * time.Minute,
			Prefix:  evidence.PageCacheKeyPrefix,
		},
		Server: ServerConfig{
			Port:            8080,
			RequestTimeout:  20 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// LoadDotEnv loads environment variables from path. A missing file is not
// an error; variables already set in the environment win.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return ports.NewConfigError(path, err)
	}
	return nil
}

// LoadConfig reads the YAML file at path over DefaultConfig, applies the
// environment and validates the result. An empty path yields the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		f, err := os.Open(filepath.Clean(path))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return Config{}, ports.NewConfigError(path, ports.ErrConfigNotFound)
			}
			return Config{}, ports.NewConfigError(path, err)
		}
		defer f.Close()

		if cfg, err = DecodeConfig(f); err != nil {
			return Config{}, ports.NewConfigError(path, err)
		}
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DecodeConfig decodes YAML from r over DefaultConfig. Unknown fields are
// rejected. The result is not validated.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overlays secrets and deployment settings from getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvGoogleAPIKey); v != "" {
		c.Search.APIKey = v
	}
	if v := getenv(EnvGoogleCSEID); v != "" {
		c.Search.EngineID = v
	}
	if v := getenv(EnvRedisAddr); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := getenv(EnvRedisPassword); v != "" {
		c.Cache.RedisPassword = v
	}
	if v := getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return ports.NewConfigError(EnvPort, err)
		}
		c.Server.Port = port
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/ilyakaznacheev/cleanenv"
)

// Supported LLM providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

var validProviders = []string{ProviderOpenAI, ProviderAnthropic}

// Config holds all configuration for growthnav.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (API keys) must only come from environment variables.
type Config struct {
	Env     string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version string `yaml:"-"` // Set at load time, not from config

	// LLM provider configuration for schema mapping
	LLM LLMConfig `yaml:"llm"`

	// Column profiling configuration
	Profiler ProfilerConfig `yaml:"profiler"`

	// Schema mapping configuration
	Mapper MapperConfig `yaml:"mapper"`

	// Identity resolution configuration
	Linker LinkerConfig `yaml:"linker"`
}

// LLMConfig holds LLM provider settings for the schema mapper.
type LLMConfig struct {
	// Provider selects the client implementation ("openai" or "anthropic").
	Provider string `yaml:"provider" env:"LLM_PROVIDER" env-default:"openai"`

	// BaseURL is the OpenAI-compatible endpoint. Ignored for anthropic.
	BaseURL string `yaml:"base_url" env:"LLM_BASE_URL" env-default:""`

	// Model is the model identifier sent with each request.
	Model string `yaml:"model" env:"LLM_MODEL" env-default:""`

	// APIKey authenticates against the provider. Secret - not in YAML.
	APIKey string `yaml:"-" env:"LLM_API_KEY"`

	// Temperature for mapping requests. Low values keep the JSON output stable.
	Temperature float64 `yaml:"temperature" env:"LLM_TEMPERATURE" env-default:"0.1"`
}

// IsConfigured returns true if enough is set to construct a client.
func (c *LLMConfig) IsConfigured() bool {
	switch c.Provider {
	case ProviderAnthropic:
		return c.APIKey != ""
	default:
		return c.BaseURL != "" && c.Model != ""
	}
}

// ProfilerConfig holds column profiling settings.
type ProfilerConfig struct {
	// SampleSize is the number of sample values retained per column profile.
	SampleSize int `yaml:"sample_size" env:"PROFILER_SAMPLE_SIZE" env-default:"10"`
}

// MapperConfig holds schema mapping settings.
type MapperConfig struct {
	// MinConfidence is the threshold below which suggestions are excluded
	// from the field map.
	MinConfidence float64 `yaml:"min_confidence" env:"MAPPER_MIN_CONFIDENCE" env-default:"0.7"`
}

// LinkerConfig holds identity resolution settings.
type LinkerConfig struct {
	// MatchThreshold is the minimum probability for the probabilistic
	// linker to accept a record pair.
	MatchThreshold float64 `yaml:"match_threshold" env:"LINKER_MATCH_THRESHOLD" env-default:"0.9"`
}

// Load reads configuration from config.yaml with environment variable
// overrides. When config.yaml is absent, configuration comes from the
// environment alone. The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if !slices.Contains(validProviders, c.LLM.Provider) {
		return fmt.Errorf("unknown llm provider %q (expected one of %v)", c.LLM.Provider, validProviders)
	}
	if c.Profiler.SampleSize <= 0 {
		return fmt.Errorf("profiler sample_size must be positive, got %d", c.Profiler.SampleSize)
	}
	if c.Mapper.MinConfidence < 0 || c.Mapper.MinConfidence > 1 {
		return fmt.Errorf("mapper min_confidence must be in [0,1], got %g", c.Mapper.MinConfidence)
	}
	if c.Linker.MatchThreshold <= 0 || c.Linker.MatchThreshold > 1 {
		return fmt.Errorf("linker match_threshold must be in (0,1], got %g", c.Linker.MatchThreshold)
	}
	return nil
}

package model

import (
	"fmt"
	"math"
	"time"
)

// Config is the full runtime configuration. Values come from the config
// file, VOUCH_* environment variables, and CLI flags, in ascending
// priority.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Providers   []ProviderConfig  `yaml:"providers" mapstructure:"providers"`
	Scoring     ScoringConfig     `yaml:"scoring" mapstructure:"scoring"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls the shared HTTP client used by scraping providers
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// CacheConfig controls the layered search-result cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ProviderConfig declares one search provider and its pacing budget.
// MinDelay/MaxDelay bound the randomized sleep before each call; the
// interval is sampled, not fixed, to avoid detectable periodicity.
type ProviderConfig struct {
	Name     string        `yaml:"name" mapstructure:"name"`
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	MinDelay time.Duration `yaml:"min_delay" mapstructure:"min_delay"`
	MaxDelay time.Duration `yaml:"max_delay" mapstructure:"max_delay"`

	// Sustained request budget for the shared limiter
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`

	// Google Programmable Search credentials (google provider only)
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	EngineID string `yaml:"engine_id" mapstructure:"engine_id"`
}

// Weights are the fixed convex combination across the four top-level
// categories. They must sum to exactly 1.0.
type Weights struct {
	Education  float64 `yaml:"education" mapstructure:"education"`
	Employment float64 `yaml:"employment" mapstructure:"employment"`
	Social     float64 `yaml:"social" mapstructure:"social"`
	Background float64 `yaml:"background" mapstructure:"background"`
}

// Sum returns the total of the four weights
func (w Weights) Sum() float64 {
	return w.Education + w.Employment + w.Social + w.Background
}

// ScoringConfig holds the scoring policy. These are configurable
// constants, not hard invariants; the defaults are the one coherent set
// the engine is calibrated for.
type ScoringConfig struct {
	Weights Weights `yaml:"weights" mapstructure:"weights"`

	// Evidence count at which a category's confidence saturates at 1.0
	EducationSaturation  float64 `yaml:"education_saturation" mapstructure:"education_saturation"`
	EmploymentSaturation float64 `yaml:"employment_saturation" mapstructure:"employment_saturation"`
	SocialSaturation     float64 `yaml:"social_saturation" mapstructure:"social_saturation"`

	// Registry checks at which background coverage saturates
	BackgroundRegistryTarget float64 `yaml:"background_registry_target" mapstructure:"background_registry_target"`

	// Minimum composite score for an employment/background hit to count
	// as evidence
	RetentionThreshold float64 `yaml:"retention_threshold" mapstructure:"retention_threshold"`

	// Verified thresholds per category
	EducationThreshold  float64 `yaml:"education_threshold" mapstructure:"education_threshold"`
	EmploymentThreshold float64 `yaml:"employment_threshold" mapstructure:"employment_threshold"`
	SocialThreshold     float64 `yaml:"social_threshold" mapstructure:"social_threshold"`
	BackgroundThreshold float64 `yaml:"background_threshold" mapstructure:"background_threshold"`

	// Social presence weighting: a professional profile counts 3x a
	// generic one
	ProfessionalProfileWeight float64 `yaml:"professional_profile_weight" mapstructure:"professional_profile_weight"`
	ProfileWeight             float64 `yaml:"profile_weight" mapstructure:"profile_weight"`

	// Hosts that grant the employment URL bonus
	ProfessionalNetworks []string `yaml:"professional_networks" mapstructure:"professional_networks"`

	// Platforms counted as professional for social presence
	ProfessionalPlatforms []string `yaml:"professional_platforms" mapstructure:"professional_platforms"`
}

// LLMConfig configures the optional post-scoring summary
type LLMConfig struct {
	Provider       string `yaml:"provider" mapstructure:"provider"` // "" disables
	Model          string `yaml:"model" mapstructure:"model"`
	APIKey         string `yaml:"-" mapstructure:"-"` // Env only, never persisted
	BaseURL        string `yaml:"base_url" mapstructure:"base_url"`
	Timeout        int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	StrictEvidence bool   `yaml:"strict_evidence" mapstructure:"strict_evidence"`
	MaxTokens      int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ConcurrencyConfig controls batch processing. A single verify run is
// always sequential; workers only parallelize across persons, and they
// share one provider limiter.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
	MaxResults    int  `yaml:"max_results" mapstructure:"max_results"` // Hits requested per query
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      15 * time.Second,
			UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // Defaults to ~/.vouch/cache at wiring time
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Providers: []ProviderConfig{
			{
				Name:              "bing",
				Enabled:           true,
				MinDelay:          1 * time.Second,
				MaxDelay:          3 * time.Second,
				RequestsPerSecond: 0.5,
				Burst:             1,
			},
			{
				Name:              "duckduckgo",
				Enabled:           true,
				MinDelay:          2 * time.Second,
				MaxDelay:          4 * time.Second,
				RequestsPerSecond: 0.5,
				Burst:             1,
			},
			{
				Name:              "google",
				Enabled:           false, // Needs api_key + engine_id
				MinDelay:          200 * time.Millisecond,
				MaxDelay:          500 * time.Millisecond,
				RequestsPerSecond: 1,
				Burst:             2,
			},
		},
		Scoring: ScoringConfig{
			Weights: Weights{
				Education:  0.3,
				Employment: 0.4,
				Social:     0.2,
				Background: 0.1,
			},
			EducationSaturation:       2.0,
			EmploymentSaturation:      2.0,
			SocialSaturation:          2.0,
			BackgroundRegistryTarget:  5.0,
			RetentionThreshold:        0.3,
			EducationThreshold:        0.3,
			EmploymentThreshold:       0.5,
			SocialThreshold:           0.3,
			BackgroundThreshold:       0.3,
			ProfessionalProfileWeight: 0.3,
			ProfileWeight:             0.1,
			ProfessionalNetworks: []string{
				"linkedin.com",
				"xing.com",
				"glassdoor.com",
				"crunchbase.com",
			},
			ProfessionalPlatforms: []string{
				"linkedin",
				"github",
				"xing",
			},
		},
		LLM: LLMConfig{
			Provider:       "",
			Timeout:        30,
			StrictEvidence: true,
			MaxTokens:      1000,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 2,
		},
		Output: OutputConfig{
			IncludeFooter: true,
			MaxResults:    8,
		},
	}
}

const weightEpsilon = 1e-9

// Validate checks the configuration invariants. Changing one top-level
// weight without adjusting the others must fail here.
func (c *Config) Validate() error {
	if sum := c.Scoring.Weights.Sum(); math.Abs(sum-1.0) > weightEpsilon {
		return fmt.Errorf("category weights must sum to 1.0, got %.4f", sum)
	}
	w := c.Scoring.Weights
	if w.Education < 0 || w.Employment < 0 || w.Social < 0 || w.Background < 0 {
		return fmt.Errorf("category weights must be non-negative")
	}
	if c.Scoring.EducationSaturation <= 0 || c.Scoring.EmploymentSaturation <= 0 || c.Scoring.SocialSaturation <= 0 {
		return fmt.Errorf("saturation constants must be positive")
	}
	if c.Scoring.BackgroundRegistryTarget <= 0 {
		return fmt.Errorf("background registry target must be positive")
	}
	for _, p := range c.Providers {
		if p.MinDelay < 0 || p.MaxDelay < p.MinDelay {
			return fmt.Errorf("provider %s: delay interval [%v, %v] is invalid", p.Name, p.MinDelay, p.MaxDelay)
		}
	}
	if c.Output.MaxResults <= 0 {
		return fmt.Errorf("max_results must be positive")
	}
	return nil
}

// Provider returns the configuration for a named provider, if declared
func (c *Config) Provider(name string) (ProviderConfig, bool) {
	for _, p := range c.Providers {
		if p.Name == name {
			return p, true
		}
	}
	return ProviderConfig{}, false
}

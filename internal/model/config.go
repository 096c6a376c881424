package model

import "time"

// Config holds the full tool configuration
type Config struct {
	Workers   int             `yaml:"workers" json:"workers"` // Evaluation pool size
	Tolerance ToleranceConfig `yaml:"tolerance" json:"tolerance"`
	Cache     CacheConfig     `yaml:"cache" json:"cache"`
	Output    OutputConfig    `yaml:"output" json:"output"`
	Fuzz      FuzzConfig      `yaml:"fuzz" json:"fuzz"`
}

// ToleranceConfig controls numeric equality comparison
type ToleranceConfig struct {
	Atol float64 `yaml:"atol" json:"atol"` // Absolute tolerance
	Rtol float64 `yaml:"rtol" json:"rtol"` // Relative tolerance
}

// CacheConfig controls the verdict cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"` // Empty means ~/.veritas/cache
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// FuzzConfig controls repeated-sample evaluation
type FuzzConfig struct {
	Samples int     `yaml:"samples" json:"samples"`
	Seed    int64   `yaml:"seed" json:"seed"`     // 0 means time-based
	Spread  float64 `yaml:"spread" json:"spread"` // Relative perturbation applied to numeric bindings
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Workers: 8,
		Tolerance: ToleranceConfig{
			Atol: 1e-9,
			Rtol: 1e-9,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
		Fuzz: FuzzConfig{
			Samples: 1000,
			Spread:  0.5,
		},
	}
}

// Package config provides configuration management for TaxoDrift.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// A Config is created once at startup and handed to every component that
// needs it. Nothing reads the environment after bootstrap.
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - BaseDir: root of checklist inputs and analysis outputs
//   - Log: level, format, destination
//   - Match: canonical_fallback
//   - Resolver: max_unresolved
//   - Trend: permutations, seed
//   - S3: region, endpoint, path_style
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - ChainDir (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use TAXODRIFT_ prefix with underscores for nesting:
//
//	TAXODRIFT_BASE_DIR=/data/taxodrift
//	TAXODRIFT_LOG_LEVEL=info
//	TAXODRIFT_RESOLVER_MAX_UNRESOLVED=1000
//	TAXODRIFT_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete TaxoDrift configuration.
type Config struct {
	// BaseDir is the directory where checklist releases are stored and
	// where all analysis results are written.
	BaseDir string `mapstructure:"base_dir" yaml:"base_dir"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Match contains settings of name matching between versions.
	Match MatchConfig `mapstructure:"match" yaml:"match"`

	// Resolver contains data-quality thresholds of the record resolver.
	Resolver ResolverConfig `mapstructure:"resolver" yaml:"resolver"`

	// Trend contains settings of correlation tests.
	Trend TrendConfig `mapstructure:"trend" yaml:"trend"`

	// S3 contains settings for checklist releases stored in S3 buckets.
	S3 S3Config `mapstructure:"s3" yaml:"s3"`

	// Database contains PostgreSQL connection settings for exports.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// JobsNumber is the number of concurrent workers for name parsing
	// and version loading.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// ChainDir is the name of the output directory for multi-version
	// chains. Runtime-only.
	ChainDir string

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// MatchConfig controls how a name is looked up in another version.
type MatchConfig struct {
	// CanonicalFallback allows matching by canonical form (without
	// authorship) when the full name is absent and the canonical form
	// points to a single accepted name.
	CanonicalFallback bool `mapstructure:"canonical_fallback" yaml:"canonical_fallback"`
}

// ResolverConfig contains resolver thresholds.
type ResolverConfig struct {
	// MaxUnresolved is the largest tolerated number of records whose
	// accepted identifier points to a missing accepted record. Versions
	// in versions.yaml can override it.
	MaxUnresolved int `mapstructure:"max_unresolved" yaml:"max_unresolved"`
}

// TrendConfig contains settings for permutation tests.
type TrendConfig struct {
	// Permutations is the number of random permutations used to estimate
	// p-values of Spearman correlations.
	Permutations int `mapstructure:"permutations" yaml:"permutations"`

	// Seed makes permutation tests reproducible.
	Seed int `mapstructure:"seed" yaml:"seed"`
}

// S3Config contains settings of an S3-compatible storage.
type S3Config struct {
	// Region of the bucket.
	Region string `mapstructure:"region" yaml:"region"`

	// Endpoint is an optional custom endpoint (MinIO and alike).
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// PathStyle enables path-style addressing.
	PathStyle bool `mapstructure:"path_style" yaml:"path_style"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the number of rows sent per COPY during export.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		BaseDir: ".",
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		Resolver: ResolverConfig{
			MaxUnresolved: 1_000,
		},
		Trend: TrendConfig{
			Permutations: 10_000,
			Seed:         1,
		},
		S3: S3Config{
			Region: "us-east-1",
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "taxodrift",
			SSLMode:   "disable",
			BatchSize: 50_000,
		},
		JobsNumber: runtime.NumCPU(),
		ChainDir:   "full_chain",
	}

	return res
}

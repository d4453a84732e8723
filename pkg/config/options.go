package config

import (
	"path/filepath"
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptBaseDir sets the root directory of inputs and outputs.
func OptBaseDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Base Directory", s) {
			c.BaseDir = filepath.Clean(s)
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptMatchCanonicalFallback enables lookups by canonical form.
func OptMatchCanonicalFallback(b bool) Option {
	return func(c *Config) {
		c.Match.CanonicalFallback = b
	}
}

// OptResolverMaxUnresolved sets the tolerated number of records with
// missing accepted targets.
func OptResolverMaxUnresolved(i int) Option {
	return func(c *Config) {
		if isValidInt("Resolver Max Unresolved", i) {
			c.Resolver.MaxUnresolved = i
		}
	}
}

// OptTrendPermutations sets the number of permutations for p-values.
func OptTrendPermutations(i int) Option {
	return func(c *Config) {
		if isValidInt("Trend Permutations", i) {
			c.Trend.Permutations = i
		}
	}
}

// OptTrendSeed sets the random seed of permutation tests.
func OptTrendSeed(i int) Option {
	return func(c *Config) {
		if isValidInt("Trend Seed", i) {
			c.Trend.Seed = i
		}
	}
}

// OptS3Region sets the region of S3 buckets.
func OptS3Region(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("S3 Region", s) {
			c.S3.Region = s
		}
	}
}

// OptS3Endpoint sets a custom S3 endpoint.
func OptS3Endpoint(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("S3 Endpoint", s) {
			c.S3.Endpoint = s
		}
	}
}

// OptS3PathStyle toggles path-style bucket addressing.
func OptS3PathStyle(b bool) Option {
	return func(c *Config) {
		c.S3.PathStyle = b
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
func OptDatabaseSSLMode(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of rows per COPY batch.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptJobsNumber sets the number of concurrent workers.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptChainDir sets the output directory name of a multi-version chain.
// Runtime-only field - not in ToOptions().
func OptChainDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Chain Directory", s) {
			c.ChainDir = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

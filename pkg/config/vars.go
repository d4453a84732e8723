package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "taxodrift"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/taxodrift by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/taxodrift by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// DownloadDir keeps checklist releases fetched from remote sources.
func DownloadDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "downloads")
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/taxodrift/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// VersionsFilePath returns the full path to the versions.yaml file that
// lists checklist releases.
func VersionsFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "versions.yaml")
}

// InputDir is where releases and resolved tables of a checklist live.
func (c *Config) InputDir(checklist string) string {
	return filepath.Join(c.BaseDir, checklist, "inputs")
}

// OutputDir is where comparison results of a checklist are written.
func (c *Config) OutputDir(checklist string) string {
	return filepath.Join(c.BaseDir, checklist, "outputs")
}

// ResolvedPath is the CSV file with the resolved table of a release.
func (c *Config) ResolvedPath(checklist, tag string) string {
	return filepath.Join(c.InputDir(checklist), tag+"_resolved.csv")
}

// PairDir is the output directory of a comparison of two releases.
func (c *Config) PairDir(checklist, oldTag, newTag string) string {
	return filepath.Join(c.OutputDir(checklist), oldTag+"_"+newTag)
}

// ChainPath is the output directory of a multi-version chain.
func (c *Config) ChainPath(checklist string) string {
	return filepath.Join(c.OutputDir(checklist), c.ChainDir)
}

// ChangesDir is the output directory of change statistics.
func (c *Config) ChangesDir(checklist, oldTag, newTag string) string {
	return filepath.Join(c.BaseDir, "changes", checklist, oldTag+"_"+newTag)
}

// PlotsDir is where plots and correlation tests are written.
func (c *Config) PlotsDir() string {
	return filepath.Join(c.BaseDir, "plots")
}

package iofs

import (
	_ "embed"
	"os"

	"github.com/gnames/gnsys"
	"github.com/gnames/taxodrift/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed versions.yaml
var VersionsYAML string

// EnsureDirs creates configuration, cache, download and log directories.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.DownloadDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

// EnsureOutputDirs creates input and output directories of a checklist
// under the base directory.
func EnsureOutputDirs(cfg *config.Config, checklist string) error {
	dirs := []string{
		cfg.InputDir(checklist),
		cfg.OutputDir(checklist),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

// ResetDir creates a directory or removes everything inside an existing
// one.
func ResetDir(dir string) error {
	if err := touchDir(dir); err != nil {
		return err
	}
	if err := gnsys.CleanDir(dir); err != nil {
		return CreateDirError(dir, err)
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := gnsys.MakeDir(dir); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the default config.yaml unless it exists.
func EnsureConfigFile(homeDir string) error {
	return ensureFile(config.ConfigFilePath(homeDir), ConfigYAML)
}

// EnsureVersionsFile writes the default versions.yaml unless it exists.
func EnsureVersionsFile(homeDir string) error {
	return ensureFile(config.VersionsFilePath(homeDir), VersionsYAML)
}

func ensureFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return CopyFileError(path, err)
	}

	return nil
}

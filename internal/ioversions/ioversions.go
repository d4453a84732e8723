// Package ioversions reads versions.yaml, the registry of checklist
// releases.
package ioversions

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/gnames/taxodrift/pkg/checklist"
	"github.com/gnames/taxodrift/pkg/config"
	"gopkg.in/yaml.v3"
)

// Load reads versions.yaml from the configuration directory.
func Load(cfg *config.Config) (*checklist.Registry, error) {
	path := config.VersionsFilePath(cfg.HomeDir)
	res, err := LoadFile(path)
	if err != nil {
		return nil, VersionsConfigError(path, err)
	}
	return res, nil
}

// LoadFile reads and validates a registry file.
func LoadFile(path string) (*checklist.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read versions file: %w", err)
	}

	var res checklist.Registry
	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("failed to parse versions file: %w", err)
	}

	if err := res.Validate(); err != nil {
		return nil, err
	}

	for _, w := range res.Warnings {
		slog.Warn("Versions configuration warning",
			"checklist", w.Checklist,
			"field", w.Field,
			"message", w.Message,
			"suggestion", w.Suggestion)
	}

	return &res, nil
}

// Checklist loads the registry and finds a checklist in it.
func Checklist(cfg *config.Config, name string) (*checklist.Checklist, error) {
	reg, err := Load(cfg)
	if err != nil {
		return nil, err
	}
	return Find(reg, name)
}

// Find finds a checklist in a loaded registry.
func Find(reg *checklist.Registry, name string) (*checklist.Checklist, error) {
	res, err := reg.Checklist(name)
	if err != nil {
		return nil, UnknownChecklistError(name, reg, err)
	}
	return res, nil
}

// Sequence returns releases of a checklist for the given tags in
// chronological order. Empty tags give all releases.
func Sequence(cl *checklist.Checklist, tags []string) ([]checklist.Version, error) {
	res, err := cl.Sequence(tags)
	if errors.Is(err, checklist.ErrUnknownVersion) {
		return nil, UnknownVersionError(cl, err)
	}
	if err != nil {
		return nil, VersionOrderError(cl, err)
	}
	return res, nil
}

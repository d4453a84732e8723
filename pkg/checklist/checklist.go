// Package checklist provides configuration and validation of checklist
// releases analysed by TaxoDrift.
//
// This package defines the schema of versions.yaml, where users list the
// releases of each checklist in chronological order, together with the
// location of the files and the vocabularies of statuses and ranks that a
// release is allowed to contain.
package checklist

import (
	"errors"
)

// Format names the layout of a release file.
type Format string

const (
	// WCVP is the World Checklist of Vascular Plants export
	// (pipe-separated wcvp_names.csv).
	WCVP Format = "wcvp"

	// WFO is the World Flora Online backbone (tab-separated
	// classification file).
	WFO Format = "wfo"

	// SFGA is a Species File Group Archive (SQLite).
	SFGA Format = "sfga"
)

var (
	ErrUnknownChecklist = errors.New("unknown checklist")
	ErrUnknownVersion   = errors.New("unknown version")
)

// Registry represents the complete versions.yaml file.
type Registry struct {
	// Checklists is the list of analysed checklists.
	Checklists []Checklist `yaml:"checklists"`

	// Warnings holds non-fatal validation warnings (not serialized).
	Warnings []ValidationWarning `yaml:"-"`
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Checklist  string
	Field      string
	Message    string
	Suggestion string
}

// Checklist describes one checklist and its releases.
type Checklist struct {
	// Name is used in directory names and on the command line
	// (e.g. "wcvp", "wfo").
	Name string `yaml:"name"`

	// Format of release files.
	Format Format `yaml:"format"`

	// Separator of fields in release files. Versions can override it.
	// Besides literal characters it accepts "tab", "pipe" and "comma".
	Separator string `yaml:"separator,omitempty"`

	// Encoding of release files ("utf-8", "latin1", "windows-1252").
	// Versions can override it.
	Encoding string `yaml:"encoding,omitempty"`

	// MaxUnresolved overrides the global threshold of records with
	// missing accepted targets. Zero means no such records are tolerated,
	// nil keeps the global threshold.
	MaxUnresolved *int `yaml:"max_unresolved,omitempty"`

	// Statuses is the vocabulary of raw status values. Empty means any
	// value is accepted.
	Statuses []string `yaml:"statuses,omitempty"`

	// Ranks is the vocabulary of lower-case rank values. Empty means any
	// value is accepted.
	Ranks []string `yaml:"ranks,omitempty"`

	// Versions are the releases in chronological order.
	Versions []Version `yaml:"versions"`
}

// Version describes one release of a checklist.
type Version struct {
	// Tag is an opaque identifier of the release ("v10", "201807").
	Tag string `yaml:"tag"`

	// Date of the release in YYYY-MM-DD format. It places the release on
	// a time axis of plots.
	Date string `yaml:"date"`

	// Source is a file path, a glob pattern, an http(s) URL or an
	// s3://bucket/key location. Relative paths are resolved against the
	// inputs directory of the checklist.
	Source string `yaml:"source"`

	// Member is the file inside a zip archive that holds the data.
	Member string `yaml:"member,omitempty"`

	Separator     string   `yaml:"separator,omitempty"`
	Encoding      string   `yaml:"encoding,omitempty"`
	MaxUnresolved *int     `yaml:"max_unresolved,omitempty"`
	Statuses      []string `yaml:"statuses,omitempty"`
}

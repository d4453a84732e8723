// Package taxon provides the entities shared by all stages of a drift
// analysis: records of a checklist release, their resolved forms and the
// helpers that derive name strings. This is a pure package.
package taxon

import (
	"strings"
)

// Typification tells if a synonym shares the type of its accepted name.
type Typification int

const (
	TypeUnknown Typification = iota
	Homotypic
	Heterotypic
)

// String returns the label used in CSV files.
func (t Typification) String() string {
	switch t {
	case Homotypic:
		return "homotypic"
	case Heterotypic:
		return "heterotypic"
	}
	return ""
}

// NewTypification converts CSV values ("homotypic", "T", "heterotypic",
// "F") to Typification.
func NewTypification(s string) Typification {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "homotypic", "t", "true":
		return Homotypic
	case "heterotypic", "f", "false":
		return Heterotypic
	}
	return TypeUnknown
}

// Record is one row of a checklist release.
type Record struct {
	// ID is the identifier of the record in the release.
	ID string

	// Name is the scientific name without authorship.
	Name string

	// Authors is the authorship of the name.
	Authors string

	// NameWithAuthors combines Name and Authors.
	NameWithAuthors string

	// Rank is a lower-case rank.
	Rank string

	// Status is the normalized taxonomic status.
	Status Status

	// RawStatus keeps the status as it was in the release.
	RawStatus string

	// AcceptedUsageID references the accepted record of a non-accepted
	// name.
	AcceptedUsageID string

	// Genus of the name.
	Genus string

	// Species is the binomial the name belongs to. It is empty for names
	// above species rank.
	Species string

	// Typification is set for synonyms when the release provides it.
	Typification Typification
}

// TypeRelation returns the typification of the record, using the status
// when it carries that information.
func (r Record) TypeRelation() Typification {
	switch r.Status {
	case HomotypicSynonym:
		return Homotypic
	case HeterotypicSynonym:
		return Heterotypic
	}
	return r.Typification
}

// Resolved is a Record enriched with data of its accepted record.
type Resolved struct {
	Record

	// AcceptedID is the identifier of the accepted record.
	AcceptedID string

	// AcceptedNameWithAuthors is the accepted name with authorship.
	AcceptedNameWithAuthors string

	// AcceptedSpecies is the species of the accepted name.
	AcceptedSpecies string

	// AcceptedSpeciesWithAuthors is the accepted species with its
	// authorship when it is known in the release.
	AcceptedSpeciesWithAuthors string

	// AcceptedGenus is the genus of the accepted name.
	AcceptedGenus string
}

// JoinName creates a "name with authorship" string.
func JoinName(name, authors string) string {
	name = strings.TrimSpace(name)
	authors = strings.TrimSpace(authors)
	if authors == "" {
		return name
	}
	return name + " " + authors
}

// SpeciesName creates a binomial from genus and specific epithet.
// It returns an empty string when one of them is missing.
func SpeciesName(genus, epithet string) string {
	genus = strings.TrimSpace(genus)
	epithet = strings.TrimSpace(epithet)
	if genus == "" || epithet == "" {
		return ""
	}
	return genus + " " + epithet
}

// NormalizeRank brings a rank to lower case without surrounding spaces.
func NormalizeRank(rank string) string {
	return strings.ToLower(strings.TrimSpace(rank))
}

// IsSpeciesRank is true for the species rank.
func IsSpeciesRank(rank string) bool {
	return NormalizeRank(rank) == "species"
}

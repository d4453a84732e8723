package ioexport

import "time"

// Release is an exported checklist release.
type Release struct {
	ID         int64     `gorm:"primaryKey"`
	Checklist  string    `gorm:"type:varchar(50);uniqueIndex:idx_release_tag"`
	Tag        string    `gorm:"type:varchar(50);uniqueIndex:idx_release_tag"`
	Records    int       `gorm:"not null"`
	ExportedAt time.Time `gorm:"not null"`
}

// TableName returns the table name of releases.
func (Release) TableName() string { return "releases" }

// ResolvedRecord is a record of a release with its accepted name.
type ResolvedRecord struct {
	ReleaseID       int64  `gorm:"index;not null"`
	RecordID        string `gorm:"type:varchar(100)"`
	Name            string `gorm:"type:text"`
	NameWithAuthors string `gorm:"type:text;index"`
	Rank            string `gorm:"type:varchar(50)"`
	Status          string `gorm:"type:varchar(50)"`
	AcceptedID      string `gorm:"type:varchar(100)"`
	AcceptedName    string `gorm:"type:text"`
	AcceptedSpecies string `gorm:"type:text"`
	AcceptedGenus   string `gorm:"type:varchar(255)"`
}

// TableName returns the table name of resolved records.
func (ResolvedRecord) TableName() string { return "resolved_records" }

// Comparison is an exported comparison of two or more releases.
type Comparison struct {
	ID         int64     `gorm:"primaryKey"`
	Checklist  string    `gorm:"type:varchar(50);uniqueIndex:idx_comparison_tags"`
	OldTag     string    `gorm:"type:varchar(50);uniqueIndex:idx_comparison_tags"`
	NewTag     string    `gorm:"type:varchar(50);uniqueIndex:idx_comparison_tags"`
	Rows       int       `gorm:"not null"`
	ExportedAt time.Time `gorm:"not null"`
}

// TableName returns the table name of comparisons.
func (Comparison) TableName() string { return "comparisons" }

// ComparisonRow is a compared name.
type ComparisonRow struct {
	ComparisonID        int64  `gorm:"index;not null"`
	Name                string `gorm:"type:text"`
	OldStatus           string `gorm:"type:varchar(50)"`
	OldAccepted         string `gorm:"type:text"`
	ChainedAccepted     string `gorm:"type:text"`
	ChainedSpecies      string `gorm:"type:text"`
	DirectAccepted      string `gorm:"type:text"`
	DirectSpecies       string `gorm:"type:text"`
	NameDisagreement    bool
	SpeciesDisagreement bool
	GenusDisagreement   bool
	Resurrected         bool
	Synonymized         bool
}

// TableName returns the table name of comparison rows.
func (ComparisonRow) TableName() string { return "comparison_rows" }

// AllModels returns models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&Release{},
		&ResolvedRecord{},
		&Comparison{},
		&ComparisonRow{},
	}
}

var recordColumns = []string{
	"release_id", "record_id", "name", "name_with_authors", "rank",
	"status", "accepted_id", "accepted_name", "accepted_species",
	"accepted_genus",
}

var comparisonColumns = []string{
	"comparison_id", "name", "old_status", "old_accepted",
	"chained_accepted", "chained_species", "direct_accepted",
	"direct_species", "name_disagreement", "species_disagreement",
	"genus_disagreement", "resurrected", "synonymized",
}

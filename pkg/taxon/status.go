package taxon

import (
	"strings"
)

// Status is the taxonomic status of a name in a checklist release.
// Raw status strings of different checklists map to the same Status,
// so the rest of the code never compares raw strings.
type Status int

const (
	Unknown Status = iota
	Accepted
	ProvisionallyAccepted
	ArtificialHybrid
	Synonym
	HomotypicSynonym
	HeterotypicSynonym
	AmbiguousSynonym
	Misapplied
	Doubtful
	Unchecked
	Unplaced
	Illegitimate
	Invalid
	Orthographic
	LocalBiotype
	BareName
)

var statusLabels = map[Status]string{
	Unknown:               "Unknown",
	Accepted:              "Accepted",
	ProvisionallyAccepted: "Provisionally Accepted",
	ArtificialHybrid:      "Artificial Hybrid",
	Synonym:               "Synonym",
	HomotypicSynonym:      "Homotypic Synonym",
	HeterotypicSynonym:    "Heterotypic Synonym",
	AmbiguousSynonym:      "Ambiguous Synonym",
	Misapplied:            "Misapplied",
	Doubtful:              "Doubtful",
	Unchecked:             "Unchecked",
	Unplaced:              "Unplaced",
	Illegitimate:          "Illegitimate",
	Invalid:               "Invalid",
	Orthographic:          "Orthographic",
	LocalBiotype:          "Local Biotype",
	BareName:              "Bare Name",
}

var statusKeys = func() map[string]Status {
	res := make(map[string]Status, len(statusLabels))
	for k, v := range statusLabels {
		res[statusKey(v)] = k
	}
	return res
}()

// NewStatus converts a raw status of WCVP, WFO or SFGA data to Status.
// Case, spaces, hyphens and underscores are ignored, so "heterotypicSynonym",
// "Heterotypic Synonym" and "heterotypic_synonym" are the same value.
// Unrecognized strings return Unknown.
func NewStatus(raw string) Status {
	if st, ok := statusKeys[statusKey(raw)]; ok {
		return st
	}
	return Unknown
}

func statusKey(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-', '\t':
			return -1
		}
		return r
	}, s)
}

// String returns a human-readable label of the status.
func (s Status) String() string {
	if res, ok := statusLabels[s]; ok {
		return res
	}
	return statusLabels[Unknown]
}

// IsAccepted is true for statuses whose records are their own accepted
// names.
func (s Status) IsAccepted() bool {
	switch s {
	case Accepted, ProvisionallyAccepted, ArtificialHybrid:
		return true
	}
	return false
}

// IsSynonym is true for all kinds of synonyms.
func (s Status) IsSynonym() bool {
	switch s {
	case Synonym, HomotypicSynonym, HeterotypicSynonym, AmbiguousSynonym:
		return true
	}
	return false
}

// AcceptedID selects the identifier of the accepted record for a record
// with status st, own identifier id and accepted usage identifier
// acceptedUsageID. Accepted records point to themselves, all others to
// their accepted usage. The boolean is false when no identifier can be
// resolved.
func AcceptedID(st Status, id, acceptedUsageID string) (string, bool) {
	var res string
	if st.IsAccepted() {
		res = strings.TrimSpace(id)
	} else {
		res = strings.TrimSpace(acceptedUsageID)
	}
	return res, res != ""
}

package iocsv

import (
	"strconv"

	"github.com/gnames/taxodrift/pkg/taxon"
)

var resolvedHeader = []string{
	"id", "taxon_name", "taxon_authors", "taxon_name_w_authors", "taxon_rank",
	"taxon_status", "accepted_usage_id", "genus", "species", "typification",
	"accepted_id", "accepted_name_w_author", "accepted_species",
	"accepted_species_w_author", "accepted_genus",
}

// WriteResolved saves a resolved release.
func WriteResolved(path string, recs []taxon.Resolved) error {
	rows := make([][]string, len(recs))
	for i, r := range recs {
		rows[i] = []string{
			r.ID, r.Name, r.Authors, r.NameWithAuthors, r.Rank,
			r.RawStatus, r.AcceptedUsageID, r.Genus, r.Species,
			r.Typification.String(), r.AcceptedID, r.AcceptedNameWithAuthors,
			r.AcceptedSpecies, r.AcceptedSpeciesWithAuthors, r.AcceptedGenus,
		}
	}
	return writeCSV(path, resolvedHeader, rows)
}

// ReadResolved loads a release saved by WriteResolved.
func ReadResolved(path string) ([]taxon.Resolved, error) {
	s, err := readCSV(path, resolvedHeader...)
	if err != nil {
		return nil, err
	}

	res := make([]taxon.Resolved, len(s.rows))
	for i, row := range s.rows {
		raw := s.get(row, "taxon_status")
		res[i] = taxon.Resolved{
			Record: taxon.Record{
				ID:              s.get(row, "id"),
				Name:            s.get(row, "taxon_name"),
				Authors:         s.get(row, "taxon_authors"),
				NameWithAuthors: s.get(row, "taxon_name_w_authors"),
				Rank:            s.get(row, "taxon_rank"),
				Status:          taxon.NewStatus(raw),
				RawStatus:       raw,
				AcceptedUsageID: s.get(row, "accepted_usage_id"),
				Genus:           s.get(row, "genus"),
				Species:         s.get(row, "species"),
				Typification:    taxon.NewTypification(s.get(row, "typification")),
			},
			AcceptedID:                 s.get(row, "accepted_id"),
			AcceptedNameWithAuthors:    s.get(row, "accepted_name_w_author"),
			AcceptedSpecies:            s.get(row, "accepted_species"),
			AcceptedSpeciesWithAuthors: s.get(row, "accepted_species_w_author"),
			AcceptedGenus:              s.get(row, "accepted_genus"),
		}
	}
	return res, nil
}

func boolStr(b bool) string {
	return strconv.FormatBool(b)
}

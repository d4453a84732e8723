package ioloader

import (
	"github.com/gnames/taxodrift/pkg/checklist"
	"github.com/gnames/taxodrift/pkg/taxon"
)

// mapper converts rows of a release format to records.
type mapper struct {
	required []string
	convert  func(row) (taxon.Record, bool)
}

func mapperFor(f checklist.Format) mapper {
	if f == checklist.WCVP {
		return wcvpMapper
	}
	return wfoMapper
}

var wfoMapper = mapper{
	required: []string{
		"taxonID", "scientificName", "scientificNameAuthorship",
		"taxonRank", "taxonomicStatus", "acceptedNameUsageID",
		"genus", "specificEpithet",
	},
	convert: wfoRecord,
}

// wfoRecord keeps names of genus rank and below. Old WFO releases miss
// genus for genus-rank rows, it is taken from the scientific name.
func wfoRecord(r row) (taxon.Record, bool) {
	rank := taxon.NormalizeRank(r.get("taxonRank"))
	name := r.get("scientificName")
	genus := r.get("genus")
	if rank == "genus" {
		genus = name
	}
	if genus == "" {
		return taxon.Record{}, false
	}

	authors := r.get("scientificNameAuthorship")
	raw := r.get("taxonomicStatus")
	res := taxon.Record{
		ID:              r.get("taxonID"),
		Name:            name,
		Authors:         authors,
		NameWithAuthors: taxon.JoinName(name, authors),
		Rank:            rank,
		Status:          taxon.NewStatus(raw),
		RawStatus:       raw,
		AcceptedUsageID: r.get("acceptedNameUsageID"),
		Genus:           genus,
	}
	if rank != "genus" {
		res.Species = taxon.SpeciesName(genus, r.get("specificEpithet"))
	}
	return res, true
}

var wcvpMapper = mapper{
	required: []string{
		"plant_name_id", "taxon_name", "taxon_authors", "taxon_rank",
		"taxon_status", "accepted_plant_name_id", "genus", "species",
		"homotypic_synonym",
	},
	convert: wcvpRecord,
}

// wcvpRecord converts a row of wcvp_names.csv. Synonyms not flagged as
// homotypic are heterotypic.
func wcvpRecord(r row) (taxon.Record, bool) {
	name := r.get("taxon_name")
	authors := r.get("taxon_authors")
	raw := r.get("taxon_status")
	genus := r.get("genus")
	res := taxon.Record{
		ID:              r.get("plant_name_id"),
		Name:            name,
		Authors:         authors,
		NameWithAuthors: taxon.JoinName(name, authors),
		Rank:            taxon.NormalizeRank(r.get("taxon_rank")),
		Status:          taxon.NewStatus(raw),
		RawStatus:       raw,
		AcceptedUsageID: r.get("accepted_plant_name_id"),
		Genus:           genus,
		Species:         taxon.SpeciesName(genus, r.get("species")),
	}
	if res.Status.IsSynonym() {
		res.Typification = taxon.Heterotypic
		if taxon.NewTypification(r.get("homotypic_synonym")) == taxon.Homotypic {
			res.Typification = taxon.Homotypic
		}
	}
	return res, true
}

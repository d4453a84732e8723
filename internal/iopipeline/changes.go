package iopipeline

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/gnames/taxodrift/internal/iocsv"
	"github.com/gnames/taxodrift/internal/iofs"
	"github.com/gnames/taxodrift/internal/ioversions"
	"github.com/gnames/taxodrift/pkg/changes"
)

// Changes writes status and species changes between two releases and
// returns their synonymisation and resurrection rates.
func (p *pipeline) Changes(
	ctx context.Context,
	name, oldTag, newTag string,
) (changes.Rollup, error) {
	var res changes.Rollup
	cl, err := p.checklist(name)
	if err != nil {
		return res, err
	}
	vs, err := ioversions.Sequence(cl, []string{oldTag, newTag})
	if err != nil {
		return res, err
	}
	recss, err := p.resolveAll(ctx, cl, vs)
	if err != nil {
		return res, err
	}
	old := changes.Release{Tag: vs[0].Tag, Records: recss[0]}
	nw := changes.Release{Tag: vs[1].Tag, Records: recss[1]}

	dir := p.cfg.ChangesDir(cl.Name, old.Tag, nw.Tag)
	if err = iofs.ResetDir(dir); err != nil {
		return res, err
	}
	label := old.Tag + "_" + nw.Tag
	path := func(file string) string {
		return filepath.Join(dir, file)
	}

	var lost int
	for _, withAuthors := range []bool{true, false} {
		suffix, nameCol := "without_authors", "taxon_name"
		if withAuthors {
			suffix, nameCol = "with_authors", "taxon_name_w_authors"
		}
		d := changes.DiffSpecies(old, nw, withAuthors)
		err = iocsv.WriteTable(path("species_differences_"+suffix+".csv"), label, d.Summary)
		if err != nil {
			return res, err
		}
		err = iocsv.WriteNames(path("disappeared_species_"+suffix+".csv"), "species", d.Disappeared)
		if err != nil {
			return res, err
		}

		lostTable, names := changes.ResolveLost(old, nw, withAuthors)
		err = iocsv.WriteTable(path("resolve_in_old_not_in_new_"+suffix+".csv"), label, lostTable)
		if err != nil {
			return res, err
		}
		err = iocsv.WriteNames(path("names_resolve_in_old_not_in_new_"+suffix+".csv"), nameCol, names)
		if err != nil {
			return res, err
		}
		if !withAuthors {
			lost = len(names)
		}
	}

	syn := changes.AcceptedBecomeUnaccepted(old, nw)
	if err = writeStatusChanges(dir, "accepted_to_unaccepted.csv", "now", label, syn); err != nil {
		return res, err
	}
	rsr := changes.UnacceptedBecomeAccepted(old, nw)
	if err = writeStatusChanges(dir, "unaccepted_to_accepted.csv", "previously", label, rsr); err != nil {
		return res, err
	}

	if err = p.writeTypification(cl.Name, old.Tag, nw.Tag, path("typification.csv"), label); err != nil {
		return res, err
	}

	res = changes.NewRollup(old, nw, syn, rsr)
	if err = iocsv.WriteRollup(path(iocsv.RollupFile), res); err != nil {
		return res, err
	}
	slog.Info("Status changes",
		"checklist", cl.Name,
		"old", old.Tag,
		"new", nw.Tag,
		"synonymised", syn.Count(),
		"resurrected", rsr.Count(),
		"lost", lost,
	)
	return res, nil
}

func writeStatusChanges(
	dir, file, prefix, label string,
	sc changes.StatusChanges,
) error {
	err := iocsv.WriteTable(filepath.Join(dir, file), label, sc.Summary)
	if err != nil {
		return err
	}
	return iocsv.WriteTransitions(dir, prefix, sc)
}

// writeTypification splits disagreements of a compared pair by the type
// relation of names in the old release. Pairs that were not compared yet
// are skipped.
func (p *pipeline) writeTypification(cl, oldTag, newTag, path, label string) error {
	src := filepath.Join(p.cfg.PairDir(cl, oldTag, newTag), iocsv.AllResultsFile)
	if !fileExists(src) {
		slog.Info("No comparison of the releases, typification is skipped",
			"checklist", cl, "old", oldTag, "new", newTag)
		return nil
	}
	_, _, rows, err := iocsv.ReadComparison(src)
	if err != nil {
		return err
	}
	return iocsv.WriteTable(path, label, changes.Typification(rows))
}

package iopipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/taxodrift/internal/iocsv"
	"github.com/gnames/taxodrift/internal/iofs"
	"github.com/gnames/taxodrift/internal/ioplot"
	"github.com/gnames/taxodrift/pkg/changes"
	"github.com/gnames/taxodrift/pkg/checklist"
	"github.com/gnames/taxodrift/pkg/summary"
	"github.com/gnames/taxodrift/pkg/trend"
)

// Trend builds series of species disagreements for the checklists, tests
// them for monotonic change and correlates disagreements with status
// changes between consecutive releases. Missing comparisons and changes
// are computed on the way. All checklists are used when none are given.
func (p *pipeline) Trend(ctx context.Context, names []string) error {
	if len(names) == 0 {
		for _, cl := range p.reg.Checklists {
			names = append(names, cl.Name)
		}
	}

	var fwd, bwd []trend.Series
	var fwdTests, bwdTests []trend.Test
	var rates []trend.Rates
	for _, name := range names {
		cl, err := p.checklist(name)
		if err != nil {
			return err
		}
		if len(cl.Versions) < 2 {
			return TrendInputError(cl.Name,
				fmt.Errorf("%w: %d", ErrShortHistory, len(cl.Versions)))
		}

		label := strings.ToUpper(cl.Name)
		lookup := func(oldTag, newTag string) (float64, error) {
			return p.disagreement(ctx, cl, oldTag, newTag)
		}

		first := cl.Versions[0].Tag
		f, err := trend.Forward(label, cl, first, lookup)
		if err != nil {
			return TrendInputError(cl.Name, err)
		}
		last := cl.Versions[len(cl.Versions)-1].Tag
		b, err := trend.Backward(label, cl, last, lookup)
		if err != nil {
			return TrendInputError(cl.Name, err)
		}
		fwd = append(fwd, f)
		bwd = append(bwd, b)

		perms := p.cfg.Trend.Permutations
		seed := uint64(p.cfg.Trend.Seed)
		fwdTests = append(fwdTests, trend.Monotonic(f, perms, seed))
		bwdTests = append(bwdTests, trend.Monotonic(b, perms, seed))

		for _, pr := range cl.Consecutive() {
			d, err := p.disagreement(ctx, cl, pr.Old.Tag, pr.New.Tag)
			if err != nil {
				return err
			}
			roll, err := p.rollup(ctx, cl, pr.Old.Tag, pr.New.Tag)
			if err != nil {
				return err
			}
			rates = append(rates, trend.Rates{
				Label:          cl.Name + " " + pr.Old.Tag + "_" + pr.New.Tag,
				Discrepancy:    d,
				Synonymization: roll.Synonymization,
				Resurrection:   roll.Resurrection,
			})
		}
	}

	dir := p.cfg.PlotsDir()
	if err := iofs.ResetDir(dir); err != nil {
		return err
	}
	if err := writeSeries(dir, "forwards", fwd, fwdTests,
		"Species disagreements with the first release"); err != nil {
		return err
	}
	if err := writeSeries(dir, "backwards", bwd, bwdTests,
		"Species disagreements with the last release"); err != nil {
		return err
	}

	corr := trend.Correlations(rates)
	err := iocsv.WriteTests(filepath.Join(dir, "spearman_tests.csv"), "Type", corr)
	if err != nil {
		return err
	}
	scatters := []struct {
		file string
		x    func(trend.Rates) float64
	}{
		{"synonymisations.png", func(r trend.Rates) float64 { return r.Synonymization }},
		{"resurrections.png", func(r trend.Rates) float64 { return r.Resurrection }},
	}
	for i, s := range scatters {
		err = ioplot.Scatter(filepath.Join(dir, s.file), corr[i].Name, rates, s.x, corr[i])
		if err != nil {
			return err
		}
	}

	for _, t := range append(fwdTests, bwdTests...) {
		slog.Info("Monotonic trend",
			"checklist", t.Name, "spearman", t.Statistic, "p_value", t.PValue)
	}
	for _, t := range corr {
		slog.Info("Correlation with disagreements",
			"type", t.Name, "spearman", t.Statistic, "p_value", t.PValue)
	}
	gn.Info("Trends are saved to <em>%s</em>", dir)
	return nil
}

func writeSeries(
	dir, direction string,
	ss []trend.Series,
	tests []trend.Test,
	title string,
) error {
	err := iocsv.WriteSeries(filepath.Join(dir, "series_"+direction+".csv"), ss)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, "spearman_tests_"+direction+".csv")
	if err = iocsv.WriteTests(path, "Taxonomy", tests); err != nil {
		return err
	}
	return ioplot.Lines(filepath.Join(dir, direction+".png"), title, ss)
}

// disagreement returns the percentage of species disagreements of a
// pair, comparing the releases when their summary does not exist.
func (p *pipeline) disagreement(
	ctx context.Context,
	cl *checklist.Checklist,
	oldTag, newTag string,
) (float64, error) {
	path := filepath.Join(p.cfg.PairDir(cl.Name, oldTag, newTag), iocsv.SummaryFile)
	if !fileExists(path) {
		if _, err := p.Compare(ctx, cl.Name, []string{oldTag, newTag}); err != nil {
			return 0, err
		}
	}
	s, err := iocsv.ReadSummary(path)
	if err != nil {
		return 0, err
	}
	m, ok := s.Get(summary.SpeciesDisagreements)
	if !ok {
		return 0, TrendInputError(cl.Name,
			fmt.Errorf("%w: %s", ErrNoDisagreement, path))
	}
	return m.Percentage, nil
}

// rollup returns status change rates of a pair, computing the changes
// when they were not saved before.
func (p *pipeline) rollup(
	ctx context.Context,
	cl *checklist.Checklist,
	oldTag, newTag string,
) (changes.Rollup, error) {
	path := filepath.Join(p.cfg.ChangesDir(cl.Name, oldTag, newTag), iocsv.RollupFile)
	if !fileExists(path) {
		return p.Changes(ctx, cl.Name, oldTag, newTag)
	}
	return iocsv.ReadRollup(path)
}

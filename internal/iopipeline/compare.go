package iopipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/taxodrift/internal/iocsv"
	"github.com/gnames/taxodrift/internal/iofs"
	"github.com/gnames/taxodrift/internal/iometrics"
	"github.com/gnames/taxodrift/internal/ioversions"
	"github.com/gnames/taxodrift/pkg/checklist"
	"github.com/gnames/taxodrift/pkg/drift"
	"github.com/gnames/taxodrift/pkg/matcher"
	"github.com/gnames/taxodrift/pkg/summary"
)

// Compare resolves names of the first release through all given releases
// and compares the outcome with direct resolution in the last one. Two
// tags write to the directory of the pair, longer sequences to the chain
// directory.
func (p *pipeline) Compare(
	ctx context.Context,
	name string,
	tags []string,
) (*drift.Result, error) {
	start := time.Now()
	cl, err := p.checklist(name)
	if err != nil {
		return nil, err
	}
	vs, err := ioversions.Sequence(cl, tags)
	if err != nil {
		return nil, err
	}
	if len(vs) < 2 {
		return nil, drift.ChainLengthError(len(vs))
	}

	recss, err := p.resolveAll(ctx, cl, vs)
	if err != nil {
		return nil, err
	}

	keyer := matcher.NewParserKeyer(p.parsers())
	idxs := make([]*matcher.Index, len(vs))
	for i, v := range vs {
		idxs[i], err = matcher.New(ctx, v.Tag, recss[i], keyer, p.cfg.JobsNumber,
			matcher.OptCanonicalFallback(p.cfg.Match.CanonicalFallback))
		if err != nil {
			return nil, err
		}
		recss[i] = nil
	}

	res, err := drift.Chain(ctx, idxs)
	if err != nil {
		return nil, err
	}
	for _, h := range res.Hops {
		slog.Info("Chain hop",
			"hop", h.Number,
			"from", h.From,
			"to", h.To,
			"in", humanize.Comma(int64(h.In)),
			"out", humanize.Comma(int64(h.Out)),
			"not_found", h.NotFound,
			"ambiguous", h.Ambiguous,
			"dropped", h.Dropped(),
		)
	}

	dir := p.resultDir(cl, vs)
	if err = p.writeResult(cl, dir, res); err != nil {
		return nil, err
	}

	sum, err := p.Summarize(dir)
	if err != nil {
		return nil, err
	}
	var pct float64
	if m, ok := sum.Get(summary.SpeciesDisagreements); ok {
		pct = m.Percentage
	}
	slog.Info("Compared releases",
		"checklist", cl.Name,
		"old", res.OldTag(),
		"new", res.NewTag(),
		"compared", humanize.Comma(int64(res.Compared())),
		"dropped_in_chain", res.DroppedInChain(),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	gn.Info(
		"Species disagreements of <em>%s</em> %s → %s: <em>%.2f%%</em>",
		cl.Name, res.OldTag(), res.NewTag(), pct,
	)
	return res, nil
}

func (p *pipeline) resultDir(cl *checklist.Checklist, vs []checklist.Version) string {
	if len(vs) == 2 {
		return p.cfg.PairDir(cl.Name, vs[0].Tag, vs[1].Tag)
	}
	return p.cfg.ChainPath(cl.Name)
}

func (p *pipeline) writeResult(
	cl *checklist.Checklist,
	dir string,
	res *drift.Result,
) error {
	err := iofs.ResetDir(dir)
	if err != nil {
		return err
	}
	if err = iocsv.WriteResult(dir, res); err != nil {
		return err
	}
	if len(res.Tags) > 2 {
		if err = iocsv.WriteHops(dir, res); err != nil {
			return err
		}
	}

	rec := iometrics.New(cl.Name)
	rec.ObserveResult(res)
	for _, tag := range res.Tags {
		if rep, ok := p.report(cl.Name, tag); ok {
			rec.ObserveReport(rep)
		}
	}
	return rec.Write(filepath.Join(dir, iometrics.MetricsFile))
}

// Summarize reads counts and disagreement tables from a result directory
// and writes their summary with percentages.
func (p *pipeline) Summarize(dir string) (summary.Summary, error) {
	counts, err := iocsv.ReadCounts(dir)
	if err != nil {
		return summary.Summary{}, err
	}
	res := summary.New(filepath.Base(dir), counts)
	err = iocsv.WriteSummary(filepath.Join(dir, iocsv.SummaryFile), res)
	if err != nil {
		return summary.Summary{}, err
	}
	return res, nil
}

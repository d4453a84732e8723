package iopipeline

import (
	"context"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gnames/taxodrift/internal/iocsv"
	"github.com/gnames/taxodrift/internal/iofs"
	"github.com/gnames/taxodrift/internal/ioloader"
	"github.com/gnames/taxodrift/internal/ioversions"
	"github.com/gnames/taxodrift/pkg/checklist"
	"github.com/gnames/taxodrift/pkg/resolver"
	"github.com/gnames/taxodrift/pkg/taxon"
)

// Resolve returns resolved records of a release. A resolved table saved
// by an earlier run is reused.
func (p *pipeline) Resolve(
	ctx context.Context,
	name, tag string,
) ([]taxon.Resolved, error) {
	cl, err := p.checklist(name)
	if err != nil {
		return nil, err
	}
	vs, err := ioversions.Sequence(cl, []string{tag})
	if err != nil {
		return nil, err
	}
	res, err := p.resolveAll(ctx, cl, vs)
	if err != nil {
		return nil, err
	}
	return res[0], nil
}

// resolveAll resolves releases in the given order. Releases without a
// saved table are loaded concurrently.
func (p *pipeline) resolveAll(
	ctx context.Context,
	cl *checklist.Checklist,
	vs []checklist.Version,
) ([][]taxon.Resolved, error) {
	res := make([][]taxon.Resolved, len(vs))
	var missing []int
	for i, v := range vs {
		path := p.cfg.ResolvedPath(cl.Name, v.Tag)
		if p.force || !fileExists(path) {
			missing = append(missing, i)
			continue
		}
		recs, err := iocsv.ReadResolved(path)
		if err != nil {
			return nil, err
		}
		slog.Info("Using resolved table",
			"checklist", cl.Name, "tag", v.Tag,
			"records", humanize.Comma(int64(len(recs))))
		res[i] = recs
	}
	if len(missing) == 0 {
		return res, nil
	}

	if err := iofs.EnsureOutputDirs(p.cfg, cl.Name); err != nil {
		return nil, err
	}

	load := make([]checklist.Version, len(missing))
	for j, i := range missing {
		load[j] = vs[i]
	}
	ld := ioloader.New(p.cfg, cl, ioloader.OptProgress(p.progress))
	recss, err := ld.LoadAll(ctx, load)
	if err != nil {
		return nil, err
	}

	for j, i := range missing {
		v := cl.Settings(vs[i])
		limit := v.Threshold(p.cfg.Resolver.MaxUnresolved)
		recs, rep, err := resolver.Resolve(v.Tag, recss[j], limit)
		logReport(cl.Name, rep)
		if err != nil {
			return nil, err
		}
		p.setReport(cl.Name, rep)
		recss[j] = nil

		err = iocsv.WriteResolved(p.cfg.ResolvedPath(cl.Name, v.Tag), recs)
		if err != nil {
			return nil, err
		}
		res[i] = recs
	}
	return res, nil
}

func logReport(cl string, rep resolver.Report) {
	slog.Info("Resolved release",
		"checklist", cl,
		"tag", rep.Tag,
		"input", humanize.Comma(int64(rep.Input)),
		"kept", humanize.Comma(int64(rep.Kept)),
		"no_accepted_id", rep.NoAcceptedID,
		"unresolved", rep.Unresolved,
	)
	for _, st := range rep.Breakdown() {
		slog.Debug("Unresolved accepted targets",
			"tag", rep.Tag, "status", st, "count", rep.UnresolvedTargets[st])
	}
}

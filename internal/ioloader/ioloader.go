// Package ioloader reads checklist releases into taxon records.
//
// A release can be a plain delimited file, a member of a zip archive or
// an SFGA archive. Files may be local, matched by a glob pattern, or
// downloaded from http(s) and s3 locations. Text is decoded to UTF-8 and
// normalized to NFC before parsing.
package ioloader

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/taxodrift/pkg/checklist"
	"github.com/gnames/taxodrift/pkg/config"
	"github.com/gnames/taxodrift/pkg/taxon"
	"golang.org/x/sync/errgroup"
)

// Loader reads releases of one checklist.
type Loader struct {
	cfg      *config.Config
	cl       *checklist.Checklist
	progress bool
	s3       *s3Client
}

// Option configures a Loader.
type Option func(*Loader)

// OptProgress turns progress bars on or off.
func OptProgress(b bool) Option {
	return func(l *Loader) {
		l.progress = b
	}
}

// New creates a Loader for the checklist.
func New(cfg *config.Config, cl *checklist.Checklist, opts ...Option) *Loader {
	res := &Loader{
		cfg:      cfg,
		cl:       cl,
		progress: true,
		s3:       &s3Client{},
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Load reads a release, validates its vocabulary and returns its
// records.
func (l *Loader) Load(ctx context.Context, v checklist.Version) ([]taxon.Record, error) {
	start := time.Now()
	v = l.cl.Settings(v)
	slog.Info("Loading release",
		"checklist", l.cl.Name, "tag", v.Tag, "source", v.Source)

	var recs []taxon.Record
	var err error
	if l.cl.Format == checklist.SFGA {
		recs, err = l.loadSFGA(ctx, v)
	} else {
		recs, err = l.loadTable(ctx, v)
	}
	if err != nil {
		return nil, err
	}

	if err = l.validate(v, recs); err != nil {
		return nil, err
	}

	slog.Info("Loaded release",
		"checklist", l.cl.Name,
		"tag", v.Tag,
		"records", humanize.Comma(int64(len(recs))),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return recs, nil
}

// LoadAll loads several releases concurrently. Progress bars are turned
// off when more than one release is loaded.
func (l *Loader) LoadAll(
	ctx context.Context,
	vs []checklist.Version,
) ([][]taxon.Record, error) {
	ld := l
	if len(vs) > 1 {
		cp := *l
		cp.progress = false
		ld = &cp
	}

	res := make([][]taxon.Record, len(vs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, l.cfg.JobsNumber))
	for i, v := range vs {
		g.Go(func() error {
			recs, err := ld.Load(ctx, v)
			if err != nil {
				return err
			}
			res[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// validate checks statuses and ranks against vocabularies of the
// checklist. Any unexpected value stops the load.
func (l *Loader) validate(v checklist.Version, recs []taxon.Record) error {
	statuses := make(map[string]int)
	ranks := make(map[string]int)
	for i := range recs {
		if s := recs[i].RawStatus; s != "" {
			statuses[s]++
		}
		if r := recs[i].Rank; r != "" {
			ranks[r]++
		}
	}
	slog.Debug("Status distribution", "tag", v.Tag, "statuses", statuses)
	slog.Debug("Rank distribution", "tag", v.Tag, "ranks", ranks)

	bad := checklist.Unexpected(sortedKeys(statuses), v.Statuses)
	if len(bad) > 0 {
		return VocabularyError(v.Tag, "status", bad)
	}
	bad = checklist.Unexpected(sortedKeys(ranks), l.cl.Ranks)
	if len(bad) > 0 {
		return VocabularyError(v.Tag, "rank", bad)
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	res := make([]string, 0, len(m))
	for k := range m {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

func (l *Loader) newBar(total int64, prefix string) *pb.ProgressBar {
	bar := pb.New64(total)
	bar.SetTemplate(pb.Full)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	if !l.progress {
		bar.SetWriter(io.Discard)
	}
	return bar.Start()
}

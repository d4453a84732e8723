package lifecycle

import (
	"context"

	"github.com/gnames/taxodrift/pkg/changes"
	"github.com/gnames/taxodrift/pkg/drift"
	"github.com/gnames/taxodrift/pkg/summary"
	"github.com/gnames/taxodrift/pkg/taxon"
)

// Pipeline runs the stages of a drift analysis. Every stage writes its
// results under the base directory and reuses results of earlier
// stages when they exist.
type Pipeline interface {
	// Resolve loads a release of a checklist and maps its records to
	// accepted records. Resolved tables are cached as CSV files.
	Resolve(ctx context.Context, checklist, tag string) ([]taxon.Resolved, error)

	// Compare resolves names of the oldest of the given releases through
	// all of them and compares chained results with direct resolution in
	// the newest release. Two tags make a pairwise comparison.
	Compare(ctx context.Context, checklist string, tags []string) (*drift.Result, error)

	// Summarize aggregates result files of a comparison directory into
	// result_summary.csv.
	Summarize(dir string) (summary.Summary, error)

	// Changes calculates change statistics between two releases.
	Changes(ctx context.Context, checklist, oldTag, newTag string) (changes.Rollup, error)

	// Trend builds disagreement time series of checklists, tests them for
	// monotonic trends and draws plots.
	Trend(ctx context.Context, checklists []string) error

	// Close releases name parsers.
	Close()
}

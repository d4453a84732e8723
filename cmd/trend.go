/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/gnames/gn"
	"github.com/gnames/taxodrift/pkg/config"
	"github.com/spf13/cobra"
)

// getTrendCmd returns the trend command.
func getTrendCmd() *cobra.Command {
	var permutations, seed int

	trendCmd := &cobra.Command{
		Use:   "trend [checklist...]",
		Short: "Disagreement trends, correlation tests and plots",
		Long: `Build series of species disagreements for checklists and test
them for monotonic change over time.

The forward series compares the first release with every later one,
the backward series compares every earlier release with the last one.
Disagreements of consecutive releases are correlated with
synonymisation and resurrection rates. Missing comparisons and changes
are calculated on the way.

CSV tables and PNG plots are written to <base-dir>/plots.

Examples:
  taxodrift trend
  taxodrift trend wcvp wfo --permutations 100000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runTrend(cmd, args, permutations, seed)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	trendCmd.Flags().IntVarP(&permutations, "permutations", "p", 0,
		"number of permutations of a sampled test")
	trendCmd.Flags().IntVarP(&seed, "seed", "s", 0,
		"seed of permutations")

	return trendCmd
}

func runTrend(cmd *cobra.Command, names []string, permutations, seed int) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var trendOpts []config.Option
	if cmd.Flags().Changed("permutations") {
		trendOpts = append(trendOpts, config.OptTrendPermutations(permutations))
	}
	if cmd.Flags().Changed("seed") {
		trendOpts = append(trendOpts, config.OptTrendSeed(seed))
	}
	cfg.Update(trendOpts)

	p, err := newPipeline(false)
	if err != nil {
		return err
	}
	defer p.Close()

	return p.Trend(ctx, names)
}

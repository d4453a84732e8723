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
	"fmt"
	"os"
	"os/signal"

	"github.com/gnames/gn"
	"github.com/gnames/taxodrift/internal/ioversions"
	"github.com/gnames/taxodrift/pkg/checklist"
	"github.com/gnames/taxodrift/pkg/config"
	"github.com/spf13/cobra"
)

// getCompareCmd returns the compare command.
func getCompareCmd() *cobra.Command {
	var all, fallback bool

	compareCmd := &cobra.Command{
		Use:   "compare <checklist> [old new]",
		Short: "Compare pairs of releases",
		Long: `Compare chained and direct resolution of names for pairs of
releases.

Every name of the old release is resolved to its accepted name. The
accepted name is looked up in the new release (chained path) and the
name itself is looked up in the new release (direct path). Results go
to <base-dir>/<checklist>/outputs/<old>_<new>.

Without tags consecutive releases are compared, --all compares every
ordered pair.

Examples:
  taxodrift compare wcvp v10 v13
  taxodrift compare wfo
  taxodrift compare wfo --all`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCompare(cmd, args, all, fallback)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	compareCmd.Flags().BoolVarP(&all, "all", "a", false,
		"compare all ordered pairs of releases")
	compareCmd.Flags().BoolVarP(&fallback, "canonical-fallback", "c", false,
		"match by canonical form when a full name is absent")

	return compareCmd
}

func runCompare(cmd *cobra.Command, args []string, all, fallback bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cmd.Flags().Changed("canonical-fallback") {
		cfg.Update([]config.Option{config.OptMatchCanonicalFallback(fallback)})
	}

	name := args[0]
	pairs, err := comparePairs(name, args[1:], all)
	if err != nil {
		return err
	}

	p, err := newPipeline(false)
	if err != nil {
		return err
	}
	defer p.Close()

	for _, pr := range pairs {
		_, err = p.Compare(ctx, name, []string{pr.Old.Tag, pr.New.Tag})
		if err != nil {
			return err
		}
	}
	return nil
}

func comparePairs(name string, tags []string, all bool) ([]checklist.Pair, error) {
	cl, err := ioversions.Checklist(cfg, name)
	if err != nil {
		return nil, err
	}
	switch len(tags) {
	case 0:
		if all {
			return cl.Pairs(), nil
		}
		return cl.Consecutive(), nil
	case 2:
		vs, err := ioversions.Sequence(cl, tags)
		if err != nil {
			return nil, err
		}
		return []checklist.Pair{{Old: vs[0], New: vs[1]}}, nil
	}
	return nil, fmt.Errorf("expected old and new tags, got %v", tags)
}

// getChainCmd returns the chain command.
func getChainCmd() *cobra.Command {
	var (
		outDir   string
		fallback bool
	)

	chainCmd := &cobra.Command{
		Use:   "chain <checklist> [tag...]",
		Short: "Compare a sequence of releases",
		Long: `Carry accepted names of the first release through every following
release and compare the result with direct resolution in the last one.

Names that do not resolve to a single accepted name at some hop are
dropped from the chain, their number is reported per hop in
chain_stats.csv and metrics.prom. Without tags all releases are used.

Examples:
  taxodrift chain wcvp
  taxodrift chain wfo 201807 202212 202307 --output-dir wfo_chain`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runChain(cmd, args, outDir, fallback)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	chainCmd.Flags().StringVarP(&outDir, "output-dir", "o", "",
		"name of the output directory of the chain")
	chainCmd.Flags().BoolVarP(&fallback, "canonical-fallback", "c", false,
		"match by canonical form when a full name is absent")

	return chainCmd
}

func runChain(cmd *cobra.Command, args []string, outDir string, fallback bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var chainOpts []config.Option
	if cmd.Flags().Changed("output-dir") {
		chainOpts = append(chainOpts, config.OptChainDir(outDir))
	}
	if cmd.Flags().Changed("canonical-fallback") {
		chainOpts = append(chainOpts, config.OptMatchCanonicalFallback(fallback))
	}
	cfg.Update(chainOpts)

	p, err := newPipeline(false)
	if err != nil {
		return err
	}
	defer p.Close()

	res, err := p.Compare(ctx, args[0], args[1:])
	if err != nil {
		return err
	}
	if n := res.DroppedInChain(); n > 0 {
		gn.Warn(fmt.Sprintf("<warn>%d names were dropped in the chain</warn>", n))
	}
	return nil
}

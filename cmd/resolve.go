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

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/taxodrift/internal/ioversions"
	"github.com/spf13/cobra"
)

// getResolveCmd returns the resolve command.
func getResolveCmd() *cobra.Command {
	var force bool

	resolveCmd := &cobra.Command{
		Use:   "resolve <checklist> [tag...]",
		Short: "Resolve records of releases to their accepted names",
		Long: `Load releases of a checklist and resolve every record to its
accepted record.

Resolved tables are saved as <base-dir>/<checklist>/inputs/<tag>_resolved.csv
and reused by other commands. Without tags all releases are resolved.

Examples:
  taxodrift resolve wcvp v10 v11
  taxodrift resolve wfo --force`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runResolve(args[0], args[1:], force)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	resolveCmd.Flags().BoolVarP(&force, "force", "f", false,
		"resolve again even when resolved tables exist")

	return resolveCmd
}

func runResolve(name string, tags []string, force bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p, err := newPipeline(force)
	if err != nil {
		return err
	}
	defer p.Close()

	if len(tags) == 0 {
		cl, err := ioversions.Checklist(cfg, name)
		if err != nil {
			return err
		}
		tags = cl.Tags()
	}

	for _, tag := range tags {
		recs, err := p.Resolve(ctx, name, tag)
		if err != nil {
			return err
		}
		gn.Info("Resolved <em>%s</em> records of %s %s",
			humanize.Comma(int64(len(recs))), name, tag)
	}
	return nil
}

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
	"path/filepath"

	"github.com/gnames/gn"
	"github.com/gnames/taxodrift/internal/iocsv"
	"github.com/gnames/taxodrift/internal/iodb"
	"github.com/gnames/taxodrift/internal/ioexport"
	"github.com/spf13/cobra"
)

// getExportCmd returns the export command.
func getExportCmd() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export <checklist> <pair-dir>",
		Short: "Export releases and a comparison to PostgreSQL",
		Long: `Save resolved records of both releases of a comparison and the
comparison rows to PostgreSQL.

Tables are created when they do not exist. Data of a release or a
comparison exported before is replaced. Connection settings come from
the database section of config.yaml or TAXODRIFT_DATABASE_* variables.

Examples:
  taxodrift export wcvp ~/taxodrift/wcvp/outputs/v10_v11`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runExport(args[0], args[1])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return exportCmd
}

func runExport(name, dir string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	oldTag, newTag, rows, err := iocsv.ReadComparison(
		filepath.Join(dir, iocsv.ComparisonFile),
	)
	if err != nil {
		return err
	}

	p, err := newPipeline(false)
	if err != nil {
		return err
	}
	defer p.Close()

	op := iodb.NewPgxOperator()
	if err = op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	exp, err := ioexport.New(op, cfg)
	if err != nil {
		return err
	}
	if err = exp.Migrate(ctx); err != nil {
		return err
	}

	for _, tag := range []string{oldTag, newTag} {
		recs, err := p.Resolve(ctx, name, tag)
		if err != nil {
			return err
		}
		if err = exp.ExportRelease(ctx, name, tag, recs); err != nil {
			return err
		}
	}

	if err = exp.ExportComparison(ctx, name, oldTag, newTag, rows); err != nil {
		return err
	}

	gn.Info("Exported <em>%s</em> %s → %s", name, oldTag, newTag)
	return nil
}

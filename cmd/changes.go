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
	"github.com/spf13/cobra"
)

// getChangesCmd returns the changes command.
func getChangesCmd() *cobra.Command {
	changesCmd := &cobra.Command{
		Use:   "changes <checklist> [old new]",
		Short: "Status changes between releases",
		Long: `Calculate species differences, synonymisations, resurrections and
names lost between two releases.

Tables are written to <base-dir>/changes/<checklist>/<old>_<new>.
Typification of disagreements is added when the pair was compared
before. Without tags all consecutive releases are processed.

Examples:
  taxodrift changes wcvp v10 v11
  taxodrift changes wfo`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runChanges(args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return changesCmd
}

func runChanges(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	name := args[0]
	pairs, err := comparePairs(name, args[1:], false)
	if err != nil {
		return err
	}

	p, err := newPipeline(false)
	if err != nil {
		return err
	}
	defer p.Close()

	for _, pr := range pairs {
		roll, err := p.Changes(ctx, name, pr.Old.Tag, pr.New.Tag)
		if err != nil {
			return err
		}
		gn.Info("%s %s → %s: synonymisation <em>%.2f%%</em>, resurrection <em>%.2f%%</em>",
			name, roll.OldTag, roll.NewTag, roll.Synonymization, roll.Resurrection)
	}
	return nil
}

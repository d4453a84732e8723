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
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/taxodrift/internal/ioversions"
	"github.com/gnames/taxodrift/pkg/checklist"
	"github.com/spf13/cobra"
)

// getVersionsCmd returns the versions command.
func getVersionsCmd() *cobra.Command {
	versionsCmd := &cobra.Command{
		Use:   "versions [checklist...]",
		Short: "List checklists and their releases",
		Long: `List checklists and releases described in versions.yaml.

Releases are given in chronological order, the order is used by
chains and trends.

Examples:
  taxodrift versions
  taxodrift versions wcvp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runVersions(args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return versionsCmd
}

func runVersions(names []string) error {
	reg, err := ioversions.Load(cfg)
	if err != nil {
		return err
	}

	cls := reg.Checklists
	if len(names) > 0 {
		cls = make([]checklist.Checklist, 0, len(names))
		for _, name := range names {
			cl, err := ioversions.Find(reg, name)
			if err != nil {
				return err
			}
			cls = append(cls, *cl)
		}
	}

	for _, cl := range cls {
		fmt.Printf("\n%s (%s)\n", cl.Name, cl.Format)
		for _, v := range cl.Versions {
			fmt.Printf("  %-10s %-10s %s\n", v.Tag, v.Date, v.Source)
		}
	}
	fmt.Println()

	for _, w := range reg.Warnings {
		gn.Warn(fmt.Sprintf("<warn>%s: %s</warn> %s",
			w.Checklist, w.Message, w.Suggestion))
	}
	return nil
}

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
	"github.com/gnames/taxodrift/pkg/summary"
	"github.com/spf13/cobra"
)

// getSummarizeCmd returns the summarize command.
func getSummarizeCmd() *cobra.Command {
	summarizeCmd := &cobra.Command{
		Use:   "summarize <dir...>",
		Short: "Summarize comparison directories",
		Long: `Recalculate result_summary.csv of comparison directories from their
counts and disagreement tables.

Percentages are relative to the number of compared names.

Examples:
  taxodrift summarize ~/taxodrift/wcvp/outputs/v10_v11`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSummarize(args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return summarizeCmd
}

func runSummarize(dirs []string) error {
	p, err := newPipeline(false)
	if err != nil {
		return err
	}
	defer p.Close()

	for _, dir := range dirs {
		s, err := p.Summarize(dir)
		if err != nil {
			return err
		}
		printSummary(s)
	}
	return nil
}

func printSummary(s summary.Summary) {
	fmt.Printf("\n%s\n", s.Label)
	for _, m := range s.Metrics {
		fmt.Printf("  %-24s %10d %8.2f%%\n", m.Name, m.Count, m.Percentage)
	}
	fmt.Println()
}

// Package iocsv reads and writes CSV files of TaxoDrift: resolved
// releases, comparison results, summaries, change statistics and
// correlation tests.
package iocsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// Output file names of a comparison directory.
const (
	ComparisonFile = "comparison.csv"
	AllResultsFile = "all_results.csv"
	SpeciesFile    = "species_results.csv"
	GenusFile      = "genus_results.csv"
	UnresolvedFile = "unresolved.csv"
	CountsFile     = "counts.csv"
	ChainStatsFile = "chain_stats.csv"
	SummaryFile    = "result_summary.csv"
)

// writeCSV writes a header and rows to path, replacing the file.
func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return WriteFileError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err = w.Write(header); err != nil {
		return WriteFileError(path, err)
	}
	if err = w.WriteAll(rows); err != nil {
		return WriteFileError(path, err)
	}
	if err = f.Close(); err != nil {
		return WriteFileError(path, err)
	}
	return nil
}

// sheet is a CSV file read into memory.
type sheet struct {
	idx  map[string]int
	rows [][]string
}

func readCSV(path string, required ...string) (*sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, ReadFileError(path, fmt.Errorf("%w: empty file", ErrColumns))
	}
	if err != nil {
		return nil, ReadFileError(path, err)
	}

	res := &sheet{idx: make(map[string]int, len(header))}
	for i, h := range header {
		res.idx[h] = i
	}
	for _, c := range required {
		if _, ok := res.idx[c]; !ok {
			return nil, ReadFileError(path, fmt.Errorf("%w: no %q", ErrColumns, c))
		}
	}

	if res.rows, err = r.ReadAll(); err != nil {
		return nil, ReadFileError(path, err)
	}
	return res, nil
}

func (s *sheet) get(row []string, col string) string {
	i, ok := s.idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// count returns the number of rows where col is true.
func (s *sheet) count(col string) int {
	var res int
	for _, row := range s.rows {
		if b, _ := strconv.ParseBool(s.get(row, col)); b {
			res++
		}
	}
	return res
}

func fmtFloat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

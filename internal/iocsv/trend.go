package iocsv

import (
	"time"

	"github.com/gnames/taxodrift/pkg/trend"
)

// WriteTests saves correlation tests. nameCol is the header of the
// column with test names ("Taxonomy" or "Type").
func WriteTests(path, nameCol string, tests []trend.Test) error {
	rows := make([][]string, len(tests))
	for i, t := range tests {
		rows[i] = []string{t.Name, fmtFloat(t.Statistic), fmtFloat(t.PValue)}
	}
	header := []string{nameCol, "Spearman Correlation", "P-value"}
	return writeCSV(path, header, rows)
}

// WriteSeries saves points of time series.
func WriteSeries(path string, ss []trend.Series) error {
	var rows [][]string
	for _, s := range ss {
		for _, p := range s.Points {
			rows = append(rows, []string{
				s.Name, p.Tag, p.Date.Format(time.DateOnly), fmtFloat(p.Value),
			})
		}
	}
	return writeCSV(path, []string{"series", "tag", "date", "value"}, rows)
}

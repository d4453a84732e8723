package iocsv

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gnames/taxodrift/pkg/changes"
)

// RollupFile keeps synonymisation and resurrection rates of a pair.
const RollupFile = "change_rollup.csv"

// WriteTable saves a change summary. The count column is named by label.
func WriteTable(path, label string, t changes.Table) error {
	rows := make([][]string, len(t))
	for i, l := range t {
		rows[i] = []string{l.Label, strconv.Itoa(l.Count), fmtFloat(l.Percentage)}
	}
	return writeCSV(path, []string{"metric", label, "Percentages"}, rows)
}

// WriteNames saves a list of names in one column.
func WriteNames(path, col string, names []string) error {
	rows := make([][]string, len(names))
	for i, n := range names {
		rows[i] = []string{n}
	}
	return writeCSV(path, []string{col}, rows)
}

// TransitionFile returns the file name for transitions of a status.
func TransitionFile(prefix, status string) string {
	st := strings.ToLower(strings.Join(strings.Fields(status), "_"))
	return fmt.Sprintf("%s_%s.csv", prefix, st)
}

// WriteTransitions saves transitions of every status to its own file in
// dir.
func WriteTransitions(dir, prefix string, sc changes.StatusChanges) error {
	header := []string{
		colName, "old_status", "new_status", "new_accepted_name_w_author",
		colTypif,
	}
	for _, st := range sc.Statuses() {
		trs := sc.ByStatus[st]
		rows := make([][]string, len(trs))
		for i, tr := range trs {
			rows[i] = []string{
				tr.Name, tr.OldStatus, tr.NewStatus, tr.NewAccepted,
				tr.Typification.String(),
			}
		}
		path := filepath.Join(dir, TransitionFile(prefix, st))
		if err := writeCSV(path, header, rows); err != nil {
			return err
		}
	}
	return nil
}

var rollupHeader = []string{"old", "new", "synonymisation", "resurrection"}

// WriteRollup saves rates of a pair.
func WriteRollup(path string, r changes.Rollup) error {
	row := []string{
		r.OldTag, r.NewTag, fmtFloat(r.Synonymization), fmtFloat(r.Resurrection),
	}
	return writeCSV(path, rollupHeader, [][]string{row})
}

// ReadRollup loads rates written by WriteRollup.
func ReadRollup(path string) (changes.Rollup, error) {
	var res changes.Rollup
	s, err := readCSV(path, rollupHeader...)
	if err != nil {
		return res, err
	}
	if len(s.rows) != 1 {
		return res, ReadFileError(path,
			fmt.Errorf("expected one row, got %d", len(s.rows)))
	}

	row := s.rows[0]
	res.OldTag = s.get(row, "old")
	res.NewTag = s.get(row, "new")
	if res.Synonymization, err = parseFloat(s.get(row, "synonymisation")); err != nil {
		return res, ReadFileError(path, err)
	}
	if res.Resurrection, err = parseFloat(s.get(row, "resurrection")); err != nil {
		return res, ReadFileError(path, err)
	}
	return res, nil
}

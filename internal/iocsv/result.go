package iocsv

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gnames/taxodrift/pkg/drift"
	"github.com/gnames/taxodrift/pkg/summary"
	"github.com/gnames/taxodrift/pkg/taxon"
)

const (
	colName        = "taxon_name_w_authors"
	colTypif       = "typification"
	colNameDisagr  = "name_disagreement"
	colSpDisagr    = "species_disagreement"
	colGenusDisagr = "genus_disagreement"
	colResurrected = "resurrected"
	colSynonymized = "synonymized"
)

func comparisonHeader(oldTag, newTag string) []string {
	return []string{
		colName,
		oldTag + "_status",
		colTypif,
		oldTag + "_accepted_name_w_author",
		oldTag + "_accepted_species",
		newTag + "_chained_accepted_name_w_author",
		newTag + "_chained_accepted_species",
		newTag + "_chained_accepted_genus",
		newTag + "_direct_status",
		newTag + "_direct_accepted_name_w_author",
		newTag + "_direct_accepted_species",
		newTag + "_direct_accepted_genus",
		colNameDisagr, colSpDisagr, colGenusDisagr,
		colResurrected, colSynonymized,
	}
}

func comparisonRow(r drift.Row) []string {
	return []string{
		r.Name,
		r.OldStatus.String(),
		r.Typification.String(),
		r.OldAccepted,
		r.OldAcceptedSpecies,
		r.ChainedAccepted,
		r.ChainedSpecies,
		r.ChainedGenus,
		r.DirectStatus.String(),
		r.DirectAccepted,
		r.DirectSpecies,
		r.DirectGenus,
		boolStr(r.NameDisagreement),
		boolStr(r.SpeciesDisagreement),
		boolStr(r.GenusDisagreement),
		boolStr(r.Resurrected),
		boolStr(r.Synonymized),
	}
}

func writeRows(path string, header []string, rows []drift.Row) error {
	res := make([][]string, len(rows))
	for i := range rows {
		res[i] = comparisonRow(rows[i])
	}
	return writeCSV(path, header, res)
}

// WriteResult saves comparison rows, disagreements, misses and statistics
// of a comparison to dir.
func WriteResult(dir string, r *drift.Result) error {
	header := comparisonHeader(r.OldTag(), r.NewTag())
	files := []struct {
		name string
		rows []drift.Row
	}{
		{ComparisonFile, r.Rows},
		{AllResultsFile, r.NameDisagreements()},
		{SpeciesFile, r.SpeciesDisagreements()},
		{GenusFile, r.GenusDisagreements()},
	}
	for _, f := range files {
		err := writeRows(filepath.Join(dir, f.name), header, f.rows)
		if err != nil {
			return err
		}
	}

	misses := make([][]string, len(r.Misses))
	for i, m := range r.Misses {
		misses[i] = []string{m.Name, string(m.Stage), m.Tag, m.Kind.String()}
	}
	err := writeCSV(filepath.Join(dir, UnresolvedFile),
		[]string{colName, "stage", "tag", "reason"}, misses)
	if err != nil {
		return err
	}

	counts := [][]string{
		{summary.TotalNames, strconv.Itoa(r.Total)},
		{summary.UnresolvedOld, strconv.Itoa(r.UnresolvedOld)},
		{summary.UnresolvedDirect, strconv.Itoa(r.UnresolvedDirect)},
		{summary.ComparedNames, strconv.Itoa(r.Compared())},
	}
	err = writeCSV(filepath.Join(dir, CountsFile), []string{"metric", "count"}, counts)
	if err != nil {
		return err
	}

	return writeChainStats(filepath.Join(dir, ChainStatsFile), r.Hops)
}

func writeChainStats(path string, hops []drift.Hop) error {
	header := []string{
		"hop", "from", "to", "in", "out", "not_found", "ambiguous", "dropped",
	}
	rows := make([][]string, len(hops))
	for i, h := range hops {
		rows[i] = []string{
			strconv.Itoa(h.Number), h.From, h.To,
			strconv.Itoa(h.In), strconv.Itoa(h.Out),
			strconv.Itoa(h.NotFound), strconv.Itoa(h.Ambiguous),
			strconv.Itoa(h.Dropped()),
		}
	}
	return writeCSV(path, header, rows)
}

// HopFile returns the name of the file with survivors of a hop.
func HopFile(h drift.Hop) string {
	return fmt.Sprintf("hop_%d_%s.csv", h.Number, h.To)
}

// WriteHops saves survivors of every hop of a chain to dir.
func WriteHops(dir string, r *drift.Result) error {
	for _, h := range r.Hops {
		header := []string{
			colName,
			r.OldTag() + "_accepted_name_w_author",
			h.To + "_accepted_name_w_author",
			h.To + "_accepted_species",
			h.To + "_accepted_genus",
			"by_canonical",
		}
		rows := make([][]string, len(h.Links))
		for i, l := range h.Links {
			rows[i] = []string{
				l.Name,
				l.Old.AcceptedNameWithAuthors,
				l.Current.AcceptedNameWithAuthors,
				l.Current.AcceptedSpecies,
				l.Current.AcceptedGenus,
				boolStr(l.Current.ByCanonical),
			}
		}
		if err := writeCSV(filepath.Join(dir, HopFile(h)), header, rows); err != nil {
			return err
		}
	}
	return nil
}

// ReadComparison loads rows of comparison.csv or one of the
// disagreement files. Tags are taken from the header.
func ReadComparison(path string) (oldTag, newTag string, rows []drift.Row, err error) {
	s, err := readCSV(path, colName, colTypif, colNameDisagr)
	if err != nil {
		return "", "", nil, err
	}

	for k := range s.idx {
		switch {
		case strings.HasSuffix(k, "_direct_status"):
			newTag = strings.TrimSuffix(k, "_direct_status")
		case strings.HasSuffix(k, "_status"):
			oldTag = strings.TrimSuffix(k, "_status")
		}
	}
	if oldTag == "" || newTag == "" {
		return "", "", nil, ComparisonHeaderError(path)
	}

	header := comparisonHeader(oldTag, newTag)
	parseBool := func(row []string, col string) bool {
		b, _ := strconv.ParseBool(s.get(row, col))
		return b
	}
	rows = make([]drift.Row, len(s.rows))
	for i, row := range s.rows {
		rows[i] = drift.Row{
			Name:                s.get(row, header[0]),
			OldStatus:           taxon.NewStatus(s.get(row, header[1])),
			Typification:        taxon.NewTypification(s.get(row, header[2])),
			OldAccepted:         s.get(row, header[3]),
			OldAcceptedSpecies:  s.get(row, header[4]),
			ChainedAccepted:     s.get(row, header[5]),
			ChainedSpecies:      s.get(row, header[6]),
			ChainedGenus:        s.get(row, header[7]),
			DirectStatus:        taxon.NewStatus(s.get(row, header[8])),
			DirectAccepted:      s.get(row, header[9]),
			DirectSpecies:       s.get(row, header[10]),
			DirectGenus:         s.get(row, header[11]),
			NameDisagreement:    parseBool(row, colNameDisagr),
			SpeciesDisagreement: parseBool(row, colSpDisagr),
			GenusDisagreement:   parseBool(row, colGenusDisagr),
			Resurrected:         parseBool(row, colResurrected),
			Synonymized:         parseBool(row, colSynonymized),
		}
	}
	return oldTag, newTag, rows, nil
}

// ReadCounts collects summary counts from result files of a comparison
// directory.
func ReadCounts(dir string) (summary.Counts, error) {
	var res summary.Counts

	cnt, err := readCSV(filepath.Join(dir, CountsFile), "metric", "count")
	if err != nil {
		return res, SummaryInputError(dir, err)
	}
	for _, row := range cnt.rows {
		n, err := strconv.Atoi(cnt.get(row, "count"))
		if err != nil {
			return res, SummaryInputError(dir, err)
		}
		switch cnt.get(row, "metric") {
		case summary.TotalNames:
			res.Total = n
		case summary.UnresolvedOld:
			res.UnresolvedOld = n
		case summary.UnresolvedDirect:
			res.UnresolvedDirect = n
		}
	}

	hops, err := readCSV(filepath.Join(dir, ChainStatsFile), "dropped")
	if err != nil {
		return res, SummaryInputError(dir, err)
	}
	for _, row := range hops.rows {
		n, err := strconv.Atoi(hops.get(row, "dropped"))
		if err != nil {
			return res, SummaryInputError(dir, err)
		}
		res.DroppedInChain += n
	}

	cmp, err := readCSV(filepath.Join(dir, ComparisonFile), colName)
	if err != nil {
		return res, SummaryInputError(dir, err)
	}
	res.Compared = len(cmp.rows)
	res.Resurrected = cmp.count(colResurrected)
	res.Synonymized = cmp.count(colSynonymized)

	for _, v := range []struct {
		file string
		n    *int
	}{
		{AllResultsFile, &res.NameDisagreements},
		{SpeciesFile, &res.SpeciesDisagreements},
		{GenusFile, &res.GenusDisagreements},
	} {
		s, err := readCSV(filepath.Join(dir, v.file), colName)
		if err != nil {
			return res, SummaryInputError(dir, err)
		}
		*v.n = len(s.rows)
	}
	return res, nil
}

// WriteSummary saves a summary as result_summary.csv table.
func WriteSummary(path string, s summary.Summary) error {
	rows := make([][]string, len(s.Metrics))
	for i, m := range s.Metrics {
		rows[i] = []string{m.Name, strconv.Itoa(m.Count), fmtFloat(m.Percentage)}
	}
	return writeCSV(path, []string{"metric", s.Label, "Percentages"}, rows)
}

// ReadSummary loads a summary written by WriteSummary.
func ReadSummary(path string) (summary.Summary, error) {
	var res summary.Summary
	s, err := readCSV(path, "metric", "Percentages")
	if err != nil {
		return res, err
	}
	for k, i := range s.idx {
		if i == 1 {
			res.Label = k
		}
	}

	for _, row := range s.rows {
		n, err := strconv.Atoi(s.get(row, res.Label))
		if err != nil {
			return res, ReadFileError(path, err)
		}
		pct, err := parseFloat(s.get(row, "Percentages"))
		if err != nil {
			return res, ReadFileError(path, err)
		}
		res.Metrics = append(res.Metrics, summary.Metric{
			Name: s.get(row, "metric"), Count: n, Percentage: pct,
		})
	}
	return res, nil
}

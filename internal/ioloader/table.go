package ioloader

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/taxodrift/pkg/checklist"
	"github.com/gnames/taxodrift/pkg/taxon"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

func (l *Loader) loadTable(
	ctx context.Context,
	v checklist.Version,
) ([]taxon.Record, error) {
	path, err := l.locate(ctx, v.Source)
	if err != nil {
		return nil, err
	}

	rc, size, err := openData(path, v.Member)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	sep, err := v.Rune()
	if err != nil {
		return nil, SourceError(path, err)
	}

	bar := l.newBar(size, "Reading "+l.cl.Name+" "+v.Tag+": ")
	bar.Set(pb.Bytes, true)
	defer bar.Finish()

	r, err := decode(bar.NewProxyReader(rc), v.Encoding)
	if err != nil {
		return nil, err
	}

	m := mapperFor(l.cl.Format)
	return readRecords(ctx, r, sep, v.Tag, m)
}

// readRecords parses delimited text and converts rows with the mapper.
func readRecords(
	ctx context.Context,
	r io.Reader,
	sep rune,
	tag string,
	m mapper,
) ([]taxon.Record, error) {
	tbl, err := newTable(r, sep)
	if err != nil {
		return nil, SourceError(tag, err)
	}
	if missing := tbl.missing(m.required); len(missing) > 0 {
		return nil, HeaderError(tag, missing)
	}

	var res []taxon.Record
	for i := 0; ; i++ {
		if i%10_000 == 0 {
			if err = ctx.Err(); err != nil {
				return nil, err
			}
		}
		row, err := tbl.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, SourceError(tag, err)
		}
		if rec, ok := m.convert(row); ok {
			res = append(res, rec)
		}
	}
	return res, nil
}

// readCloser closes the member of a zip archive and the archive itself.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (rc *readCloser) Close() error {
	var err error
	for _, c := range rc.closers {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

var dataExts = []string{".csv", ".txt", ".tsv"}

// openData opens a plain file or a member of a zip archive. It returns
// the uncompressed size for progress reporting.
func openData(path, member string) (io.ReadCloser, int64, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		f, err := os.Open(path)
		if err != nil {
			return nil, 0, SourceError(path, err)
		}
		var size int64
		if info, err := f.Stat(); err == nil {
			size = info.Size()
		}
		return f, size, nil
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, 0, ArchiveError(path, member, err)
	}

	zf := findMember(zr.File, member)
	if zf == nil {
		zr.Close()
		return nil, 0, ArchiveError(path, member,
			fmt.Errorf("%w: %q", ErrNoMember, member))
	}

	r, err := zf.Open()
	if err != nil {
		zr.Close()
		return nil, 0, ArchiveError(path, zf.Name, err)
	}
	res := &readCloser{Reader: r, closers: []io.Closer{r, zr}}
	return res, int64(zf.UncompressedSize64), nil
}

// findMember matches a member by its full path or base name. Without a
// member name the first delimited text file is used.
func findMember(files []*zip.File, member string) *zip.File {
	for _, f := range files {
		if f.FileInfo().IsDir() {
			continue
		}
		if member == "" {
			ext := strings.ToLower(filepath.Ext(f.Name))
			for _, v := range dataExts {
				if ext == v {
					return f
				}
			}
			continue
		}
		if f.Name == member || filepath.Base(f.Name) == member {
			return f
		}
	}
	return nil
}

// decode converts text from the given encoding to NFC-normalized UTF-8.
func decode(r io.Reader, enc string) (io.Reader, error) {
	var t transform.Transformer
	switch strings.ToLower(enc) {
	case "", "utf-8", "utf8":
		t = unicode.UTF8BOM.NewDecoder()
	case "latin1", "iso-8859-1":
		t = charmap.ISO8859_1.NewDecoder()
	case "windows-1252", "cp1252":
		t = charmap.Windows1252.NewDecoder()
	default:
		return nil, EncodingError(enc)
	}
	return transform.NewReader(r, transform.Chain(t, norm.NFC)), nil
}

// table reads delimited rows and gives access to fields by column name.
type table struct {
	r   *csv.Reader
	idx map[string]int
}

func newTable(r io.Reader, sep rune) (*table, error) {
	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	return &table{r: cr, idx: idx}, nil
}

func (t *table) missing(cols []string) []string {
	var res []string
	for _, c := range cols {
		if _, ok := t.idx[c]; !ok {
			res = append(res, c)
		}
	}
	return res
}

func (t *table) next() (row, error) {
	vals, err := t.r.Read()
	if err != nil {
		return row{}, err
	}
	return row{idx: t.idx, vals: vals}, nil
}

type row struct {
	idx  map[string]int
	vals []string
}

// get returns a trimmed field or an empty string for absent columns and
// short rows.
func (r row) get(col string) string {
	i, ok := r.idx[col]
	if !ok || i >= len(r.vals) {
		return ""
	}
	return strings.TrimSpace(r.vals[i])
}

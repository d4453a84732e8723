package ioloader

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gnsys"
	"github.com/gnames/taxodrift/pkg/checklist"
	"github.com/gnames/taxodrift/pkg/config"
	"github.com/gnames/taxodrift/pkg/taxon"
	"github.com/sfborg/sflib"
	_ "modernc.org/sqlite"
)

const (
	sfgaTaxaQuery = `
		SELECT
			t.col__id, COALESCE(n.col__scientific_name, ''),
			COALESCE(n.col__authorship, ''), COALESCE(n.col__rank_id, ''),
			COALESCE(t.col__status_id, ''), '',
			COALESCE(n.col__genus, ''), COALESCE(n.col__specific_epithet, '')
		FROM taxon t
		JOIN name n ON n.col__id = t.col__name_id
		ORDER BY t.col__id
	`

	sfgaSynonymsQuery = `
		SELECT
			s.col__id, COALESCE(n.col__scientific_name, ''),
			COALESCE(n.col__authorship, ''), COALESCE(n.col__rank_id, ''),
			COALESCE(s.col__status_id, ''), COALESCE(s.col__taxon_id, ''),
			COALESCE(n.col__genus, ''), COALESCE(n.col__specific_epithet, '')
		FROM synonym s
		JOIN name n ON n.col__id = s.col__name_id
		ORDER BY s.col__id
	`
)

func (l *Loader) loadSFGA(
	ctx context.Context,
	v checklist.Version,
) ([]taxon.Record, error) {
	src := v.Source
	if !isURL(src) {
		var err error
		if src, err = l.locate(ctx, src); err != nil {
			return nil, err
		}
	}

	cacheDir := filepath.Join(config.CacheDir(l.cfg.HomeDir), "sfga", l.cl.Name, v.Tag)
	if err := gnsys.MakeDir(cacheDir); err != nil {
		return nil, SFGAError(src, err)
	}
	// sflib refuses a cache with more than one database file
	olds, _ := filepath.Glob(filepath.Join(cacheDir, "*.sqlite"))
	for _, f := range olds {
		os.Remove(f)
	}

	arc := sflib.NewSfga()
	if err := arc.Fetch(src, cacheDir); err != nil {
		return nil, SFGAError(src, fmt.Errorf("failed to fetch SFGA: %w", err))
	}

	dbPath := arc.DbPath()
	if dbPath == "" {
		return nil, SFGAError(src, fmt.Errorf("no database after fetch"))
	}
	return l.readSFGA(ctx, dbPath)
}

// readSFGA reads accepted taxa and synonyms from an SFGA SQLite file.
func (l *Loader) readSFGA(ctx context.Context, dbPath string) ([]taxon.Record, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, SFGAError(dbPath, err)
	}
	defer db.Close()

	var total int
	err = db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM taxon) + (SELECT COUNT(*) FROM synonym)`,
	).Scan(&total)
	if err != nil {
		return nil, SFGAError(dbPath, fmt.Errorf("failed to count records: %w", err))
	}

	bar := l.newBar(int64(total), "Reading SFGA records: ")
	defer bar.Finish()

	res := make([]taxon.Record, 0, total)
	res, err = querySFGA(ctx, db, sfgaTaxaQuery, "accepted", res, bar)
	if err != nil {
		return nil, SFGAError(dbPath, err)
	}
	res, err = querySFGA(ctx, db, sfgaSynonymsQuery, "synonym", res, bar)
	if err != nil {
		return nil, SFGAError(dbPath, err)
	}
	return res, nil
}

// querySFGA appends records of a query to res. Empty statuses get the
// default one.
func querySFGA(
	ctx context.Context,
	db *sql.DB,
	query, defaultStatus string,
	res []taxon.Record,
	bar *pb.ProgressBar,
) ([]taxon.Record, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query SFGA: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, name, authors, rank, status, accID, genus, epithet string
		err = rows.Scan(&id, &name, &authors, &rank, &status, &accID, &genus, &epithet)
		if err != nil {
			return nil, fmt.Errorf("failed to scan SFGA row: %w", err)
		}
		if status == "" {
			status = defaultStatus
		}
		rank = taxon.NormalizeRank(rank)
		if rank == "genus" && genus == "" {
			genus = name
		}

		rec := taxon.Record{
			ID:              id,
			Name:            name,
			Authors:         authors,
			NameWithAuthors: taxon.JoinName(name, authors),
			Rank:            rank,
			Status:          taxon.NewStatus(status),
			RawStatus:       status,
			AcceptedUsageID: accID,
			Genus:           genus,
			Species:         taxon.SpeciesName(genus, epithet),
		}
		rec.Typification = rec.TypeRelation()
		res = append(res, rec)
		bar.Increment()
	}
	return res, rows.Err()
}

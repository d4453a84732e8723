// Package ioexport saves resolved releases and comparison results to
// PostgreSQL. Tables are created by GORM AutoMigrate, rows are replaced
// in a transaction and loaded with COPY.
package ioexport

import (
	"context"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/taxodrift/pkg/config"
	"github.com/gnames/taxodrift/pkg/db"
	"github.com/gnames/taxodrift/pkg/drift"
	"github.com/gnames/taxodrift/pkg/taxon"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Exporter writes data through a connected operator.
type Exporter struct {
	op        db.Operator
	batchSize int
	gdb       *gorm.DB
}

// New creates an Exporter. The operator must be connected.
func New(op db.Operator, cfg *config.Config) (*Exporter, error) {
	pool := op.Pool()
	if pool == nil {
		return nil, SchemaError(errNotConnected)
	}

	gdb, err := gorm.Open(
		postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(pool)}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, SchemaError(err)
	}

	batch := cfg.Database.BatchSize
	if batch <= 0 {
		batch = 50_000
	}
	return &Exporter{op: op, batchSize: batch, gdb: gdb}, nil
}

// Migrate creates or updates export tables.
func (e *Exporter) Migrate(ctx context.Context) error {
	if err := e.gdb.WithContext(ctx).AutoMigrate(AllModels()...); err != nil {
		return SchemaError(err)
	}
	return nil
}

// ExportRelease replaces records of a release. The release row and its
// records are written in one transaction.
func (e *Exporter) ExportRelease(
	ctx context.Context,
	checklist, tag string,
	recs []taxon.Resolved,
) error {
	table := ResolvedRecord{}.TableName()
	rows := make([][]any, len(recs))

	n, err := e.replace(ctx, table, recordColumns, func(tx pgx.Tx) ([][]any, error) {
		var id int64
		err := tx.QueryRow(ctx, upsertRelease,
			checklist, tag, len(recs), time.Now()).Scan(&id)
		if err != nil {
			return nil, err
		}
		_, err = tx.Exec(ctx, "DELETE FROM resolved_records WHERE release_id = $1", id)
		if err != nil {
			return nil, err
		}
		for i, r := range recs {
			rows[i] = recordRow(id, r)
		}
		return rows, nil
	})
	if err != nil {
		return err
	}
	slog.Info("Exported release",
		"checklist", checklist, "tag", tag, "records", humanize.Comma(n))
	return nil
}

// ExportComparison replaces rows of a comparison in one transaction.
func (e *Exporter) ExportComparison(
	ctx context.Context,
	checklist, oldTag, newTag string,
	rows []drift.Row,
) error {
	table := ComparisonRow{}.TableName()
	data := make([][]any, len(rows))

	n, err := e.replace(ctx, table, comparisonColumns, func(tx pgx.Tx) ([][]any, error) {
		var id int64
		err := tx.QueryRow(ctx, upsertComparison,
			checklist, oldTag, newTag, len(rows), time.Now()).Scan(&id)
		if err != nil {
			return nil, err
		}
		_, err = tx.Exec(ctx, "DELETE FROM comparison_rows WHERE comparison_id = $1", id)
		if err != nil {
			return nil, err
		}
		for i, r := range rows {
			data[i] = comparisonRow(id, r)
		}
		return data, nil
	})
	if err != nil {
		return err
	}
	slog.Info("Exported comparison",
		"checklist", checklist, "old", oldTag, "new", newTag,
		"rows", humanize.Comma(n))
	return nil
}

const (
	upsertRelease = `
		INSERT INTO releases (checklist, tag, records, exported_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (checklist, tag)
		DO UPDATE SET records = EXCLUDED.records, exported_at = EXCLUDED.exported_at
		RETURNING id
	`

	upsertComparison = `
		INSERT INTO comparisons (checklist, old_tag, new_tag, "rows", exported_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (checklist, old_tag, new_tag)
		DO UPDATE SET "rows" = EXCLUDED."rows", exported_at = EXCLUDED.exported_at
		RETURNING id
	`
)

// replace runs prepare and loads the rows it returns with COPY in one
// transaction. Nothing is changed if any step fails.
func (e *Exporter) replace(
	ctx context.Context,
	table string,
	columns []string,
	prepare func(pgx.Tx) ([][]any, error),
) (int64, error) {
	pool := e.op.Pool()
	if pool == nil {
		return 0, CopyError(table, errNotConnected)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, CopyError(table, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := prepare(tx)
	if err != nil {
		return 0, CopyError(table, err)
	}

	n, err := e.copy(ctx, tx, table, columns, rows)
	if err != nil {
		return 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, CopyError(table, err)
	}
	return n, nil
}

// copy loads rows in batches with COPY.
func (e *Exporter) copy(
	ctx context.Context,
	tx pgx.Tx,
	table string,
	columns []string,
	rows [][]any,
) (int64, error) {
	bar := pb.New(len(rows))
	bar.SetTemplate(pb.Full)
	bar.Set("prefix", "Exporting "+table+": ")
	bar.Set(pb.CleanOnFinish, true)
	bar.Start()
	defer bar.Finish()

	var total int64
	for _, batch := range batches(rows, e.batchSize) {
		n, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{table},
			columns,
			pgx.CopyFromRows(batch),
		)
		if err != nil {
			return total, CopyError(table, err)
		}
		total += n
		bar.Add(len(batch))
	}
	return total, nil
}

func batches(rows [][]any, size int) [][][]any {
	var res [][][]any
	for i := 0; i < len(rows); i += size {
		end := min(i+size, len(rows))
		res = append(res, rows[i:end])
	}
	return res
}

func recordRow(releaseID int64, r taxon.Resolved) []any {
	return []any{
		releaseID, r.ID, r.Name, r.NameWithAuthors, r.Rank, r.RawStatus,
		r.AcceptedID, r.AcceptedNameWithAuthors, r.AcceptedSpecies,
		r.AcceptedGenus,
	}
}

func comparisonRow(comparisonID int64, r drift.Row) []any {
	return []any{
		comparisonID, r.Name, r.OldStatus.String(), r.OldAccepted,
		r.ChainedAccepted, r.ChainedSpecies, r.DirectAccepted,
		r.DirectSpecies, r.NameDisagreement, r.SpeciesDisagreement,
		r.GenusDisagreement, r.Resurrected, r.Synonymized,
	}
}

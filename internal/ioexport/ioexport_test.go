package ioexport

import (
	"context"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/taxodrift/internal/iodb"
	"github.com/gnames/taxodrift/internal/iotesting"
	"github.com/gnames/taxodrift/pkg/config"
	"github.com/gnames/taxodrift/pkg/drift"
	"github.com/gnames/taxodrift/pkg/taxon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatches(t *testing.T) {
	rows := make([][]any, 5)
	assert.Len(t, batches(rows, 2), 3)
	assert.Len(t, batches(rows, 5), 1)
	assert.Empty(t, batches(nil, 5))
}

func TestRows(t *testing.T) {
	rec := taxon.Resolved{
		Record: taxon.Record{
			ID: "1", Name: "Aus bus", NameWithAuthors: "Aus bus L.",
			RawStatus: "Accepted",
		},
		AcceptedID: "1",
	}
	assert.Len(t, recordRow(1, rec), len(recordColumns))

	row := comparisonRow(1, drift.Row{Name: "Aus bus L.", OldStatus: taxon.Synonym})
	require.Len(t, row, len(comparisonColumns))
	assert.Equal(t, "Synonym", row[2])
}

func TestNewNotConnected(t *testing.T) {
	_, err := New(iodb.NewPgxOperator(), config.New())
	require.NotNil(t, err)
	_, ok := err.(*gn.Error)
	assert.True(t, ok)
}

func TestExport(t *testing.T) {
	cfg := iotesting.Config()
	op := iotesting.Operator(t, cfg)
	ctx := context.Background()

	exp, err := New(op, cfg)
	require.Nil(t, err)
	require.Nil(t, exp.Migrate(ctx))

	recs := []taxon.Resolved{
		{Record: taxon.Record{ID: "1", Name: "Aus bus", RawStatus: "Accepted"}},
		{Record: taxon.Record{ID: "2", Name: "Aus cus", RawStatus: "Synonym"}},
	}
	// exporting twice replaces records
	require.Nil(t, exp.ExportRelease(ctx, "wcvp", "v10", recs))
	require.Nil(t, exp.ExportRelease(ctx, "wcvp", "v10", recs))

	var count int64
	err = exp.gdb.Model(&ResolvedRecord{}).
		Joins("JOIN releases ON releases.id = resolved_records.release_id").
		Where("releases.checklist = ? AND releases.tag = ?", "wcvp", "v10").
		Count(&count).Error
	require.Nil(t, err)
	assert.Equal(t, int64(2), count)

	rows := []drift.Row{{Name: "Aus cus", NameDisagreement: true}}
	require.Nil(t, exp.ExportComparison(ctx, "wcvp", "v10", "v11", rows))

	ok, err := op.TableExists(ctx, ComparisonRow{}.TableName())
	require.Nil(t, err)
	assert.True(t, ok)
}

func TestExportRollback(t *testing.T) {
	cfg := iotesting.Config()
	op := iotesting.Operator(t, cfg)
	ctx := context.Background()

	exp, err := New(op, cfg)
	require.Nil(t, err)
	require.Nil(t, exp.Migrate(ctx))

	// record_id does not fit into its column and COPY fails
	recs := []taxon.Resolved{
		{Record: taxon.Record{ID: strings.Repeat("x", 200), Name: "Aus bus"}},
	}
	err = exp.ExportRelease(ctx, "wcvp", "rollback", recs)
	require.NotNil(t, err)

	var count int64
	err = exp.gdb.Model(&Release{}).
		Where("checklist = ? AND tag = ?", "wcvp", "rollback").
		Count(&count).Error
	require.Nil(t, err)
	assert.Zero(t, count)
}

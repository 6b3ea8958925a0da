package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Snapshot is the schema context embedded into the generation prompt:
// columns in table-definition order plus a handful of sample rows. It is
// rebuilt per request and never cached here.
type Snapshot struct {
	Columns []Column `json:"columns"`
	Samples []Record `json:"samples"`
}

// SnapshotBuilder introspects one table of the configured store. Driver
// decides the introspection dialect; SampleRows caps the sample query.
type SnapshotBuilder struct {
	DB         *sql.DB
	Driver     string
	Table      string
	SampleRows int
}

func (b *SnapshotBuilder) Snapshot(ctx context.Context) (Snapshot, error) {
	table := b.Table
	if table == "" {
		table = TableName
	}
	sampleRows := b.SampleRows
	if sampleRows <= 0 {
		sampleRows = 3
	}

	columns, err := b.introspectColumns(ctx, table)
	if err != nil {
		return Snapshot{}, err
	}
	if len(columns) == 0 {
		return Snapshot{}, fmt.Errorf("table %q does not exist", table)
	}

	samples, err := b.sample(ctx, table, sampleRows)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{Columns: columns, Samples: samples}, nil
}

func (b *SnapshotBuilder) introspectColumns(ctx context.Context, table string) ([]Column, error) {
	var (
		rows *sql.Rows
		err  error
	)
	switch b.Driver {
	case "sqlite", "duckdb":
		// pragma_table_info is shared by both dialects and keeps the
		// column list in table-definition order.
		rows, err = b.DB.QueryContext(ctx,
			fmt.Sprintf("SELECT name, type FROM pragma_table_info('%s')", escapeSingleQuotes(table)))
	case "postgres":
		rows, err = b.DB.QueryContext(ctx, `
SELECT column_name, data_type
FROM information_schema.columns
WHERE table_name = $1
ORDER BY ordinal_position`, table)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", b.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("introspect columns for %q: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	columns := make([]Column, 0)
	for rows.Next() {
		var column Column
		if err := rows.Scan(&column.Name, &column.Type); err != nil {
			return nil, fmt.Errorf("scan column row: %w", err)
		}
		columns = append(columns, column)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate column rows: %w", err)
	}
	return columns, nil
}

func (b *SnapshotBuilder) sample(ctx context.Context, table string, limit int) ([]Record, error) {
	rows, err := b.DB.QueryContext(ctx,
		fmt.Sprintf("SELECT * FROM %s LIMIT %d", quoteIdent(table), limit))
	if err != nil {
		return nil, fmt.Errorf("sample rows from %q: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	samples, err := ScanRecords(rows, limit)
	if err != nil {
		return nil, fmt.Errorf("materialize sample rows: %w", err)
	}
	return samples, nil
}

func quoteIdent(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func escapeSingleQuotes(value string) string {
	return strings.ReplaceAll(value, `'`, `''`)
}

package store

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestSnapshotIntrospectsSQLiteSchema(t *testing.T) {
	db, mock := newSQLMock(t)
	builder := &SnapshotBuilder{DB: db, Driver: "sqlite", SampleRows: 3}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT name, type FROM pragma_table_info('supply_chain_orders')")).
		WillReturnRows(sqlmock.NewRows([]string{"name", "type"}).
			AddRow("order_id", "TEXT").
			AddRow("sales", "REAL").
			AddRow("order_region", "TEXT"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "supply_chain_orders" LIMIT 3`)).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "sales", "order_region"}).
			AddRow("ORD-1", 10.5, []byte("Caribbean")).
			AddRow("ORD-2", 20.0, nil))

	snapshot, err := builder.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if len(snapshot.Columns) != 3 {
		t.Fatalf("columns = %d", len(snapshot.Columns))
	}
	if snapshot.Columns[0].Name != "order_id" || snapshot.Columns[1].Type != "REAL" {
		t.Fatalf("columns = %+v", snapshot.Columns)
	}
	if len(snapshot.Samples) != 2 {
		t.Fatalf("samples = %d", len(snapshot.Samples))
	}
	if value, _ := snapshot.Samples[0].Get("order_region"); value != "Caribbean" {
		t.Fatalf("order_region = %v, want byte slice normalized to string", value)
	}
	if value, ok := snapshot.Samples[1].Get("order_region"); !ok || value != nil {
		t.Fatalf("NULL order_region = %v, %v", value, ok)
	}
	assertSQLMock(t, mock)
}

func TestSnapshotIntrospectsPostgresSchema(t *testing.T) {
	db, mock := newSQLMock(t)
	builder := &SnapshotBuilder{DB: db, Driver: "postgres", SampleRows: 1}

	mock.ExpectQuery(regexp.QuoteMeta(`
SELECT column_name, data_type
FROM information_schema.columns
WHERE table_name = $1
ORDER BY ordinal_position`)).
		WithArgs("supply_chain_orders").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type"}).
			AddRow("order_id", "text"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "supply_chain_orders" LIMIT 1`)).
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow("ORD-1"))

	snapshot, err := builder.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if len(snapshot.Columns) != 1 || snapshot.Columns[0].Name != "order_id" {
		t.Fatalf("columns = %+v", snapshot.Columns)
	}
	assertSQLMock(t, mock)
}

func TestSnapshotFailsWhenTableMissing(t *testing.T) {
	db, mock := newSQLMock(t)
	builder := &SnapshotBuilder{DB: db, Driver: "sqlite"}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT name, type FROM pragma_table_info('supply_chain_orders')")).
		WillReturnRows(sqlmock.NewRows([]string{"name", "type"}))

	if _, err := builder.Snapshot(context.Background()); err == nil {
		t.Fatal("Snapshot() expected error for missing table")
	}
	assertSQLMock(t, mock)
}

func TestSnapshotRejectsUnknownDriver(t *testing.T) {
	db, _ := newSQLMock(t)
	builder := &SnapshotBuilder{DB: db, Driver: "oracle"}

	if _, err := builder.Snapshot(context.Background()); err == nil {
		t.Fatal("Snapshot() expected error for unknown driver")
	}
}

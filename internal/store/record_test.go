package store

import (
	"encoding/json"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestRecordMarshalJSONPreservesFieldOrder(t *testing.T) {
	record := Record{
		{Name: "order_id", Value: "ORD-1"},
		{Name: "sales", Value: 199.99},
		{Name: "order_zipcode", Value: nil},
	}

	raw, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"order_id":"ORD-1","sales":199.99,"order_zipcode":null}`
	if string(raw) != want {
		t.Fatalf("Marshal() = %s, want %s", raw, want)
	}
}

func TestScanRecordsStopsAtMaxWithoutFetchingPastIt(t *testing.T) {
	db, mock := newSQLMock(t)

	// The row past the cap carries an error, so any attempt to advance
	// to it surfaces through rows.Err().
	page := sqlmock.NewRows([]string{"order_id"}).
		AddRow("ORD-1").
		AddRow("ORD-2").
		AddRow("ORD-3").
		RowError(2, errors.New("fetched a row past the cap"))
	mock.ExpectQuery("SELECT order_id").WillReturnRows(page)

	rows, err := db.Query("SELECT order_id FROM supply_chain_orders")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	defer func() { _ = rows.Close() }()

	records, err := ScanRecords(rows, 2)
	if err != nil {
		t.Fatalf("ScanRecords() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	assertSQLMock(t, mock)
}

func TestScanRecordsReadsAllRowsWithoutMax(t *testing.T) {
	db, mock := newSQLMock(t)

	page := sqlmock.NewRows([]string{"order_id", "order_region"}).
		AddRow("ORD-1", []byte("Caribbean")).
		AddRow("ORD-2", nil)
	mock.ExpectQuery("SELECT").WillReturnRows(page)

	rows, err := db.Query("SELECT order_id, order_region FROM supply_chain_orders")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	defer func() { _ = rows.Close() }()

	records, err := ScanRecords(rows, 0)
	if err != nil {
		t.Fatalf("ScanRecords() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if value, _ := records[0].Get("order_region"); value != "Caribbean" {
		t.Fatalf("order_region = %v, want normalized string", value)
	}
	if value, ok := records[1].Get("order_region"); !ok || value != nil {
		t.Fatalf("NULL field = %v, %v", value, ok)
	}
	assertSQLMock(t, mock)
}

func TestRecordGet(t *testing.T) {
	record := Record{{Name: "market", Value: "LATAM"}, {Name: "order_zipcode", Value: nil}}

	value, ok := record.Get("market")
	if !ok || value != "LATAM" {
		t.Fatalf("Get(market) = %v, %v", value, ok)
	}
	value, ok = record.Get("order_zipcode")
	if !ok || value != nil {
		t.Fatalf("Get(order_zipcode) = %v, %v", value, ok)
	}
	if _, ok := record.Get("missing"); ok {
		t.Fatal("Get(missing) reported a field that does not exist")
	}
}

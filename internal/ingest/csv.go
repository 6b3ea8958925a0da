// Package ingest loads the DataCo supply chain CSV into the dataset
// table. It is the write path of the system and runs only from the
// operator CLI; the query pipeline itself stays read-only.
package ingest

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/supplyq/supplyq/internal/store"
)

type Importer struct {
	DB        *sql.DB
	Driver    string
	BatchSize int
	Logger    *slog.Logger
}

// Import creates the table if needed and bulk-loads the CSV in
// transactions of BatchSize rows. It returns the number of rows written.
// The source dataset ships in Latin-1; the whole payload is decoded
// up front because the encoding cannot be sniffed from a stream prefix.
func (im *Importer) Import(ctx context.Context, r io.Reader) (int, error) {
	logger := im.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	batchSize := im.BatchSize
	if batchSize <= 0 {
		batchSize = 10000
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read csv payload: %w", err)
	}
	if !utf8.Valid(raw) {
		raw, err = charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return 0, fmt.Errorf("decode csv payload as latin-1: %w", err)
		}
	}

	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}
	columns, err := mapHeader(header)
	if err != nil {
		return 0, err
	}

	if err := CreateTable(ctx, im.DB); err != nil {
		return 0, err
	}

	insertSQL := buildInsert(im.Driver, columns)
	total := 0
	batch := make([][]string, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := im.insertBatch(ctx, insertSQL, len(columns), batch); err != nil {
			return err
		}
		total += len(batch)
		logger.InfoContext(ctx, "imported batch", slog.Int("rows", len(batch)), slog.Int("total", total))
		batch = batch[:0]
		return nil
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return total, fmt.Errorf("read csv row: %w", err)
		}
		if len(record) != len(columns) {
			return total, fmt.Errorf("csv row has %d fields, want %d", len(record), len(columns))
		}
		batch = append(batch, record)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := flush(); err != nil {
		return total, err
	}
	return total, nil
}

func (im *Importer) insertBatch(ctx context.Context, insertSQL string, width int, batch [][]string) error {
	tx, err := im.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import transaction: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}

	for _, record := range batch {
		args := make([]any, width)
		for i, value := range record {
			if value == "" {
				args[i] = nil
				continue
			}
			args[i] = value
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return fmt.Errorf("insert row: %w", err)
		}
	}

	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("close insert statement: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import transaction: %w", err)
	}
	return nil
}

func mapHeader(header []string) ([]string, error) {
	columns := make([]string, 0, len(header))
	for _, raw := range header {
		spec, ok := columnByHeader(strings.TrimSpace(raw))
		if !ok {
			return nil, fmt.Errorf("unknown csv column %q", raw)
		}
		columns = append(columns, spec.Name)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("csv header is empty")
	}
	return columns, nil
}

func buildInsert(driver string, columns []string) string {
	placeholders := make([]string, len(columns))
	for i := range columns {
		if driver == "postgres" {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		} else {
			placeholders[i] = "?"
		}
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		store.TableName,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "))
}

package store

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Field is one named value of a result row. A nil Value is a SQL NULL.
type Field struct {
	Name  string
	Value any
}

// Record is an ordered sequence of fields. Field order always matches the
// column order of the statement that produced the row.
type Record []Field

func (r Record) Get(name string) (any, bool) {
	for _, field := range r {
		if field.Name == name {
			return field.Value, true
		}
	}
	return nil, false
}

// MarshalJSON renders the record as a JSON object preserving field order,
// which encoding/json maps would not.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(field.Name)
		if err != nil {
			return nil, fmt.Errorf("marshal field name %q: %w", field.Name, err)
		}
		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal field %q: %w", field.Name, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ScanRecords materializes rows into ordered records. A max of zero or less
// reads every row; otherwise reading stops after max rows.
func ScanRecords(rows *sql.Rows, max int) ([]Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("result columns: %w", err)
	}

	records := make([]Record, 0)
	for max <= 0 || len(records) < max {
		if !rows.Next() {
			break
		}
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		record := make(Record, len(columns))
		for i, column := range columns {
			record[i] = Field{Name: column, Value: normalizeValue(values[i])}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return records, nil
}

func normalizeValue(value any) any {
	switch typed := value.(type) {
	case []byte:
		return string(typed)
	default:
		return typed
	}
}

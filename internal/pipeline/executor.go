package pipeline

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/supplyq/supplyq/internal/store"
)

// ExecutionResult is one page of rows plus the total match count computed
// independently of the page window.
type ExecutionResult struct {
	Rows       []store.Record
	TotalCount int
}

var trailingWindow = regexp.MustCompile(`(?is)\s+limit\s+\d+(\s+offset\s+\d+)?\s*$`)

// executePage runs the generated statement as given (it already embeds the
// LIMIT/OFFSET clause per the generation instructions) and then computes
// the total count by wrapping the statement, with its trailing window
// stripped, in SELECT COUNT(*). Two round-trips per request; result sets
// are small and queries are ad hoc, so the extra query beats inferring
// totals from a windowed result.
func executePage(ctx context.Context, db *sql.DB, sqlText string, limit int) (ExecutionResult, error) {
	rows, err := db.QueryContext(ctx, sqlText)
	if err != nil {
		return ExecutionResult{}, &ExecutionError{Err: fmt.Errorf("execute statement: %w", err)}
	}
	// Materialization caps at limit so a generator that ignored the
	// pagination instruction cannot blow the page contract.
	records, scanErr := store.ScanRecords(rows, limit)
	_ = rows.Close()
	if scanErr != nil {
		return ExecutionResult{}, &ExecutionError{Err: scanErr}
	}

	total, err := countTotal(ctx, db, sqlText)
	if err != nil {
		return ExecutionResult{}, err
	}

	return ExecutionResult{Rows: records, TotalCount: total}, nil
}

func countTotal(ctx context.Context, db *sql.DB, sqlText string) (int, error) {
	unwindowed := trailingWindow.ReplaceAllString(sqlText, "")
	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM (%s) AS subquery", unwindowed)

	var total int
	if err := db.QueryRowContext(ctx, countSQL).Scan(&total); err != nil {
		return 0, &ExecutionError{Err: fmt.Errorf("count query failed: %w", err)}
	}
	if total < 0 {
		return 0, &ExecutionError{Err: fmt.Errorf("count query returned %d", total)}
	}
	return total, nil
}

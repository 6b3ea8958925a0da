package pipeline

import (
	"fmt"
	"strings"

	"github.com/supplyq/supplyq/internal/store"
)

const noMatchesMessage = "No matching records found."

// sampleSize caps how many rows the summary renders in full.
const sampleSize = 3

// formatPage renders a compact human-readable summary of one result page:
// a count header plus up to three numbered rows, one "- field: value"
// line each, NULL fields omitted. Rows are never reordered or mutated.
func formatPage(rows []store.Record) string {
	if len(rows) == 0 {
		return noMatchesMessage
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d records\n\nSample results:\n", len(rows))

	shown := len(rows)
	if shown > sampleSize {
		shown = sampleSize
	}
	for i := 0; i < shown; i++ {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Result %d:\n", i+1)
		for _, field := range rows[i] {
			if field.Value == nil {
				continue
			}
			fmt.Fprintf(&b, "- %s: %v\n", field.Name, field.Value)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

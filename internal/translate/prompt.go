package translate

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BuildPrompt renders the deterministic generation prompt: the question,
// the column list with types, the serialized sample rows and the
// instruction set. The "exact column names" rule is the only control
// keeping the generator from hallucinating columns.
func BuildPrompt(req Request) (string, error) {
	columnsJSON, err := json.MarshalIndent(req.Snapshot.Columns, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal schema columns: %w", err)
	}
	samplesJSON, err := json.MarshalIndent(req.Snapshot.Samples, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal sample rows: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Convert this supply chain query to SQL:\n%q\n\n", req.Question)
	fmt.Fprintf(&b, "Schema:\n%s\n\n", columnsJSON)
	fmt.Fprintf(&b, "Sample Data:\n%s\n\n", samplesJSON)
	b.WriteString("Rules:\n")
	b.WriteString("1. Use exact column names\n")
	fmt.Fprintf(&b, "2. Add LIMIT %d OFFSET %d for pagination\n", req.Limit, req.Offset)
	b.WriteString("3. Return ONLY SQL")
	return b.String(), nil
}

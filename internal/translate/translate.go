package translate

import (
	"context"

	"github.com/supplyq/supplyq/internal/store"
)

// Request carries everything the generator needs for one translation:
// the question, the schema snapshot grounding it, and the pagination
// window the generated statement must embed.
type Request struct {
	Question string
	Snapshot store.Snapshot
	Limit    int
	Offset   int
}

// Result is a single read-only SQL statement with the model that
// produced it, kept for diagnostics.
type Result struct {
	SQL   string
	Model string
}

type Translator interface {
	Translate(ctx context.Context, req Request) (Result, error)
}

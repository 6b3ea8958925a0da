// Package pipeline composes one natural language question into one
// paginated query response: domain gate, schema snapshot, SQL generation,
// safety check, paginated execution and result formatting. Every failure
// is normalized into the response; nothing escapes Handle.
package pipeline

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/supplyq/supplyq/internal/domain"
	"github.com/supplyq/supplyq/internal/observability"
	"github.com/supplyq/supplyq/internal/safety"
	"github.com/supplyq/supplyq/internal/store"
	"github.com/supplyq/supplyq/internal/translate"
)

const (
	StatusSuccess = "success"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

const invalidDomainMessage = "Please ask supply chain related questions (e.g., orders, shipments)"

// Request is one user submission. The caller owns page-cursor advancement:
// a fresh Request per page, offset moved by limit.
type Request struct {
	Text   string `json:"text"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

// Response is the terminal outcome of one request cycle, tagged by Status.
type Response struct {
	Status     string         `json:"status"`
	Response   string         `json:"response"`
	SQLUsed    string         `json:"sql_used,omitempty"`
	Rows       []store.Record `json:"rows,omitempty"`
	Pagination *Pagination    `json:"pagination,omitempty"`
}

// Agent holds the long-lived collaborators: one read-only store handle
// reused across calls, the snapshot builder over it, and the translator.
// It keeps no per-request state.
type Agent struct {
	db         *sql.DB
	snapshots  *store.SnapshotBuilder
	translator translate.Translator
	logger     *slog.Logger
}

func NewAgent(db *sql.DB, driver string, sampleRows int, translator translate.Translator, logger *slog.Logger) *Agent {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Agent{
		db: db,
		snapshots: &store.SnapshotBuilder{
			DB:         db,
			Driver:     driver,
			Table:      store.TableName,
			SampleRows: sampleRows,
		},
		translator: translator,
		logger:     logger,
	}
}

// Handle resolves one request fully before returning. Stages fail fast:
// the first error aborts the pipeline and maps to the error response.
func (a *Agent) Handle(ctx context.Context, req Request) Response {
	start := time.Now()
	response := a.handle(ctx, req)
	observability.ObserveQuery(response.Status, time.Since(start))
	return response
}

func (a *Agent) handle(ctx context.Context, req Request) Response {
	if req.Limit <= 0 || req.Offset < 0 {
		return Response{Status: StatusError, Response: "Error: limit must be positive and offset non-negative"}
	}

	if !domain.Matches(req.Text) {
		a.logger.DebugContext(ctx, "question rejected by domain gate", slog.String("text", req.Text))
		return Response{Status: StatusInvalid, Response: invalidDomainMessage}
	}

	snapshot, err := a.snapshots.Snapshot(ctx)
	if err != nil {
		return a.fail(ctx, "schema", "", &SchemaError{Err: err})
	}

	translateStart := time.Now()
	result, err := a.translator.Translate(ctx, translate.Request{
		Question: req.Text,
		Snapshot: snapshot,
		Limit:    req.Limit,
		Offset:   req.Offset,
	})
	observability.ObserveTranslation(time.Since(translateStart))
	if err != nil {
		return a.fail(ctx, "generation", "", &GenerationError{Err: err})
	}
	sqlText := result.SQL

	if !safety.IsSafe(sqlText) {
		return a.fail(ctx, "safety", sqlText, &UnsafeQueryError{SQL: sqlText})
	}

	execution, err := executePage(ctx, a.db, sqlText, req.Limit)
	if err != nil {
		return a.fail(ctx, "execution", sqlText, err)
	}

	observability.ObserveResultRows(len(execution.Rows))
	a.logger.InfoContext(ctx, "query answered",
		slog.String("model", result.Model),
		slog.String("sql", sqlText),
		slog.Int("rows", len(execution.Rows)),
		slog.Int("total", execution.TotalCount),
	)

	return Response{
		Status:   StatusSuccess,
		Response: formatPage(execution.Rows),
		SQLUsed:  sqlText,
		Rows:     execution.Rows,
		Pagination: &Pagination{
			Limit:   req.Limit,
			Offset:  req.Offset,
			Total:   execution.TotalCount,
			HasMore: req.Offset+len(execution.Rows) < execution.TotalCount,
		},
	}
}

func (a *Agent) fail(ctx context.Context, stage, sqlText string, err error) Response {
	observability.IncrementStageFailure(stage)
	a.logger.WarnContext(ctx, "query pipeline failed",
		slog.String("stage", stage),
		slog.Any("error", err),
	)
	return Response{
		Status:   StatusError,
		Response: "Error: " + err.Error(),
		SQLUsed:  sqlText,
	}
}

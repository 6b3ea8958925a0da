package observability

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/supplyq/supplyq/internal/config"
)

type ctxKey string

const (
	traceIDKey     ctxKey = "trace_id"
	requestTagsKey ctxKey = "request_tags"
)

func NewLogger(cfg config.Config, writer io.Writer) *slog.Logger {
	if writer == nil {
		writer = io.Discard
	}
	options := &slog.HandlerOptions{Level: cfg.Observability.LogLevel}
	var handler slog.Handler
	if cfg.Observability.LogJSON {
		handler = slog.NewJSONHandler(writer, options)
	} else {
		handler = slog.NewTextHandler(writer, options)
	}
	return slog.New(handler).With(
		slog.String("service", cfg.Service.Name),
		slog.String("profile", string(cfg.Profile)),
	)
}

func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

func TraceIDFromContext(ctx context.Context) string {
	value, ok := ctx.Value(traceIDKey).(string)
	if !ok {
		return ""
	}
	return value
}

// requestTags is a per-request scratchpad the instrumentation wrapper
// plants in the context so handlers deeper in the stack can annotate the
// request log line. Only the pipeline outcome tag exists today.
type requestTags struct {
	mu          sync.Mutex
	queryStatus string
}

func contextWithRequestTags(ctx context.Context) (context.Context, *requestTags) {
	tags := &requestTags{}
	return context.WithValue(ctx, requestTagsKey, tags), tags
}

// TagQueryStatus records the pipeline outcome (success, invalid, error)
// for the current request. No-op when the context was not set up by
// Instrument, so handlers can call it unconditionally.
func TagQueryStatus(ctx context.Context, status string) {
	tags, ok := ctx.Value(requestTagsKey).(*requestTags)
	if !ok {
		return
	}
	tags.mu.Lock()
	tags.queryStatus = status
	tags.mu.Unlock()
}

func (t *requestTags) snapshotQueryStatus() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.queryStatus
}

package observability

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// TraceHeader carries the request trace ID in and out of the API.
const TraceHeader = "X-Supplyq-Trace"

// apiRoutes is the fixed route set the service exposes. Metric labels
// use these instead of the raw path so probes against arbitrary URLs
// cannot inflate label cardinality.
var apiRoutes = map[string]struct{}{
	"/v1/health":   {},
	"/v1/ready":    {},
	"/v1/metrics":  {},
	"/v1/query":    {},
	"/v1/schema":   {},
	"/v1/examples": {},
}

const unmatchedRoute = "unmatched"

func RouteLabel(path string) string {
	if _, ok := apiRoutes[path]; ok {
		return path
	}
	return unmatchedRoute
}

// Instrument wraps the API handler with the full request treatment in a
// single pass: trace ID propagation, route-labelled metrics and one
// structured log line per request. Handlers downstream may tag the
// request (TagQueryStatus) and the tag shows up in that log line.
func Instrument(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		traceID := r.Header.Get(TraceHeader)
		if traceID == "" {
			traceID = newTraceID()
		}
		ctx := ContextWithTraceID(r.Context(), traceID)
		ctx, tags := contextWithRequestTags(ctx)
		w.Header().Set(TraceHeader, traceID)

		route := RouteLabel(r.URL.Path)
		httpRequestsInFlight.Inc()
		reply := &replyMeta{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(reply, r.WithContext(ctx))
		httpRequestsInFlight.Dec()

		elapsed := time.Since(start)
		status := strconv.Itoa(reply.status)
		httpRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
		httpRequestDurationSeconds.WithLabelValues(route).Observe(elapsed.Seconds())

		if logger == nil {
			return
		}
		attrs := []slog.Attr{
			slog.String("trace_id", traceID),
			slog.String("method", r.Method),
			slog.String("route", route),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
			slog.Int("status", reply.status),
			slog.String("duration", elapsed.String()),
			slog.Int("bytes", reply.bytes),
		}
		if queryStatus := tags.snapshotQueryStatus(); queryStatus != "" {
			attrs = append(attrs, slog.String("query_status", queryStatus))
		}
		logger.LogAttrs(ctx, slog.LevelInfo, "http_request", attrs...)
	})
}

// replyMeta records what the handler wrote so the wrapper can report it
// after the fact.
type replyMeta struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (m *replyMeta) WriteHeader(status int) {
	m.status = status
	m.ResponseWriter.WriteHeader(status)
}

func (m *replyMeta) Write(body []byte) (int, error) {
	n, err := m.ResponseWriter.Write(body)
	m.bytes += n
	return n, err
}

func newTraceID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 16)
	}
	return hex.EncodeToString(buf)
}

package observability

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestInstrumentGeneratesTraceID(t *testing.T) {
	var seen string
	handler := Instrument(nil, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TraceIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	if seen == "" {
		t.Fatal("trace ID was not attached to request context")
	}
	if got := rr.Header().Get(TraceHeader); got != seen {
		t.Fatalf("response trace header = %q, want %q", got, seen)
	}
}

func TestInstrumentPreservesIncomingTraceID(t *testing.T) {
	handler := Instrument(nil, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := TraceIDFromContext(r.Context()); got != "trace-123" {
			t.Fatalf("trace ID = %q, want %q", got, "trace-123")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	req.Header.Set(TraceHeader, "trace-123")
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestInstrumentLogsQueryStatusTag(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := Instrument(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		TagQueryStatus(r.Context(), "invalid")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/query", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	line := buf.String()
	for _, want := range []string{
		"query_status=invalid",
		"route=/v1/query",
		"status=200",
		"method=POST",
	} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line missing %q:\n%s", want, line)
		}
	}
}

func TestInstrumentOmitsQueryStatusWhenUntagged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := Instrument(logger, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	if strings.Contains(buf.String(), "query_status=") {
		t.Fatalf("unexpected query_status in log line:\n%s", buf.String())
	}
}

func TestRouteLabelCollapsesUnknownPaths(t *testing.T) {
	cases := map[string]string{
		"/v1/query":            "/v1/query",
		"/v1/health":           "/v1/health",
		"/v1/query/../secrets": "unmatched",
		"/anything":            "unmatched",
	}
	for path, want := range cases {
		if got := RouteLabel(path); got != want {
			t.Fatalf("RouteLabel(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestTagQueryStatusWithoutInstrumentIsNoop(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/query", nil)
	// Must not panic when the instrumentation wrapper is absent.
	TagQueryStatus(req.Context(), "success")
}

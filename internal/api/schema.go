package api

import "net/http"

// exampleQuestions mirrors the usage tips the UI layer shows alongside
// the query box.
var exampleQuestions = []string{
	"Show orders with late deliveries",
	"List top 10 products by sales",
	"Which suppliers have pending shipments?",
	"Find orders from California last month",
}

func handleSchema(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Schema == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "SCHEMA_NOT_CONFIGURED", "schema dependency is not configured", nil)
		return
	}

	snapshot, err := deps.Schema.Snapshot(r.Context())
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, "SCHEMA_FETCH_FAILED", "failed to load schema snapshot", map[string]any{"details": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func handleExamples(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"examples": exampleQuestions})
}

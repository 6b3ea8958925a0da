package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/supplyq/supplyq/internal/config"
	"github.com/supplyq/supplyq/internal/observability"
	"github.com/supplyq/supplyq/internal/pipeline"
)

type queryRequest struct {
	Text   string `json:"text"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// handleQuery runs one request through the pipeline. Pipeline outcomes,
// including invalid and error statuses, come back as 200 with the tagged
// envelope: a failed translation is a resolved request, not a transport
// fault. Only malformed submissions get a 4xx.
func handleQuery(cfg config.Config, deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Querier == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "QUERY_NOT_CONFIGURED", "query pipeline is not configured", nil)
		return
	}

	var request queryRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_JSON", "invalid query request body", map[string]any{"details": err.Error()})
		return
	}

	if strings.TrimSpace(request.Text) == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "TEXT_REQUIRED", "question text is required", nil)
		return
	}
	if request.Limit < 0 || request.Offset < 0 {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_WINDOW", "limit and offset must be non-negative", nil)
		return
	}
	limit := request.Limit
	if limit == 0 {
		limit = cfg.Query.DefaultLimit
	}
	if limit > cfg.Query.MaxLimit {
		limit = cfg.Query.MaxLimit
	}

	response := deps.Querier.Handle(r.Context(), pipeline.Request{
		Text:   request.Text,
		Limit:  limit,
		Offset: request.Offset,
	})
	observability.TagQueryStatus(r.Context(), response.Status)
	writeJSON(w, http.StatusOK, response)
}

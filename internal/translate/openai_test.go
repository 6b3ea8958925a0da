package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestExtractSQL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```sql\nSELECT 1\n```", "SELECT 1"},
		{"```\nSELECT 1;\n```", "SELECT 1"},
		{"  SELECT * FROM supply_chain_orders LIMIT 5 OFFSET 0;  ", "SELECT * FROM supply_chain_orders LIMIT 5 OFFSET 0"},
		{"SELECT 1", "SELECT 1"},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := ExtractSQL(tc.in); got != tc.want {
			t.Fatalf("ExtractSQL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTranslateSendsSingleUserMessage(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "```sql\nSELECT * FROM supply_chain_orders LIMIT 5 OFFSET 0;\n```"}},
			},
		})
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{BaseURL: server.URL, Model: "codellama:7b-instruct", Temperature: 0.1})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	result, err := client.Translate(context.Background(), Request{Question: "show orders", Limit: 5, Offset: 0})
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if result.SQL != "SELECT * FROM supply_chain_orders LIMIT 5 OFFSET 0" {
		t.Fatalf("SQL = %q", result.SQL)
	}
	if result.Model != "codellama:7b-instruct" {
		t.Fatalf("Model = %q", result.Model)
	}

	if captured["model"] != "codellama:7b-instruct" {
		t.Fatalf("payload model = %v", captured["model"])
	}
	if captured["temperature"] != 0.1 {
		t.Fatalf("payload temperature = %v", captured["temperature"])
	}
	messages, ok := captured["messages"].([]any)
	if !ok || len(messages) != 1 {
		t.Fatalf("messages = %v", captured["messages"])
	}
	message := messages[0].(map[string]any)
	if message["role"] != "user" {
		t.Fatalf("message role = %v", message["role"])
	}
}

func TestTranslateFailsOnEmptyCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "   "}},
			},
		})
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{BaseURL: server.URL, Model: "codellama:7b-instruct"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if _, err := client.Translate(context.Background(), Request{Question: "show orders"}); err == nil {
		t.Fatal("Translate() expected error for empty SQL")
	}
}

func TestTranslateFailsOnServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{BaseURL: server.URL, Model: "codellama:7b-instruct"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if _, err := client.Translate(context.Background(), Request{Question: "show orders"}); err == nil {
		t.Fatal("Translate() expected error for 500 response")
	}
}

func TestTranslateHonorsTimeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	client, err := NewClient(ClientConfig{BaseURL: server.URL, Model: "codellama:7b-instruct", Timeout: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if _, err := client.Translate(context.Background(), Request{Question: "show orders"}); err == nil {
		t.Fatal("Translate() expected timeout error")
	}
}

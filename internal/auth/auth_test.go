package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStaticValidatorParsesSpec(t *testing.T) {
	validator, err := NewStaticAPIKeyValidator("key-1:analyst, key-2:dashboard")
	if err != nil {
		t.Fatalf("NewStaticAPIKeyValidator() error = %v", err)
	}
	name, ok := validator.Validate(context.Background(), "key-1")
	if !ok || name != "analyst" {
		t.Fatalf("Validate(key-1) = %q, %v", name, ok)
	}
	if _, ok := validator.Validate(context.Background(), "nope"); ok {
		t.Fatal("Validate accepted an unknown key")
	}
}

func TestStaticValidatorRejectsMalformedSpec(t *testing.T) {
	if _, err := NewStaticAPIKeyValidator("key-only"); err == nil {
		t.Fatal("expected error for entry without name")
	}
}

func TestMiddlewareRejectsMissingAndInvalidKeys(t *testing.T) {
	validator, err := NewStaticAPIKeyValidator("key-1:analyst")
	if err != nil {
		t.Fatalf("NewStaticAPIKeyValidator() error = %v", err)
	}
	handler := Middleware(nil, validator)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/schema", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status without key = %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/schema", nil)
	req.Header.Set("X-API-Key", "wrong")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status with wrong key = %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/schema", nil)
	req.Header.Set("Authorization", "Bearer key-1")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status with bearer key = %d", rr.Code)
	}
}

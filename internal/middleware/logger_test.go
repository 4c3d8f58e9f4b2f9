package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoggerRecordsRequest(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	h := RequestID(I18N("mr", nil)(Logger(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))))

	req := httptest.NewRequest(http.MethodPost, "/api/donate", nil)
	req.RemoteAddr = "198.51.100.4:999"
	req.Header.Set("X-Request-ID", "req-123")
	req.Header.Set("CF-IPCountry", "in")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["level"] != "warn" {
		t.Fatalf("level = %v, want warn", entry["level"])
	}
	if entry["path"] != "/api/donate" || entry["method"] != "POST" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["status"] != float64(http.StatusBadRequest) {
		t.Fatalf("status = %v, want 400", entry["status"])
	}
	if entry["request_id"] != "req-123" {
		t.Fatalf("request_id = %v, want req-123", entry["request_id"])
	}
	if entry["ip"] != "198.51.100.4" || entry["locale"] != "mr" || entry["country"] != "IN" {
		t.Fatalf("unexpected client fields: %v", entry)
	}
}

func TestRequestIDGeneratesWhenMissing(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" {
		t.Fatalf("expected generated request id")
	}
	if got := rr.Header().Get("X-Request-ID"); got != seen {
		t.Fatalf("header = %q, context = %q", got, seen)
	}

	long := httptest.NewRequest(http.MethodGet, "/", nil)
	long.Header.Set("X-Request-ID", string(bytes.Repeat([]byte("a"), maxRequestIDLength+1)))
	h.ServeHTTP(httptest.NewRecorder(), long)
	if len(seen) > maxRequestIDLength {
		t.Fatalf("oversized request id was propagated")
	}
}

func TestRecoverWritesLocalizedError(t *testing.T) {
	var buf bytes.Buffer
	h := Recover(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	req := httptest.NewRequest(http.MethodPost, "/api/donate", nil)
	req = req.WithContext(ContextWithLocale(req.Context(), "en"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "Server error. Please try again." {
		t.Fatalf("error = %q", body["error"])
	}
	if !bytes.Contains(buf.Bytes(), []byte("handler panic")) {
		t.Fatalf("expected panic to be logged, got %q", buf.String())
	}
}

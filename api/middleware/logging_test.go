package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// mockLogger captures log entries for assertions
type mockLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

func (m *mockLogger) record(level, msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, logEntry{level, msg, fields})
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.record("debug", msg, fields) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  { m.record("info", msg, fields) }
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.record("warn", msg, fields) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) { m.record("error", msg, fields) }

func TestRequestLoggingMiddleware_SetsRequestID(t *testing.T) {
	logger := &mockLogger{}
	handler := RequestLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetRequestID(r.Context()) == "" {
			t.Error("request ID missing from request context")
		}
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/taxonomy?name=Neem", nil))

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set")
	}
}

func TestRequestLoggingMiddleware_LogsStartAndCompletion(t *testing.T) {
	logger := &mockLogger{}
	handler := RequestLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/languages", nil))

	if len(logger.entries) != 2 {
		t.Fatalf("got %d log entries, want 2", len(logger.entries))
	}
	if logger.entries[0].msg != "Request started" {
		t.Errorf("first entry = %q", logger.entries[0].msg)
	}
	if logger.entries[1].msg != "Request completed" {
		t.Errorf("second entry = %q", logger.entries[1].msg)
	}
	if logger.entries[1].fields["status"] != http.StatusOK {
		t.Errorf("status field = %v, want 200", logger.entries[1].fields["status"])
	}
}

func TestRequestLoggingMiddleware_LogsServerErrors(t *testing.T) {
	logger := &mockLogger{}
	handler := RequestLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/identify", nil))

	found := false
	for _, e := range logger.entries {
		if e.level == "error" && e.msg == "Request failed with server error" {
			found = true
		}
	}
	if !found {
		t.Error("no error entry logged for 500 response")
	}
}

func TestGetRequestID_MissingReturnsEmpty(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)

	if id := GetRequestID(r.Context()); id != "" {
		t.Errorf("GetRequestID = %q, want empty", id)
	}
}

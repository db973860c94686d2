package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"pulse/internal/platform/metrics"
)

func TestLoggerRecordsStatusAndMetrics(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	collector := metrics.New()

	handler := RequestID(Logger(log, collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v (%q)", err, buf.String())
	}
	if entry["status"] != float64(http.StatusServiceUnavailable) || entry["level"] != "error" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["requestId"] == "" || entry["path"] != "/api/v1/admin/dashboard" {
		t.Fatalf("missing request fields: %v", entry)
	}

	snap := collector.Snapshot()
	if snap["requestsTotal"] != uint64(1) || snap["errorsTotal"] != uint64(1) {
		t.Fatalf("unexpected metrics: %v", snap)
	}
}

func TestSecureHeaders(t *testing.T) {
	handler := SecureHeaders(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatalf("expected frame deny, got %q", rec.Header().Get("X-Frame-Options"))
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("expected nosniff")
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Fatal("hsts must not be sent in development")
	}
}

func TestBodyLimit(t *testing.T) {
	handler := BodyLimit(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 16)
		if _, err := r.Body.Read(buf); err == nil {
			t.Fatal("expected read error past the limit")
		}
	}))
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("0123456789"))
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestBodyLimitLeavesReadsAndZeroLimitAlone(t *testing.T) {
	read := func(limit int64, method string) error {
		var readErr error
		handler := BodyLimit(limit)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, readErr = io.ReadAll(r.Body)
		}))
		req := httptest.NewRequest(method, "/", bytes.NewBufferString("0123456789"))
		handler.ServeHTTP(httptest.NewRecorder(), req)
		return readErr
	}

	if err := read(4, http.MethodDelete); err != nil {
		t.Fatalf("delete bodies are not capped: %v", err)
	}
	if err := read(0, http.MethodPost); err != nil {
		t.Fatalf("zero limit disables the cap: %v", err)
	}
	if err := read(4, http.MethodPatch); err == nil {
		t.Fatal("expected patch body to be capped")
	}
}

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCollectorRecordsAndExposes(t *testing.T) {
	c := NewCollector()
	c.RecordRequest(http.MethodGet, "/api/todos", http.StatusOK, 25*time.Millisecond)
	c.RecordRequest(http.MethodGet, "/api/todos", http.StatusOK, 10*time.Millisecond)
	c.RecordRequest(http.MethodPost, "/api/todos", http.StatusCreated, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `todo_http_requests_total{method="GET",path="/api/todos",status="200"} 2`) {
		t.Errorf("GET counter missing or wrong:\n%s", body)
	}
	if !strings.Contains(body, `todo_http_requests_total{method="POST",path="/api/todos",status="201"} 1`) {
		t.Errorf("POST counter missing or wrong:\n%s", body)
	}
	if !strings.Contains(body, "todo_http_request_duration_seconds") {
		t.Errorf("duration histogram missing:\n%s", body)
	}
}

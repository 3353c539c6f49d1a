package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/yurifrl/ynabel/pkg/config"
	"github.com/yurifrl/ynabel/pkg/executors"
)

func testServer() *Server {
	return New(&config.Config{}, log.Default())
}

func TestHandleLogsRejectsNonGet(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest(http.MethodPost, "/api/logs/abc", nil)
	rec := httptest.NewRecorder()
	s.handleLogs(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}

func TestHandleLogsUnknownRun(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest(http.MethodGet, "/api/logs/missing", nil)
	rec := httptest.NewRecorder()
	s.handleLogs(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestHandleLogsServesStoredRun(t *testing.T) {
	s := testServer()
	logs := []executors.UpdateLog{
		{
			LabelID:       "l1",
			TransactionID: "t1",
			AccountID:     "acc-1",
			Date:          "2024-01-09",
			Amount:        12340,
			PreviousMemo:  "old",
			NewMemo:       "old | groceries",
			Succeeded:     true,
		},
	}
	s.runs.Store("run-1", logs)

	req := httptest.NewRequest(http.MethodGet, "/api/logs/run-1", nil)
	rec := httptest.NewRecorder()
	s.handleLogs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/yaml" {
		t.Errorf("Expected yaml content type, got %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "run-1.yaml") {
		t.Errorf("Expected run id in attachment name, got %q", cd)
	}

	var body struct {
		Logs []executors.UpdateLog `yaml:"logs"`
	}
	if err := yaml.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to parse yaml body: %v", err)
	}
	if len(body.Logs) != 1 || body.Logs[0] != logs[0] {
		t.Errorf("Round-tripped logs mismatch: %+v", body.Logs)
	}
}

package parser

import (
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestParseLabelsCSV(t *testing.T) {
	content := []byte(`Date,Payee,Memo,Amount
2024-01-10,Market,weekly groceries,-12.34
2024-01-12,Cafe,lunch with sam,-8.50
not-a-date,Broken,skip me,-1.00
2024-01-10,Market,weekly groceries,-12.34`)

	parser := New(log.Default())
	labels, err := parser.ProcessBytes(content, "labels.csv")
	if err != nil {
		t.Fatalf("ProcessBytes failed: %v", err)
	}

	// Bad line skipped, duplicate deduplicated.
	if len(labels) != 2 {
		t.Fatalf("Expected 2 labels, got %d", len(labels))
	}

	first := labels[0]
	if !first.Date.Equal(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected date 2024-01-10, got %v", first.Date)
	}
	if first.Payee != "Market" {
		t.Errorf("Expected payee Market, got %q", first.Payee)
	}
	if first.Memo != "weekly groceries" {
		t.Errorf("Expected memo, got %q", first.Memo)
	}
	if first.Amount != -12340 {
		t.Errorf("Expected -12340 milliunits, got %d", first.Amount)
	}
	if first.ID == "" || first.ID == labels[1].ID {
		t.Errorf("Labels must get distinct non-empty ids: %q vs %q", first.ID, labels[1].ID)
	}
}

func TestParseLabelsCSVWithoutHeader(t *testing.T) {
	content := []byte(`2024-01-10,Market,weekly groceries,-12.34`)

	parser := New(log.Default())
	labels, err := parser.ProcessBytes(content, "labels.csv")
	if err != nil {
		t.Fatalf("ProcessBytes failed: %v", err)
	}
	if len(labels) != 1 {
		t.Fatalf("Expected 1 label, got %d", len(labels))
	}
}

func TestProcessBytesUnknownType(t *testing.T) {
	parser := New(log.Default())
	if _, err := parser.ProcessBytes([]byte("whatever"), "labels.pdf"); err == nil {
		t.Errorf("Expected error for unknown file type")
	}
}

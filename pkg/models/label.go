package models

import (
	"fmt"
	"time"
)

// Label is a user-intended transaction parsed from a personal export. It is
// immutable once built; matching and syncing only ever read it.
type Label struct {
	ID     string
	Date   time.Time
	Amount int64 // YNAB milliunits
	Payee  string
	Memo   string
}

// DateString returns the label date in the YYYY/MM/DD format used across the
// CLI and CSV output.
func (l *Label) DateString() string {
	return l.Date.Format("2006/01/02")
}

// AmountString renders the milliunit amount as a two-decimal currency string.
func (l *Label) AmountString() string {
	return fmt.Sprintf("%.2f", float64(l.Amount)/1000.0)
}

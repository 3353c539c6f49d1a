package executors

import (
	"github.com/yurifrl/ynabel/pkg/csv"
	"github.com/yurifrl/ynabel/pkg/matcher"
)

// matchRecord adapts a resolved match to the csv.Record interface.
type matchRecord struct {
	match matcher.Match
}

func (r matchRecord) Date() string    { return r.match.Label.DateString() }
func (r matchRecord) Payee() string   { return r.match.Label.Payee }
func (r matchRecord) Memo() string    { return r.match.Label.Memo }
func (r matchRecord) Amount() float64 { return float64(r.match.Label.Amount) / 1000.0 }

func (r matchRecord) TransactionID() string {
	if r.match.Transaction == nil {
		return ""
	}
	return r.match.Transaction.ID
}

// MatchCSV renders resolved matches as a downloadable CSV, one row per label
// in resolution order. Unmatched labels keep an empty TransactionID column.
func MatchCSV(matches []matcher.Match) []byte {
	records := make([]matchRecord, 0, len(matches))
	for _, m := range matches {
		records = append(records, matchRecord{match: m})
	}
	return csv.Create(records, nil)
}

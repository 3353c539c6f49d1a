package csv

import (
	"bytes"
	"fmt"
	"strings"
)

type Record interface {
	Date() string
	Payee() string
	Memo() string
	Amount() float64
	TransactionID() string
}

type FilterFunc[T Record] func(T) bool

func Create[T Record](records []T, filter FilterFunc[T]) []byte {
	var buf bytes.Buffer
	buf.WriteString("Date,Payee,Memo,Amount,TransactionID\n")
	for _, r := range records {
		if filter == nil || filter(r) {
			buf.WriteString(fmt.Sprintf("%s,%s,%s,%.2f,%s\n",
				quote(r.Date()),
				quote(r.Payee()),
				quote(r.Memo()),
				r.Amount(),
				quote(r.TransactionID())))
		}
	}
	return buf.Bytes()
}

// quote wraps a field in double quotes when it would otherwise break the row
// format.
func quote(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

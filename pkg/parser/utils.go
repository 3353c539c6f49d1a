package parser

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// generateLabelID creates a simple unique ID based on date, payee and amount
func generateLabelID(date time.Time, payee string, amount int64) string {
	// Clean up payee - remove spaces and convert to lowercase
	cleanPayee := strings.ToLower(strings.TrimSpace(payee))

	input := fmt.Sprintf("%s-%s-%d", date.Format("2006-01-02"), cleanPayee, amount)

	// Generate SHA256 hash and take first 8 characters
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash)[:8]
}

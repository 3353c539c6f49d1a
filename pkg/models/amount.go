package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAmount converts a decimal currency string ("12.34", "-1.234,56") into
// YNAB milliunits. The conversion is pure integer arithmetic so amounts can
// later be compared for exact equality against remote milliunit values.
func ParseAmount(s string) (int64, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, "R$ ")
	raw = strings.TrimPrefix(raw, "$")
	if raw == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := false
	switch raw[0] {
	case '-':
		negative = true
		raw = raw[1:]
	case '+':
		raw = raw[1:]
	}

	// Normalise "1.234,56" (comma decimal) to "1234.56".
	if strings.Contains(raw, ",") {
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.Replace(raw, ",", ".", 1)
	}

	intPart := raw
	fracPart := ""
	if idx := strings.Index(raw, "."); idx >= 0 {
		intPart = raw[:idx]
		fracPart = raw[idx+1:]
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > 3 {
		return 0, fmt.Errorf("amount %q has more than milliunit precision", s)
	}
	for len(fracPart) < 3 {
		fracPart += "0"
	}

	if !digitsOnly(intPart) || !digitsOnly(fracPart) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	milli, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	value := units*1000 + milli
	if negative {
		value = -value
	}
	return value, nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

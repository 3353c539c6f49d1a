package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/yurifrl/ynabel/pkg/models"
)

// ParseLabelsCSV parses a label export in Date,Payee,Memo,Amount form into
// normalized labels. Deduplication and exact milliunit amounts happen here so
// everything downstream can compare integers.
func (p *Parser) ParseLabelsCSV(data []byte) ([]*models.Label, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // allow variable columns – we will validate manually

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv is empty")
	}

	// Expect header: Date,Payee,Memo,Amount
	start := 0
	if len(records[0]) >= 4 && strings.EqualFold(strings.TrimSpace(records[0][0]), "date") {
		start = 1 // skip header
	}

	seen := make(map[string]bool)
	labels := make([]*models.Label, 0, len(records)-start)
	for i := start; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 4 {
			p.logger.Debug("csv line has less than 4 fields, skipping", "line", i)
			continue
		}

		dateStr := strings.TrimSpace(rec[0])
		payee := strings.TrimSpace(rec[1])
		memo := strings.TrimSpace(rec[2])
		amountStr := strings.TrimSpace(rec[3])

		date, err := parseDate(dateStr)
		if err != nil {
			p.logger.Debug("invalid date, skipping", "line", i, "date", dateStr)
			continue
		}

		amount, err := models.ParseAmount(amountStr)
		if err != nil {
			p.logger.Debug("invalid amount, skipping", "line", i, "err", err)
			continue
		}

		id := generateLabelID(date, payee, amount)
		if seen[id] {
			p.logger.Debug("duplicate label, skipping", "line", i, "id", id)
			continue
		}
		seen[id] = true

		labels = append(labels, &models.Label{
			ID:     id,
			Date:   date,
			Amount: amount,
			Payee:  payee,
			Memo:   memo,
		})
	}

	return labels, nil
}

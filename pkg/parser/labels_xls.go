package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/extrame/xls"

	"github.com/yurifrl/ynabel/pkg/models"
)

// ParseLabelsXLS parses a label export saved as a legacy XLS spreadsheet.
// The sheet is expected to carry the same Date,Payee,Memo,Amount columns as
// the CSV export; rows above the header are ignored.
func (p *Parser) ParseLabelsXLS(data []byte) ([]*models.Label, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "cp1252")
	if err != nil {
		return nil, fmt.Errorf("error creating workbook: %w", err)
	}

	rows := workbook.ReadAllCells(1000)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in sheet")
	}

	return p.labelsFromRows(rows)
}

// labelsFromRows converts raw sheet rows into labels. Split from the workbook
// decoding so the row handling is testable without a binary fixture.
func (p *Parser) labelsFromRows(rows [][]string) ([]*models.Label, error) {
	seen := make(map[string]bool)
	var labels []*models.Label
	var foundHeader bool

	for _, row := range rows {
		if len(row) < 4 {
			continue
		}

		if !foundHeader {
			if strings.EqualFold(strings.TrimSpace(row[0]), "date") {
				foundHeader = true
			}
			continue
		}

		dateStr := strings.TrimSpace(row[0])
		payee := strings.TrimSpace(row[1])
		memo := strings.TrimSpace(row[2])
		amountStr := strings.TrimSpace(row[3])

		if dateStr == "" {
			continue
		}
		if payee == "" {
			p.logger.Info("payee is empty", "row", row)
			continue
		}

		date, err := parseDate(dateStr)
		if err != nil {
			p.logger.Info("error parsing date", "row", row, "error", err)
			continue
		}

		amount, err := models.ParseAmount(amountStr)
		if err != nil {
			p.logger.Info("error parsing amount", "row", row, "error", err)
			continue
		}

		id := generateLabelID(date, payee, amount)
		if seen[id] {
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

	if !foundHeader {
		return nil, fmt.Errorf("no Date,Payee,Memo,Amount header found in sheet")
	}

	return labels, nil
}

package executors

// This file contains the sync engine: the pure loop that pushes composed
// memos to the remote service one transaction at a time, and the Executor
// wrapper that feeds it from a manifest. The loop is strictly sequential so
// that update logs line up 1:1 with the input and a wall of parallel writes
// never hits the same account. A failed update is recorded and the loop moves
// on; the user gets a complete accounting instead of a half-finished batch.

import (
	"fmt"
	"os"

	"github.com/yurifrl/ynabel/pkg/matcher"
	"github.com/yurifrl/ynabel/pkg/models"
)

// RemoteClient is the single remote mutation the engine needs. The ynab
// package's TransactionService satisfies it; tests substitute a recording
// fake.
type RemoteClient interface {
	UpdateTransactionMemo(budgetID, transactionID, memo string) error
}

// UpdateLog records one attempted remote mutation. Entries are append-only
// within a run and index-aligned with the input; the caller decides whether
// to persist them (see SaveUpdateLogs).
type UpdateLog struct {
	LabelID       string `yaml:"label_id"`
	TransactionID string `yaml:"transaction_id"`
	AccountID     string `yaml:"account_id"`
	Date          string `yaml:"date"`
	Amount        int64  `yaml:"amount"`
	Payee         string `yaml:"payee,omitempty"`
	PreviousMemo  string `yaml:"previous_memo"`
	NewMemo       string `yaml:"new_memo"`
	Succeeded     bool   `yaml:"succeeded"`
	Skipped       bool   `yaml:"skipped,omitempty"`
	Error         string `yaml:"error,omitempty"`
}

// MemoComposer produces the memo text to write for a finalized pairing.
type MemoComposer func(label *models.Label, existingMemo string) string

// ComposeAppendMemo is the default strategy: keep whatever memo the
// transaction already has and append the label memo after a separator.
func ComposeAppendMemo(separator string) MemoComposer {
	return func(label *models.Label, existingMemo string) string {
		text := label.Memo
		if text == "" {
			text = label.Payee
		}
		if existingMemo == "" {
			return text
		}
		return existingMemo + separator + text
	}
}

// FinalizeMatches applies the composer to every resolved match that has a
// transaction. Unmatched labels are dropped; there is nothing to sync for
// them.
func FinalizeMatches(matches []matcher.Match, compose MemoComposer) []matcher.FinalizedMatch {
	finalized := make([]matcher.FinalizedMatch, 0, len(matches))
	for _, m := range matches {
		if m.Transaction == nil {
			continue
		}
		existing := ""
		if m.Transaction.Memo != nil {
			existing = *m.Transaction.Memo
		}
		finalized = append(finalized, matcher.FinalizedMatch{
			Label:       m.Label,
			NewMemo:     compose(m.Label, existing),
			Transaction: m.Transaction,
		})
	}
	return finalized
}

// SyncLabels issues one memo update per finalized match, in input order,
// awaiting each call before the next. It fails up front when the budget
// context is missing; once the loop starts, per-item remote errors are
// captured into the corresponding UpdateLog entry and never abort the run.
// Exactly one entry is returned per input match, in the same order.
func SyncLabels(budgetID string, finalized []matcher.FinalizedMatch, client RemoteClient) ([]UpdateLog, error) {
	if budgetID == "" {
		return nil, fmt.Errorf("sync requires a budget id")
	}
	if client == nil {
		return nil, fmt.Errorf("sync requires a remote client")
	}

	logs := make([]UpdateLog, 0, len(finalized))
	for _, m := range finalized {
		tx := m.Transaction
		previousMemo := ""
		if tx.Memo != nil {
			previousMemo = *tx.Memo
		}

		entry := UpdateLog{
			LabelID:       m.Label.ID,
			TransactionID: tx.ID,
			AccountID:     tx.AccountID,
			Date:          tx.Date.Format("2006-01-02"),
			Amount:        tx.Amount,
			Payee:         m.Label.Payee,
			PreviousMemo:  previousMemo,
			NewMemo:       m.NewMemo,
		}

		if err := client.UpdateTransactionMemo(budgetID, tx.ID, m.NewMemo); err != nil {
			entry.Error = err.Error()
		} else {
			entry.Succeeded = true
		}
		logs = append(logs, entry)
	}

	return logs, nil
}

// Sync matches and pushes every label set in the manifest and returns the
// combined update logs, one slice entry per attempted mutation across all
// sets.
func (e *Executor) Sync(manifest *models.Manifest) ([]UpdateLog, error) {
	e.logger.Debug("syncing manifest", "label_sets", len(manifest.LabelSets))

	budgetID := e.budgetID(manifest)
	if budgetID == "" {
		return nil, fmt.Errorf("manifest error: missing budget_id")
	}

	var allLogs []UpdateLog
	for _, set := range manifest.LabelSets {
		if set.AccountID == "" {
			return nil, fmt.Errorf("manifest error: label set %s missing account_id", set.FilePath)
		}

		labels, err := set.Labels(e.parser)
		if err != nil {
			return nil, err
		}

		remoteTxs, err := e.ynab.Transaction().GetTransactionsByAccount(budgetID, set.AccountID)
		if err != nil {
			return nil, err
		}

		candidates := matcher.CandidatesForAllLabels(labels, remoteTxs)
		matches := matcher.ResolveBestMatches(candidates)
		finalized := FinalizeMatches(matches, ComposeAppendMemo(e.config.Memo.Separator))

		e.logger.Info("syncing labels", "file", set.FilePath, "labels", len(labels), "matched", len(finalized))

		logs, err := SyncLabels(budgetID, finalized, e.ynab.Transaction())
		if err != nil {
			return nil, err
		}

		succeeded := 0
		for _, l := range logs {
			if l.Succeeded {
				succeeded++
			}
		}
		e.logger.Info("sync finished", "file", set.FilePath, "succeeded", succeeded, "failed", len(logs)-succeeded)

		allLogs = append(allLogs, logs...)
	}

	return allLogs, nil
}

// budgetID resolves the budget context: manifest first, config as fallback.
func (e *Executor) budgetID(manifest *models.Manifest) string {
	if manifest != nil && manifest.YNAB.BudgetID != "" {
		return manifest.YNAB.BudgetID
	}
	return e.config.YNAB.BudgetID
}

// Token resolves the API token for a manifest, honouring its token_env.
func Token(manifest *models.Manifest, fallback string) string {
	if manifest != nil && manifest.YNAB.TokenEnv != "" {
		if token := os.Getenv(manifest.YNAB.TokenEnv); token != "" {
			return token
		}
	}
	return fallback
}

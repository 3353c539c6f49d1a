package executors

import "fmt"

// UndoSync reverses a prior sync run from its update logs. For every input
// entry, in order, it emits exactly one output entry so the two runs stay
// index-aligned for auditing:
//
//   - entries whose sync never succeeded are skipped (there is nothing to
//     undo) and emitted as trivially succeeded with Skipped set and no remote
//     call made;
//   - entries that synced get one compensating call restoring the memo
//     captured in PreviousMemo, with the same per-item failure isolation as
//     SyncLabels.
//
// This is best-effort compensation, not a transactional rollback: if the
// remote memo changed out-of-band after the sync, the restore overwrites that
// change. Running undo twice with the same logs re-writes the same values and
// is safe only as long as remote state stayed put.
func UndoSync(budgetID string, updateLogs []UpdateLog, client RemoteClient) ([]UpdateLog, error) {
	if budgetID == "" {
		return nil, fmt.Errorf("undo requires a budget id")
	}
	if client == nil {
		return nil, fmt.Errorf("undo requires a remote client")
	}

	logs := make([]UpdateLog, 0, len(updateLogs))
	for _, prior := range updateLogs {
		entry := UpdateLog{
			LabelID:       prior.LabelID,
			TransactionID: prior.TransactionID,
			AccountID:     prior.AccountID,
			Date:          prior.Date,
			Amount:        prior.Amount,
			Payee:         prior.Payee,
			PreviousMemo:  prior.NewMemo,
			NewMemo:       prior.PreviousMemo,
		}

		if !prior.Succeeded || prior.Skipped {
			entry.Succeeded = true
			entry.Skipped = true
			logs = append(logs, entry)
			continue
		}

		if err := client.UpdateTransactionMemo(budgetID, prior.TransactionID, prior.PreviousMemo); err != nil {
			entry.Error = err.Error()
		} else {
			entry.Succeeded = true
		}
		logs = append(logs, entry)
	}

	return logs, nil
}

// Undo reverses a persisted sync run using the configured budget.
func (e *Executor) Undo(updateLogs []UpdateLog) ([]UpdateLog, error) {
	e.logger.Debug("undoing sync run", "entries", len(updateLogs))

	logs, err := UndoSync(e.config.YNAB.BudgetID, updateLogs, e.ynab.Transaction())
	if err != nil {
		return nil, err
	}

	restored, skipped := 0, 0
	for _, l := range logs {
		switch {
		case l.Skipped:
			skipped++
		case l.Succeeded:
			restored++
		}
	}
	e.logger.Info("undo finished", "restored", restored, "skipped", skipped, "failed", len(logs)-restored-skipped)

	return logs, nil
}

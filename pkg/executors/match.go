package executors

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/yurifrl/ynabel/pkg/matcher"
	"github.com/yurifrl/ynabel/pkg/models"
)

// Match runs the matching pipeline for a single label set and prints a
// human-readable preview without touching remote state. All heavy lifting is
// delegated to the pure matcher package; this is a thin, side-effecting
// wrapper around it. The caller is responsible for looping over multiple
// label sets when needed.
func (e *Executor) Match(set *models.LabelSet) ([]matcher.Match, error) {
	e.logger.Debug("matching label set", "file", set.FilePath)

	if set.AccountID == "" {
		return nil, fmt.Errorf("label set %s missing account_id", set.FilePath)
	}
	budgetID := e.config.YNAB.BudgetID
	if budgetID == "" {
		return nil, fmt.Errorf("missing budget_id")
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

	matchedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))  // green
	unmatchedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")) // red

	matched := 0
	for _, m := range matches {
		if m.Transaction != nil {
			matched++
			line := fmt.Sprintf("%s | %-30s | %s | %s", m.Label.DateString(), m.Label.Payee, m.Label.AmountString(), m.Transaction.ID)
			fmt.Println(matchedStyle.Render("= " + line))
			continue
		}

		line := fmt.Sprintf("%s | %-30s | %s | %s", m.Label.DateString(), m.Label.Payee, m.Label.AmountString(), "no match")
		fmt.Println(unmatchedStyle.Render("x " + line))
	}

	fmt.Printf("\nMatch: %d of %d label(s) matched a transaction\n", matched, len(matches))

	return matches, nil
}

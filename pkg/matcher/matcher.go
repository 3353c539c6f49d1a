// Package matcher pairs user labels with remote YNAB transactions.
//
// Matching runs in two phases. CandidatesForAllLabels computes, per label and
// independently of every other label, the transactions with an exactly equal
// amount inside a fixed date window, ordered by date proximity. Two labels may
// list the same transaction at this stage. ResolveBestMatches then resolves a
// one-to-one assignment by walking the labels in input order and claiming the
// first still-unclaimed candidate of each.
//
// The resolution is deliberately greedy and order dependent: the earliest
// label in the input wins the closest available transaction, and a later
// label sharing a candidate gets pushed to a worse match or none at all. It is
// not a global least-total-distance assignment. Callers that need reproducible
// results must fix the label input order.
//
// The package is pure: no I/O, no shared state, deterministic for a fixed
// input order.
package matcher

import (
	"sort"
	"time"

	"github.com/brunomvsouza/ynab.go/api/transaction"

	"github.com/yurifrl/ynabel/pkg/models"
)

// MatchWindow is the maximum distance between a label date and a transaction
// date for the transaction to qualify as a candidate.
const MatchWindow = 10 * 24 * time.Hour

// Candidate is a remote transaction eligible to match a label, annotated with
// its absolute date distance from the label.
type Candidate struct {
	Transaction *transaction.Transaction
	DateDiff    time.Duration
}

// MatchCandidate holds one label's accepted candidates, sorted ascending by
// date distance. Built fresh on every matching run, never persisted.
type MatchCandidate struct {
	Label      *models.Label
	Candidates []Candidate
}

// Match is a resolved pairing. Transaction is nil when no eligible candidate
// remained for the label.
type Match struct {
	Label       *models.Label
	Transaction *transaction.Transaction
}

// FinalizedMatch is a resolved pairing with its composed memo, ready to sync.
// Transaction is always present.
type FinalizedMatch struct {
	Label       *models.Label
	NewMemo     string
	Transaction *transaction.Transaction
}

// CandidatesForLabel returns the transactions whose amount equals the label
// amount exactly (both sides are milliunit integers) and whose date is within
// MatchWindow of the label date, sorted by ascending date distance. The sort
// is stable, so equally distant transactions keep their fetch order. Returns
// an empty slice when nothing qualifies.
func CandidatesForLabel(label *models.Label, transactions []*transaction.Transaction) []Candidate {
	candidates := make([]Candidate, 0)
	for _, tx := range transactions {
		if tx.Amount != label.Amount {
			continue
		}
		dateDiff := label.Date.Sub(tx.Date.Time)
		if dateDiff < 0 {
			dateDiff = -dateDiff
		}
		if dateDiff > MatchWindow {
			continue
		}
		candidates = append(candidates, Candidate{Transaction: tx, DateDiff: dateDiff})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DateDiff < candidates[j].DateDiff
	})

	return candidates
}

// CandidatesForAllLabels computes the candidate list of every label, in label
// input order. Labels do not interact at this stage. The transaction slice is
// rescanned per label; both collections are small enough that the quadratic
// scan is not worth an amount index yet.
func CandidatesForAllLabels(labels []*models.Label, transactions []*transaction.Transaction) []MatchCandidate {
	matchCandidates := make([]MatchCandidate, 0, len(labels))
	for _, label := range labels {
		matchCandidates = append(matchCandidates, MatchCandidate{
			Label:      label,
			Candidates: CandidatesForLabel(label, transactions),
		})
	}
	return matchCandidates
}

// ResolveBestMatches assigns at most one transaction to each label. It walks
// matchCandidates in input order and claims, per label, the first candidate
// whose transaction has not been claimed by an earlier label. The claimed set
// is local to the call, so concurrent resolutions never share state. Exactly
// one Match is returned per input entry, in the same order.
func ResolveBestMatches(matchCandidates []MatchCandidate) []Match {
	claimed := make(map[string]bool)

	matches := make([]Match, 0, len(matchCandidates))
	for _, mc := range matchCandidates {
		var best *transaction.Transaction
		for _, candidate := range mc.Candidates {
			if claimed[candidate.Transaction.ID] {
				// Already won by an earlier label.
				continue
			}
			best = candidate.Transaction
			break
		}
		if best != nil {
			claimed[best.ID] = true
		}
		matches = append(matches, Match{Label: mc.Label, Transaction: best})
	}

	return matches
}

// TransactionByID returns the transaction with the given ID, or nil.
func TransactionByID(transactions []*transaction.Transaction, id string) *transaction.Transaction {
	for _, tx := range transactions {
		if tx.ID == id {
			return tx
		}
	}
	return nil
}

// LabelByID returns the label with the given ID, or nil.
func LabelByID(labels []*models.Label, id string) *models.Label {
	for _, label := range labels {
		if label.ID == id {
			return label
		}
	}
	return nil
}

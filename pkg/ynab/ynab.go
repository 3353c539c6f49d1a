package ynab

import (
	"fmt"

	"github.com/brunomvsouza/ynab.go"
	"github.com/brunomvsouza/ynab.go/api/account"
	"github.com/brunomvsouza/ynab.go/api/budget"
	"github.com/brunomvsouza/ynab.go/api/transaction"
)

// YNABClient wraps the original YNAB client and adds custom functionality
type YNABClient struct {
	client ynab.ClientServicer
}

// TransactionService wraps the original transaction service
type TransactionService struct {
	client   *YNABClient
	original *transaction.Service
}

func New(token string) *YNABClient {
	return &YNABClient{
		client: ynab.NewClient(token),
	}
}

func (c *YNABClient) Transaction() *TransactionService {
	return &TransactionService{
		client:   c,
		original: c.client.Transaction(),
	}
}

func (c *YNABClient) Budget() *budget.Service {
	return c.client.Budget()
}

func (c *YNABClient) Account() *account.Service {
	return c.client.Account()
}

// GetTransactionsByAccount fetches the account's transactions. The returned
// slice is treated as an immutable snapshot for the rest of a matching
// session; callers refetch explicitly when they want fresh remote state.
func (ts *TransactionService) GetTransactionsByAccount(budgetID, accountID string) ([]*transaction.Transaction, error) {
	transactions, err := ts.original.GetTransactionsByAccount(budgetID, accountID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for account %s: %w", accountID, err)
	}
	return transactions, nil
}

// UpdateTransactionMemo replaces a transaction's memo and nothing else. YNAB's
// update endpoint takes a full payload, so the current transaction is read
// first and every other field echoed back unchanged. Without the read-back a
// payload with nil pointers would null out payee and category remotely.
func (ts *TransactionService) UpdateTransactionMemo(budgetID, transactionID, memo string) error {
	tx, err := ts.original.GetTransaction(budgetID, transactionID)
	if err != nil {
		return fmt.Errorf("failed to fetch transaction %s: %w", transactionID, err)
	}

	payload := transaction.PayloadTransaction{
		AccountID:  tx.AccountID,
		Date:       tx.Date,
		Amount:     tx.Amount,
		Cleared:    tx.Cleared,
		Approved:   tx.Approved,
		PayeeID:    tx.PayeeID,
		PayeeName:  tx.PayeeName,
		CategoryID: tx.CategoryID,
		FlagColor:  tx.FlagColor,
		ImportID:   tx.ImportID,
		Memo:       &memo,
	}

	if _, err := ts.original.UpdateTransaction(budgetID, transactionID, payload); err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}
	return nil
}

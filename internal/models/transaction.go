package models

// TransactionType classifies a balance movement.
type TransactionType string

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	TransactionTopUp      TransactionType = "TOP_UP"
	TransactionPayment    TransactionType = "PAYMENT"
	TransactionRefund     TransactionType = "REFUND"
	TransactionAdjustment TransactionType = "ADJUSTMENT"

	TransactionSuccess TransactionStatus = "SUCCESS"
	TransactionFailed  TransactionStatus = "FAILED"
	TransactionPending TransactionStatus = "PENDING"
)

// Credit reports whether the type adds to the balance.
func (t TransactionType) Credit() bool {
	return t == TransactionTopUp || t == TransactionRefund
}

// Transaction is a single balance movement.
type Transaction struct {
	ID              int64             `json:"id"`
	TransactionType TransactionType   `json:"transactionType"`
	Amount          float64           `json:"amount"`
	BalanceAfter    float64           `json:"balanceAfter"`
	Status          TransactionStatus `json:"status"`
	TransactionDate Timestamp         `json:"transactionDate"`
	Description     string            `json:"description,omitempty"`
}

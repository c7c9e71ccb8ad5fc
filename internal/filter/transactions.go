package filter

import "transitpay/internal/models"

// TransactionFilter selects transactions by exact type and transaction date.
type TransactionFilter struct {
	Type  models.TransactionType
	Range DateRange
}

// Match reports whether t passes both predicates.
func (f TransactionFilter) Match(t models.Transaction) bool {
	if f.Type != "" && t.TransactionType != f.Type {
		return false
	}
	return f.Range.Contains(t.TransactionDate.Time)
}

// Transactions returns the matching transactions in input order.
func Transactions(all []models.Transaction, f TransactionFilter) []models.Transaction {
	out := make([]models.Transaction, 0, len(all))
	for _, t := range all {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// TransactionStats summarises a set of transactions.
type TransactionStats struct {
	Count int
	// TopUps sums TOP_UP and REFUND amounts.
	TopUps   float64
	Payments float64
	Total    float64
	ByType   map[models.TransactionType]int
	ByStatus map[models.TransactionStatus]int
}

// SummarizeTransactions recomputes the stats from scratch.
func SummarizeTransactions(transactions []models.Transaction) TransactionStats {
	s := TransactionStats{
		ByType:   make(map[models.TransactionType]int),
		ByStatus: make(map[models.TransactionStatus]int),
	}
	for _, t := range transactions {
		s.Count++
		s.Total += t.Amount
		s.ByType[t.TransactionType]++
		s.ByStatus[t.Status]++
		switch {
		case t.TransactionType.Credit():
			s.TopUps += t.Amount
		case t.TransactionType == models.TransactionPayment:
			s.Payments += t.Amount
		}
	}
	return s
}

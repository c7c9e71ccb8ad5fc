package views

import (
	"context"
	"fmt"
	"sort"

	"transitpay/internal/filter"
	"transitpay/internal/format"
	"transitpay/internal/models"
)

// TransactionsController owns one snapshot of the transaction history.
type TransactionsController struct {
	Deps
	transactions []models.Transaction
	loaded       bool
}

// NewTransactionsController returns the controller.
func NewTransactionsController(d Deps) *TransactionsController {
	return &TransactionsController{Deps: d}
}

// Load fetches the history once.
func (c *TransactionsController) Load(ctx context.Context) error {
	if c.loaded {
		return nil
	}
	userID, err := c.userID(ctx)
	if err != nil {
		return err
	}
	transactions, err := c.API.Transactions.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	c.transactions = transactions
	c.loaded = true
	return nil
}

// Show loads the history and renders it through f.
func (c *TransactionsController) Show(ctx context.Context, f filter.TransactionFilter) error {
	if _, err := c.userID(ctx); err != nil {
		return err
	}
	if err := c.Load(ctx); err != nil {
		return c.loadFailed("transactions", err)
	}
	c.Apply(f)
	return nil
}

// Apply renders the transactions matching f with stats recomputed from exactly those rows.
func (c *TransactionsController) Apply(f filter.TransactionFilter) filter.TransactionStats {
	visible := filter.Transactions(c.transactions, f)
	stats := filter.SummarizeTransactions(visible)

	if len(visible) == 0 {
		c.printf("No transactions found\n")
	} else {
		tw := newTable(c.Out)
		fmt.Fprintln(tw, "ID\tDATE\tTYPE\tDESCRIPTION\tAMOUNT\tBALANCE\tSTATUS")
		for _, t := range visible {
			desc := t.Description
			if desc == "" {
				desc = format.Placeholder
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				t.ID, format.DateTime(t.TransactionDate.Time), format.TransactionType(t.TransactionType),
				desc, format.SignedAmount(t), format.Currency(t.BalanceAfter), c.badge(string(t.Status)))
		}
		tw.Flush()
	}

	c.printf("\nCount: %d  Top-ups: %s  Payments: %s  Total: %s\n",
		stats.Count, format.Currency(stats.TopUps), format.Currency(stats.Payments), format.Currency(stats.Total))
	if len(stats.ByType) > 0 {
		c.printf("By type:")
		types := make([]string, 0, len(stats.ByType))
		for t := range stats.ByType {
			types = append(types, string(t))
		}
		sort.Strings(types)
		for _, t := range types {
			c.printf(" %s=%d", format.TransactionType(models.TransactionType(t)), stats.ByType[models.TransactionType(t)])
		}
		c.printf("\n")
	}
	return stats
}

package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"transitpay/internal/models"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency renders amount as US dollars with two decimals and thousands grouping.
// Non-finite values render as zero.
func Currency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	amount = math.Round(amount*100) / 100
	if amount == 0 {
		return "$0.00"
	}
	if amount < 0 {
		return "-$" + printer.Sprintf("%.2f", -amount)
	}
	return "$" + printer.Sprintf("%.2f", amount)
}

// CurrencyOf renders an optional amount; nil is zero.
func CurrencyOf(amount *float64) string {
	if amount == nil {
		return Currency(0)
	}
	return Currency(*amount)
}

// Fare renders a journey fare, or "-" while the backend has not priced it.
func Fare(j models.Journey) string {
	if j.FareAmount() == 0 {
		return Placeholder
	}
	return Currency(j.FareAmount())
}

// SignedAmount prefixes credits with + and everything else with -.
func SignedAmount(t models.Transaction) string {
	if t.TransactionType.Credit() {
		return "+" + Currency(t.Amount)
	}
	return "-" + Currency(t.Amount)
}

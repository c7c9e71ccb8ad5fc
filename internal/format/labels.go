package format

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"transitpay/internal/models"
)

const cardMask = "•••• •••• •••• "

var titleCaser = cases.Title(language.English)

// MaskCardNumber keeps only the last four characters. The input is not validated.
func MaskCardNumber(number string) string {
	if number == "" {
		return ""
	}
	n := utf8.RuneCountInString(number)
	if n <= 4 {
		return cardMask + number
	}
	runes := []rune(number)
	return cardMask + string(runes[n-4:])
}

// NormalizeCardNumber strips whitespace typed between digit groups.
func NormalizeCardNumber(input string) string {
	return strings.Join(strings.Fields(input), "")
}

// TransactionType renders "TOP_UP" as "Top Up".
func TransactionType(t models.TransactionType) string {
	return titleCaser.String(strings.ToLower(strings.ReplaceAll(string(t), "_", " ")))
}

// StationName returns the station's name or "N/A".
func StationName(s *models.Station) string {
	if s == nil || s.Name == "" {
		return "N/A"
	}
	return s.Name
}

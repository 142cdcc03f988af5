// internal/site/format.go
package site

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats counts with thousands separators.
var printer = message.NewPrinter(language.English)

// FormatCount renders an integer with thousands separators ("1,234").
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatScore renders a score with three decimals and thousands separators.
func FormatScore(v float64) string {
	return printer.Sprintf("%.3f", v)
}

// FormatPercent renders a fraction as a percentage with one decimal.
func FormatPercent(fraction float64) string {
	return printer.Sprintf("%.1f%%", fraction*100)
}

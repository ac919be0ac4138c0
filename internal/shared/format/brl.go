// Package format renders monetary values for API payloads.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// BRL formats a decimal amount as Brazilian currency, e.g. "R$ 1.234,56".
// The value is rounded to two fraction digits.
func BRL(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("R$ %.2f", f)
}

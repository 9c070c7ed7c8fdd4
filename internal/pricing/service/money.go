package service

import (
	"fmt"
	"strings"
)

var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
}

// FormatAmount renders an amount the Belgian way: thousands separated by a
// dot, comma as decimal separator, symbol after the number ("1.234,56 €").
func FormatAmount(amount float64, currency string, decimals int) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency
	}

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	formatted := fmt.Sprintf("%.*f", decimals, amount)
	intPart := formatted
	fracPart := ""
	if decimals > 0 {
		intPart = formatted[:len(formatted)-decimals-1]
		fracPart = formatted[len(formatted)-decimals:]
	}

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := sign + strings.Join(groups, ".")
	if decimals > 0 {
		out += "," + fracPart
	}
	return out + " " + symbol
}

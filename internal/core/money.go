// Package core implements the aggregation engine behind the budget board:
// record validation, sorting, filtering, per-project sums, ranking and the
// weighted risk indicator.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseCents converts a decimal amount string to cents. Both dot and comma
// decimal separators are accepted; a third decimal digit is rounded half-up.
// Negative values are rejected, zero is allowed (a zero exact amount is how
// an entry declares itself estimated).
//
//	ParseCents("12.34")  -> 1234
//	ParseCents("12,345") -> 1234 (rounds down)
//	ParseCents("12,346") -> 1235 (rounds up)
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}

// ParseOptionalMoney parses a form amount field. An empty string means the
// field was not provided and yields nil.
func ParseOptionalMoney(s string) (*Money, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	cents, err := ParseCents(s)
	if err != nil {
		return nil, err
	}
	return &Money{Cents: cents}, nil
}

// FormatCents renders cents as a plain two-decimal amount for tables and
// exports.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTokens formats a token count with human-readable suffixes.
// e.g., 13400 -> "13.4K", 445000000 -> "445.0M", 1160000000000 -> "1.16T"
func FormatTokens(n int64) string {
	switch {
	case n >= 1_000_000_000_000:
		return fmt.Sprintf("%.2fT", float64(n)/1_000_000_000_000)
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// FormatDollars formats a USD amount with magnitude suffixes.
// e.g., 1234567.0 -> "$1.23M", 45678.0 -> "$45.7K", 123.45 -> "$123.45"
func FormatDollars(amount float64) string {
	if amount >= 1_000_000 {
		return fmt.Sprintf("$%.2fM", amount/1_000_000)
	}
	if amount >= 1_000 {
		return fmt.Sprintf("$%.1fK", amount/1_000)
	}
	return "$" + FormatFloatComma(amount)
}

// FormatPricePerM formats a per-token price as dollars per million tokens.
func FormatPricePerM(pricePerToken float64) string {
	if pricePerToken == 0 {
		return "Free"
	}
	perMillion := pricePerToken * 1_000_000
	if perMillion >= 1 {
		return fmt.Sprintf("$%.2f/M", perMillion)
	}
	return fmt.Sprintf("$%.4f/M", perMillion)
}

// FormatWoW formats a signed week-over-week percentage change.
func FormatWoW(pct int) string {
	if pct > 0 {
		return fmt.Sprintf("+%d%%", pct)
	}
	return fmt.Sprintf("%d%%", pct)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatFloatComma formats a float with two decimals and comma-separated
// integer digits, e.g. 1234567.891 -> "1,234,567.89".
func FormatFloatComma(f float64) string {
	s := strconv.FormatFloat(f, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")

	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return s
	}
	out := FormatNumber(n) + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

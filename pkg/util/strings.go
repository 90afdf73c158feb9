package util

import "strings"

// NormalizeSymbol uppercases and trims a ticker symbol.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeSymbols normalizes a slice of symbols, dropping empties.
func NormalizeSymbols(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := NormalizeSymbol(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// SplitSymbols parses a comma-separated symbol list.
func SplitSymbols(raw string) []string {
	return NormalizeSymbols(strings.Split(raw, ","))
}

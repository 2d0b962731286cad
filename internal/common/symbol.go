package common

import (
	"strings"
)

// Symbol represents a parsed equity symbol.
// Accepted formats: CODE, EXCHANGE:CODE (e.g. "LSE:TSCO") or CODE.SUFFIX (e.g. "TSCO.LON")
type Symbol struct {
	// Code is the security code (e.g., "TSCO", "IBM")
	Code string
	// Suffix is the Alpha Vantage market suffix without the dot; empty for US listings
	Suffix string
	// Raw is the original input
	Raw string
}

// ExchangeToSuffix maps exchange codes to Alpha Vantage symbol suffixes.
// US exchanges carry no suffix.
var ExchangeToSuffix = map[string]string{
	"NYSE":   "",
	"NASDAQ": "",
	"AMEX":   "",
	"US":     "",
	"LSE":    "LON",
	"TSX":    "TRT",
	"TSXV":   "TRV",
	"XETRA":  "DEX",
	"FWB":    "FRK",
	"BSE":    "BSE",
	"NSE":    "NSE",
	"SSE":    "SHH",
	"SZSE":   "SHZ",
	"ASX":    "AX",
}

// knownSuffixes are the suffixes accepted in CODE.SUFFIX form
var knownSuffixes = func() map[string]bool {
	m := make(map[string]bool, len(ExchangeToSuffix))
	for _, suffix := range ExchangeToSuffix {
		if suffix != "" {
			m[suffix] = true
		}
	}
	return m
}()

// ParseSymbol parses and normalizes a symbol. Codes are upper-cased.
//   - "ibm"      -> Code="IBM"
//   - "LSE:TSCO" -> Code="TSCO", Suffix="LON"
//   - "tsco.lon" -> Code="TSCO", Suffix="LON"
//   - "BRK.B"    -> Code="BRK.B" (unknown suffix is part of the code)
func ParseSymbol(raw string) Symbol {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Symbol{}
	}
	upper := strings.ToUpper(trimmed)

	if idx := strings.Index(upper, ":"); idx > 0 {
		exchange := upper[:idx]
		code := strings.TrimSpace(upper[idx+1:])
		suffix, ok := ExchangeToSuffix[exchange]
		if !ok {
			suffix = exchange
		}
		return Symbol{Code: code, Suffix: suffix, Raw: trimmed}
	}

	if idx := strings.LastIndex(upper, "."); idx > 0 && idx < len(upper)-1 {
		if suffix := upper[idx+1:]; knownSuffixes[suffix] {
			return Symbol{Code: upper[:idx], Suffix: suffix, Raw: trimmed}
		}
	}

	return Symbol{Code: upper, Raw: trimmed}
}

// String returns the provider-facing symbol, e.g. "TSCO.LON" or "IBM".
func (s Symbol) String() string {
	if s.Code == "" {
		return ""
	}
	if s.Suffix == "" {
		return s.Code
	}
	return s.Code + "." + s.Suffix
}

// IsZero reports whether the input was empty
func (s Symbol) IsZero() bool {
	return s.Code == ""
}

// NormalizeSymbol is shorthand for ParseSymbol(raw).String()
func NormalizeSymbol(raw string) string {
	return ParseSymbol(raw).String()
}

// NormalizeSymbols parses a list of symbols, dropping empty entries and duplicates.
func NormalizeSymbols(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	result := make([]string, 0, len(raw))
	for _, r := range raw {
		s := NormalizeSymbol(r)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		result = append(result, s)
	}
	return result
}

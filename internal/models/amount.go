package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is an optional financial figure. The zero value is unknown, which is
// distinct from a reported zero.
type Amount struct {
	Value float64
	Valid bool
}

// AmountOf returns a known amount.
func AmountOf(v float64) Amount {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Amount{}
	}
	return Amount{Value: v, Valid: true}
}

// Get returns the value and whether it is known.
func (a Amount) Get() (float64, bool) {
	return a.Value, a.Valid
}

// OrZero returns the value, or 0 when unknown. Only additive totals should use it.
func (a Amount) OrZero() float64 {
	if !a.Valid {
		return 0
	}
	return a.Value
}

// Ptr returns a pointer to the value, or nil when unknown.
func (a Amount) Ptr() *float64 {
	if !a.Valid {
		return nil
	}
	v := a.Value
	return &v
}

func (a Amount) String() string {
	if !a.Valid {
		return "N/A"
	}
	return strconv.FormatFloat(a.Value, 'f', -1, 64)
}

// missingSentinels are the placeholder strings data providers use for absent values
var missingSentinels = map[string]struct{}{
	"":     {},
	"none": {},
	"n/a":  {},
	"na":   {},
	"--":   {},
	"-":    {},
	"null": {},
}

// ParseAmount parses a provider numeric string. Sentinels and unparseable input
// yield an unknown amount rather than an error.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if _, missing := missingSentinels[strings.ToLower(s)]; missing {
		return Amount{}
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return Amount{}
	}
	return AmountOf(v)
}

// MarshalJSON encodes unknown amounts as null
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.Value)
}

// UnmarshalJSON accepts numbers, numeric strings and the missing-value sentinels
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*a = Amount{}
			return nil
		}
		*a = ParseAmount(s)
		return nil
	}

	*a = ParseAmount(string(data))
	return nil
}

// MarshalYAML mirrors the JSON encoding
func (a Amount) MarshalYAML() (interface{}, error) {
	if !a.Valid {
		return nil, nil
	}
	return a.Value, nil
}

// KnownValues returns the known values in order, skipping unknown entries
func KnownValues(amounts []Amount) []float64 {
	values := make([]float64, 0, len(amounts))
	for _, a := range amounts {
		if v, ok := a.Get(); ok {
			values = append(values, v)
		}
	}
	return values
}

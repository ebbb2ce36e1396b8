// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package vehicle

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Number is an optional numeric field. The backend serializes Postgres
// numerics either as JSON numbers or as strings, so both are accepted.
// A nil *Number means the field was absent or null.
type Number float64

// UnmarshalJSON accepts 42, 42.5, "42", "42.5" and "42,5". Strings that are
// not numbers decode as zero, which renders as N/A.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			// Free text counts as missing.
			zap.L().Debug("ignoring non-numeric value", zap.String("value", s))
			*n = 0
			return nil
		}
		*n = Number(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Float returns the value as a float64.
func (n Number) Float() float64 {
	return float64(n)
}

// Int returns the value rounded to the nearest integer.
func (n Number) Int() int {
	return int(math.Round(float64(n)))
}

// IsWhole reports whether the value has no fractional part.
func (n Number) IsWhole() bool {
	return float64(n) == math.Trunc(float64(n))
}

// NewNumber returns a pointer to a Number holding f.
func NewNumber(f float64) *Number {
	n := Number(f)
	return &n
}

// set reports whether n is present and non-zero. Zero counts as missing,
// matching how the cards have always displayed empty values.
func set(n *Number) bool {
	return n != nil && *n != 0
}

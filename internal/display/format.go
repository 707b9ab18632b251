// Package display renders calculator display text for painting.
package display

import (
	"math"
	"strconv"

	"calcpad/internal/keypad"
)

const (
	// MaxWidth is the longest numeric text painted without rounding.
	MaxWidth = 10

	// Precision is the number of fractional digits kept when rounding.
	Precision = 8
)

// Format prepares display text for painting. Numbers longer than MaxWidth
// are rounded to Precision fractional digits and trailing zeros dropped.
// Anything that is not a number, such as error text, passes through.
func Format(text string) string {
	if len(text) <= MaxWidth {
		return text
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) {
		return text
	}

	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', Precision, 64), 64)
	if err != nil {
		return text
	}
	return keypad.FormatNumber(rounded)
}

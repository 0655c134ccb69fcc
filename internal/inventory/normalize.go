package inventory

import (
	"math"
	"strconv"
	"strings"
)

// CanonicalCode normalizes a material code for join-key comparison.
// Spreadsheet round-trips turn numeric codes into floats ("1024" becomes
// "1024.0"); integral numeric codes are truncated back to their integer
// string form so both spellings hash to the same key.
func CanonicalCode(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return ""
	}

	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return trimmed
	}
	if f != math.Trunc(f) {
		return trimmed
	}

	return strconv.FormatInt(int64(f), 10)
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Round(v)
	}

	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

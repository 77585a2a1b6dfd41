package validation

import (
	"math"
	"strconv"
	"strings"

	"github.com/bnema/cookiemsg/internal/domain/entity"
)

// ClampInt returns v clamped to [lo, hi].
func ClampInt(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SanitizeSlider parses value as a number and clamps it to the slider bounds.
// Decimal input is rounded; out-of-range input is clamped, never rejected.
func SanitizeSlider(value string, minValue, maxValue int64) (int64, error) {
	value = strings.TrimSpace(value)

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(value, 64)
		if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, violation(entity.ReasonInvalidFormat, "must be a number")
		}
		switch {
		case f >= math.MaxInt64:
			n = math.MaxInt64
		case f <= math.MinInt64:
			n = math.MinInt64
		default:
			n = int64(math.Round(f))
		}
	}

	return ClampInt(n, minValue, maxValue), nil
}

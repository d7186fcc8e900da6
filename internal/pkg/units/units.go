package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// System is a user's preferred display system for distances. Distances are
// always stored in kilometers; conversion happens at the display edge.
type System string

const (
	Metric   System = "metric"
	Imperial System = "imperial"
)

const (
	milesPerKm = 0.621371
	kmPerMile  = 1.60934
)

// ToDisplayUnits converts a stored kilometer value into the given display
// system. A nil input propagates to a nil output. Metric values pass through
// unchanged; imperial values are converted and rounded to the given number of
// decimal places.
func ToDisplayUnits(km *float64, system System, decimals int) *float64 {
	if km == nil {
		return nil
	}
	if system != Imperial {
		v := *km
		return &v
	}
	v := round(*km*milesPerKm, decimals)
	return &v
}

// ToStorageUnits converts a display value back into kilometers for storage.
// A nil input propagates to a nil output.
func ToStorageUnits(value *float64, system System, decimals int) *float64 {
	if value == nil {
		return nil
	}
	if system != Imperial {
		v := *value
		return &v
	}
	v := round(*value*kmPerMile, decimals)
	return &v
}

// Format renders a display value with its unit suffix, e.g. "5000 km" or
// "3107 mi". Nil renders as "N/A".
func Format(value *float64, system System, decimals int) string {
	if value == nil {
		return "N/A"
	}
	suffix := "km"
	if system == Imperial {
		suffix = "mi"
	}
	return fmt.Sprintf("%s %s", strconv.FormatFloat(round(*value, decimals), 'f', decimals, 64), suffix)
}

// ParseInput parses free-text form input into a distance value. Everything
// except digits and the decimal point is stripped before parsing, so values
// like "12,000 km" are accepted. Returns nil for empty or unparseable input.
func ParseInput(s string) *float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}

// round rounds half away from zero at the given number of decimal places.
func round(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}

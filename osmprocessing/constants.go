package osmprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const HighwayKey = "highway"

var drivableHighways = map[string]bool{
	"motorway":       true,
	"motorway_link":  true,
	"trunk":          true,
	"trunk_link":     true,
	"primary":        true,
	"primary_link":   true,
	"secondary":      true,
	"secondary_link": true,
	"tertiary":       true,
	"tertiary_link":  true,
	"living_street":  true,
	"residential":    true,
	"service":        true,
	"unclassified":   true,
	"track":          true,
}

// ParseFixedPoint reads a coordinate attribute the way the upstream extracts
// encode them: the first '.' is removed and the remaining digits are read as
// a plain number, so "13.97" becomes 1397.
func ParseFixedPoint(s string) (float64, error) {
	digits := strings.Replace(strings.TrimSpace(s), ".", "", 1)
	if digits == "" {
		return 0, fmt.Errorf("empty coordinate %q", s)
	}

	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid coordinate %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("coordinate %q is not finite", s)
	}
	return v, nil
}

func parseDecimal(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid coordinate %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("coordinate %q is not finite", s)
	}
	return v, nil
}

package maintenance

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// repriceValue computes the adjusted price for a stored price string.
// It returns the new 2-decimal price and ok=true when a write is needed,
// ok=false when the formatted result equals the stored string (so a 0%
// adjustment of a canonical price is a no-op), and a non-nil error when the
// stored price does not parse as a finite decimal.
func repriceValue(price string, percent float64) (string, bool, error) {
	current, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil {
		return "", false, fmt.Errorf("malformed price %q: %w", price, err)
	}
	if math.IsNaN(current) || math.IsInf(current, 0) {
		return "", false, fmt.Errorf("malformed price %q: not a finite number", price)
	}

	next := math.Round(current*(1+percent/100)*100) / 100
	formatted := strconv.FormatFloat(next, 'f', 2, 64)
	if formatted == price {
		return "", false, nil
	}
	return formatted, true, nil
}

package formula

import "strconv"

// formatNumber renders a float64 the way the canonical expression form
// expects: integral values print without a decimal point ("2" not "2.0"),
// everything else uses the shortest round-trippable representation.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

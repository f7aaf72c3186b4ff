package dataset

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MaxCredits bounds a single course's credits. Larger values are rejected
// so weighted scores and their sums stay finite.
const MaxCredits = 1e6

// naTokens are the cell values read as "no value". Matching is exact, so
// "NONE" or "Na" are ordinary text.
var naTokens = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
	"-NaN":     true,
	"-nan":     true,
	"1.#IND":   true,
	"1.#QNAN":  true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

func normalize(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

func cleanCell(v string) string {
	v = strings.TrimPrefix(v, "\ufeff")
	return normalize(v)
}

func isMissing(v string) bool {
	return naTokens[v]
}

// parseCredits coerces a credits cell to a plain decimal number. NA,
// non-finite, negative and out-of-range values are rejected, as are hex
// and underscore-separated literals.
func parseCredits(v string) (float64, bool) {
	if isMissing(v) || strings.ContainsAny(v, "xX_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > MaxCredits {
		return 0, false
	}
	return f, true
}

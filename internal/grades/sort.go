package grades

import (
	"sort"
	"strings"
	"unicode"
)

// SortSemesters sorts items by their semester key in natural order, so that
// "2" precedes "10". The sort is stable.
func SortSemesters[T any](items []T, key func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return NaturalLess(key(items[i]), key(items[j]))
	})
}

// NaturalLess compares strings treating runs of digits as numbers.
func NaturalLess(a, b string) bool {
	for a != "" && b != "" {
		ad, bd := isDigit(a[0]), isDigit(b[0])
		switch {
		case ad && bd:
			na, ra := splitDigits(a)
			nb, rb := splitDigits(b)
			if c := compareNumeric(na, nb); c != 0 {
				return c < 0
			}
			a, b = ra, rb
		case ad != bd:
			return ad
		default:
			ra, rb := unicode.ToLower(rune(a[0])), unicode.ToLower(rune(b[0]))
			if ra != rb {
				return ra < rb
			}
			a, b = a[1:], b[1:]
		}
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func splitDigits(s string) (digits, rest string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// compareNumeric compares two digit runs by value without parsing them.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

package grades

import "strings"

// CreditPolicy decides whether rows without a usable grade still count
// toward total credits.
type CreditPolicy string

const (
	// CreditPolicyAll sums credits of every row with numeric credits,
	// whatever its grade.
	CreditPolicyAll CreditPolicy = "all"
	// CreditPolicyGraded sums credits only of rows that also have a
	// weighted score.
	CreditPolicyGraded CreditPolicy = "graded"
)

func (c CreditPolicy) Valid() bool {
	switch c {
	case CreditPolicyAll, CreditPolicyGraded:
		return true
	}
	return false
}

// ParseCreditPolicy accepts a policy name in any case. Empty selects the default.
func ParseCreditPolicy(s string) (CreditPolicy, bool) {
	if strings.TrimSpace(s) == "" {
		return CreditPolicyAll, true
	}
	c := CreditPolicy(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

// SemesterOrder decides the order of semester groups in every output table.
type SemesterOrder string

const (
	SemesterOrderFirstSeen SemesterOrder = "first-seen"
	SemesterOrderNatural   SemesterOrder = "natural"
)

func (o SemesterOrder) Valid() bool {
	switch o {
	case SemesterOrderFirstSeen, SemesterOrderNatural:
		return true
	}
	return false
}

// ParseSemesterOrder accepts an order name in any case. Empty selects the default.
func ParseSemesterOrder(s string) (SemesterOrder, bool) {
	if strings.TrimSpace(s) == "" {
		return SemesterOrderFirstSeen, true
	}
	o := SemesterOrder(strings.ToLower(strings.TrimSpace(s)))
	return o, o.Valid()
}

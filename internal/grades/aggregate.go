package grades

import "math"

// Round2 rounds x to two decimals, halves away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// GPA divides the weighted score by the credits and rounds to two decimals.
// Zero or negative credits yield 0.
func GPA(weighted, credits float64) float64 {
	if credits <= 0 {
		return 0
	}
	return Round2(weighted / credits)
}

// contributes reports the credits a scored record adds under policy.
func contributes(sr ScoredRecord, policy CreditPolicy) (credits float64, ok bool) {
	if sr.Credits == nil {
		return 0, false
	}
	if policy == CreditPolicyGraded && sr.WeightedScore == nil {
		return 0, false
	}
	return *sr.Credits, true
}

// Aggregate reduces scored records to one summary per semester and one
// cumulative summary. Semesters are ordered per opts.SemesterOrder.
func Aggregate(scored []ScoredRecord, opts Options) ([]SemesterSummary, CumulativeSummary) {
	index := make(map[string]int)
	var semesters []SemesterSummary
	var cum CumulativeSummary

	for _, sr := range scored {
		i, ok := index[sr.Semester]
		if !ok {
			i = len(semesters)
			index[sr.Semester] = i
			semesters = append(semesters, SemesterSummary{Semester: sr.Semester})
		}
		s := &semesters[i]
		s.Courses++
		cum.Courses++
		if c, ok := contributes(sr, opts.CreditPolicy); ok {
			s.TotalCredits += c
			cum.TotalCredits += c
		}
		if sr.WeightedScore != nil {
			s.TotalWeightedScore += *sr.WeightedScore
			cum.TotalWeightedScore += *sr.WeightedScore
		}
	}

	for i := range semesters {
		semesters[i].GPA = GPA(semesters[i].TotalWeightedScore, semesters[i].TotalCredits)
	}
	cum.CumulativeGPA = GPA(cum.TotalWeightedScore, cum.TotalCredits)

	if opts.SemesterOrder == SemesterOrderNatural {
		SortSemesters(semesters, func(s SemesterSummary) string { return s.Semester })
	}
	if semesters == nil {
		semesters = []SemesterSummary{}
	}
	return semesters, cum
}

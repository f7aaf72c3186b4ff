// Package schema checks a report for internal consistency.
package schema

import (
	"fmt"
	"math"

	"github.com/dshills/gpareport/internal/dataset"
	"github.com/dshills/gpareport/internal/grades"
	"github.com/dshills/gpareport/internal/report"
)

// ValidationError describes a single consistency violation.
type ValidationError struct {
	Path    string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// tolerance absorbs float summation order differences between the
// cumulative and per-semester totals.
const tolerance = 1e-9

// Validate re-derives the report's totals and checks them against the
// stored figures.
func Validate(r *report.Report) []ValidationError {
	var errs []ValidationError

	if r.Tool == "" {
		errs = append(errs, ValidationError{"tool", "required"})
	}
	if !r.Input.CreditPolicy.Valid() {
		errs = append(errs, ValidationError{"input.credit_policy", fmt.Sprintf("invalid: %q", r.Input.CreditPolicy)})
	}
	if !r.Input.SemesterOrder.Valid() {
		errs = append(errs, ValidationError{"input.semester_order", fmt.Sprintf("invalid: %q", r.Input.SemesterOrder)})
	}

	// Semester totals must add up to the cumulative figures.
	var credits, weighted float64
	var courses int
	seen := make(map[string]bool)
	for i, s := range r.Semesters {
		prefix := fmt.Sprintf("semesters[%d]", i)
		if seen[s.Semester] {
			errs = append(errs, ValidationError{prefix + ".semester", fmt.Sprintf("duplicate semester: %q", s.Semester)})
		}
		seen[s.Semester] = true
		if s.TotalCredits < 0 {
			errs = append(errs, ValidationError{prefix + ".total_credits", "must be >= 0"})
		}
		if want := grades.GPA(s.TotalWeightedScore, s.TotalCredits); s.GPA != want {
			errs = append(errs, ValidationError{prefix + ".gpa", fmt.Sprintf("gpa %.2f does not match computed %.2f", s.GPA, want)})
		}
		credits += s.TotalCredits
		weighted += s.TotalWeightedScore
		courses += s.Courses
	}
	c := r.Cumulative
	if !near(credits, c.TotalCredits) {
		errs = append(errs, ValidationError{"cumulative.total_credits", fmt.Sprintf("expected %g from semesters, got %g", credits, c.TotalCredits)})
	}
	if !near(weighted, c.TotalWeightedScore) {
		errs = append(errs, ValidationError{"cumulative.total_weighted_score", fmt.Sprintf("expected %g from semesters, got %g", weighted, c.TotalWeightedScore)})
	}
	if courses != c.Courses {
		errs = append(errs, ValidationError{"cumulative.courses", fmt.Sprintf("expected %d from semesters, got %d", courses, c.Courses)})
	}
	if c.Courses != r.Input.Rows {
		errs = append(errs, ValidationError{"cumulative.courses", fmt.Sprintf("expected %d input rows, got %d", r.Input.Rows, c.Courses)})
	}
	if want := grades.GPA(c.TotalWeightedScore, c.TotalCredits); c.CumulativeGPA != want {
		errs = append(errs, ValidationError{"cumulative.cumulative_gpa", fmt.Sprintf("gpa %.2f does not match computed %.2f", c.CumulativeGPA, want)})
	}

	// Groupings must agree with the summaries.
	if len(r.BySemester) != len(r.Semesters) {
		errs = append(errs, ValidationError{"by_semester", fmt.Sprintf("expected %d semesters, got %d", len(r.Semesters), len(r.BySemester))})
	} else {
		for i, g := range r.BySemester {
			prefix := fmt.Sprintf("by_semester[%d]", i)
			if g.Semester != r.Semesters[i].Semester {
				errs = append(errs, ValidationError{prefix + ".semester", fmt.Sprintf("order differs from semesters: %q vs %q", g.Semester, r.Semesters[i].Semester)})
			}
			if len(g.Courses) != r.Semesters[i].Courses {
				errs = append(errs, ValidationError{prefix + ".courses", fmt.Sprintf("expected %d courses, got %d", r.Semesters[i].Courses, len(g.Courses))})
			}
		}
	}

	graded := r.Input.Rows - r.Diagnostics.MissingGradeCount
	gradeSeen := make(map[string]bool)
	var counted int
	for i, gc := range r.Distribution {
		prefix := fmt.Sprintf("distribution[%d]", i)
		if gc.Grade == "" {
			errs = append(errs, ValidationError{prefix + ".grade", "required"})
		}
		if gradeSeen[gc.Grade] {
			errs = append(errs, ValidationError{prefix + ".grade", fmt.Sprintf("duplicate grade: %q", gc.Grade)})
		}
		gradeSeen[gc.Grade] = true
		if gc.Count < 1 {
			errs = append(errs, ValidationError{prefix + ".count", "must be >= 1"})
		}
		if gc.Known != grades.Known(gc.Grade) {
			errs = append(errs, ValidationError{prefix + ".known", fmt.Sprintf("mismatch for grade %q", gc.Grade)})
		}
		counted += gc.Count
	}
	if counted != graded {
		errs = append(errs, ValidationError{"distribution", fmt.Sprintf("expected %d graded rows, counted %d", graded, counted)})
	}

	byGrade := make(map[string]int, len(r.ByGrade))
	for _, g := range r.ByGrade {
		byGrade[g.Grade] = len(g.Courses)
	}
	for i, gc := range r.Distribution {
		if n, ok := byGrade[gc.Grade]; !ok || n != gc.Count {
			errs = append(errs, ValidationError{fmt.Sprintf("by_grade[%q]", gc.Grade), fmt.Sprintf("expected %d courses to match distribution[%d], got %d", gc.Count, i, n)})
		}
	}
	if len(byGrade) != len(r.Distribution) {
		errs = append(errs, ValidationError{"by_grade", fmt.Sprintf("expected %d grades, got %d", len(r.Distribution), len(byGrade))})
	}

	errs = append(errs, validateIssues(r.Diagnostics)...)

	return errs
}

// validateIssues checks that row issues carry known kinds and agree with
// the diagnostic counters.
func validateIssues(d dataset.Diagnostics) []ValidationError {
	var errs []ValidationError
	var missing, invalid int
	for i, iss := range d.Issues {
		if !iss.Kind.Valid() {
			errs = append(errs, ValidationError{fmt.Sprintf("diagnostics.issues[%d].kind", i), fmt.Sprintf("invalid: %q", iss.Kind)})
		}
		switch iss.Kind {
		case dataset.KindMissingGrade:
			missing++
		case dataset.KindInvalidCredits:
			invalid++
		}
	}
	if missing != d.MissingGradeCount {
		errs = append(errs, ValidationError{"diagnostics.missing_grade_count", fmt.Sprintf("expected %d from issues, got %d", missing, d.MissingGradeCount)})
	}
	if invalid != d.InvalidCreditsCount {
		errs = append(errs, ValidationError{"diagnostics.invalid_credits_count", fmt.Sprintf("expected %d from issues, got %d", invalid, d.InvalidCreditsCount)})
	}
	return errs
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= tolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

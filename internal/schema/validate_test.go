package schema

import (
	"strconv"
	"strings"
	"testing"

	"github.com/dshills/gpareport/internal/dataset"
	"github.com/dshills/gpareport/internal/grades"
	"github.com/dshills/gpareport/internal/report"
)

const sample = `Semester,Course,Grade,Credits
1,Algebra,A,3
1,Mystery,F,3
2,Ethics,,2
2,Networks,BC,x
3,Databases,AB,4
`

func validReport(t *testing.T, opts grades.Options) *report.Report {
	t.Helper()
	ds, err := dataset.Parse(strings.NewReader(sample), dataset.DefaultLayout())
	if err != nil {
		t.Fatal(err)
	}
	return report.Build(ds, opts)
}

func hasPath(errs []ValidationError, path string) bool {
	for _, e := range errs {
		if e.Path == path {
			return true
		}
	}
	return false
}

func TestValidateValid(t *testing.T) {
	for _, opts := range []grades.Options{
		grades.DefaultOptions(),
		{CreditPolicy: grades.CreditPolicyGraded, SemesterOrder: grades.SemesterOrderNatural},
	} {
		errs := Validate(validReport(t, opts))
		for _, e := range errs {
			t.Errorf("unexpected error: %s", e)
		}
	}
}

func TestValidateMissingTool(t *testing.T) {
	r := validReport(t, grades.DefaultOptions())
	r.Tool = ""
	if !hasPath(Validate(r), "tool") {
		t.Error("expected error for missing tool")
	}
}

func TestValidateCumulativeCredits(t *testing.T) {
	r := validReport(t, grades.DefaultOptions())
	r.Cumulative.TotalCredits += 1
	errs := Validate(r)
	if !hasPath(errs, "cumulative.total_credits") {
		t.Error("expected error for cumulative credits mismatch")
	}
	if !hasPath(errs, "cumulative.cumulative_gpa") {
		t.Error("expected error for cumulative gpa mismatch")
	}
}

func TestValidateSemesterGPA(t *testing.T) {
	r := validReport(t, grades.DefaultOptions())
	r.Semesters[0].GPA = 1.23
	if !hasPath(Validate(r), "semesters[0].gpa") {
		t.Error("expected error for semester gpa mismatch")
	}
}

func TestValidateDuplicateSemester(t *testing.T) {
	r := validReport(t, grades.DefaultOptions())
	r.Semesters[1].Semester = r.Semesters[0].Semester
	errs := Validate(r)
	if !hasPath(errs, "semesters[1].semester") {
		t.Error("expected error for duplicate semester")
	}
	if !hasPath(errs, "by_semester[1].semester") {
		t.Error("expected error for grouping order mismatch")
	}
}

func TestValidateDistribution(t *testing.T) {
	r := validReport(t, grades.DefaultOptions())
	r.Distribution[0].Count++
	errs := Validate(r)
	if !hasPath(errs, "distribution") {
		t.Error("expected error for distribution total mismatch")
	}
	if !hasPath(errs, `by_grade["A"]`) {
		t.Errorf("expected error for by_grade mismatch, got %v", errs)
	}
}

func TestValidateKnownFlag(t *testing.T) {
	r := validReport(t, grades.DefaultOptions())
	for i := range r.Distribution {
		if r.Distribution[i].Grade == "F" {
			r.Distribution[i].Known = true
			if !hasPath(Validate(r), "distribution["+strconv.Itoa(i)+"].known") {
				t.Error("expected error for known flag mismatch")
			}
			return
		}
	}
	t.Fatal("grade F not in distribution")
}

func TestValidateInvalidPolicy(t *testing.T) {
	r := validReport(t, grades.DefaultOptions())
	r.Input.CreditPolicy = "some"
	if !hasPath(Validate(r), "input.credit_policy") {
		t.Error("expected error for invalid credit policy")
	}
}

func TestValidateIssues(t *testing.T) {
	r := validReport(t, grades.DefaultOptions())
	r.Diagnostics.Issues = append(r.Diagnostics.Issues, dataset.Issue{Row: 9, Kind: "BROKEN"})
	if !hasPath(Validate(r), "diagnostics.issues["+strconv.Itoa(len(r.Diagnostics.Issues)-1)+"].kind") {
		t.Error("expected error for unknown issue kind")
	}

	r = validReport(t, grades.DefaultOptions())
	r.Diagnostics.InvalidCreditsCount++
	if !hasPath(Validate(r), "diagnostics.invalid_credits_count") {
		t.Error("expected error for invalid credits count mismatch")
	}
}

func TestValidateEmpty(t *testing.T) {
	ds, err := dataset.Parse(strings.NewReader(""), dataset.DefaultLayout())
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range Validate(report.Build(ds, grades.DefaultOptions())) {
		t.Errorf("unexpected error: %s", e)
	}
}

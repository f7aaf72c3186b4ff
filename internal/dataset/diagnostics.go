package dataset

// IssueKind classifies a row-level diagnostic.
type IssueKind string

const (
	KindUnknownGrade   IssueKind = "UNKNOWN_GRADE"
	KindMissingGrade   IssueKind = "MISSING_GRADE"
	KindInvalidCredits IssueKind = "INVALID_CREDITS"
)

func (k IssueKind) Valid() bool {
	switch k {
	case KindUnknownGrade, KindMissingGrade, KindInvalidCredits:
		return true
	}
	return false
}

// Issue records one row that could not be fully interpreted.
type Issue struct {
	Row    int       `json:"row"`
	Kind   IssueKind `json:"kind"`
	Column string    `json:"column,omitempty"`
	Value  string    `json:"value,omitempty"`
}

// Diagnostics are reported alongside the parsed records; none of them drops a row.
type Diagnostics struct {
	UnknownGrades       []string `json:"unknown_grades"`
	MissingGradeCount   int      `json:"missing_grade_count"`
	InvalidCreditsCount int      `json:"invalid_credits_count"`
	MissingColumns      []string `json:"missing_columns,omitempty"`
	Issues              []Issue  `json:"issues,omitempty"`
}

func (d *Diagnostics) add(iss Issue) {
	d.Issues = append(d.Issues, iss)
}

// Empty reports whether no diagnostic was raised.
func (d Diagnostics) Empty() bool {
	return len(d.UnknownGrades) == 0 &&
		d.MissingGradeCount == 0 &&
		d.InvalidCreditsCount == 0 &&
		len(d.MissingColumns) == 0
}

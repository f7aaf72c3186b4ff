// Package grades is the grade aggregation engine: scoring, per-semester and
// cumulative GPA, grade distribution and course groupings.
package grades

// CourseRecord is one parsed input row. Credits is nil when the credits cell
// could not be coerced to a non-negative number. An empty Grade means the
// grade cell was missing.
type CourseRecord struct {
	Row        int      `json:"row"`
	Semester   string   `json:"semester"`
	CourseName string   `json:"course_name"`
	Grade      string   `json:"grade"`
	Credits    *float64 `json:"credits"`
}

// ScoredRecord is a CourseRecord with its derived grade point and weighted score.
type ScoredRecord struct {
	CourseRecord
	GradePoint    *float64 `json:"grade_point"`
	WeightedScore *float64 `json:"weighted_score"`
}

// SemesterSummary holds the totals and GPA of one semester.
type SemesterSummary struct {
	Semester           string  `json:"semester"`
	Courses            int     `json:"courses"`
	TotalCredits       float64 `json:"total_credits"`
	TotalWeightedScore float64 `json:"total_weighted_score"`
	GPA                float64 `json:"gpa"`
}

// CumulativeSummary holds the totals and GPA across the whole dataset.
type CumulativeSummary struct {
	Courses            int     `json:"courses"`
	TotalCredits       float64 `json:"total_credits"`
	TotalWeightedScore float64 `json:"total_weighted_score"`
	CumulativeGPA      float64 `json:"cumulative_gpa"`
}

// GradeCount is the number of rows carrying a literal grade value.
type GradeCount struct {
	Grade string `json:"grade"`
	Count int    `json:"count"`
	Known bool   `json:"known"`
}

// CourseCredits is a course listed under its semester.
type CourseCredits struct {
	CourseName string   `json:"course_name"`
	Credits    *float64 `json:"credits"`
}

// SemesterCourses lists the courses of one semester in row order.
type SemesterCourses struct {
	Semester string          `json:"semester"`
	Courses  []CourseCredits `json:"courses"`
}

// GradeCourses lists the course names that received one grade value.
type GradeCourses struct {
	Grade   string   `json:"grade"`
	Courses []string `json:"courses"`
}

// Options controls the policy choices of the aggregator.
type Options struct {
	CreditPolicy  CreditPolicy
	SemesterOrder SemesterOrder
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		CreditPolicy:  CreditPolicyAll,
		SemesterOrder: SemesterOrderFirstSeen,
	}
}

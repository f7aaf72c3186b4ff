// Package report assembles the engine's output artifacts into one value
// that renderers and the HTTP service consume.
package report

import (
	"path/filepath"

	"github.com/dshills/gpareport/internal/dataset"
	"github.com/dshills/gpareport/internal/grades"
)

// Tool is the name recorded in every report.
const Tool = "gpareport"

// Report is the top-level output object.
type Report struct {
	Tool         string                   `json:"tool"`
	Version      string                   `json:"version"`
	Input        Input                    `json:"input"`
	Cumulative   grades.CumulativeSummary `json:"cumulative"`
	Semesters    []grades.SemesterSummary `json:"semesters"`
	Distribution []grades.GradeCount      `json:"distribution"`
	BySemester   []grades.SemesterCourses `json:"by_semester"`
	ByGrade      []grades.GradeCourses    `json:"by_grade"`
	Diagnostics  dataset.Diagnostics      `json:"diagnostics"`
}

// Input describes the data file and settings used for the report.
type Input struct {
	DataFile      string               `json:"data_file,omitempty"`
	DataHash      string               `json:"data_hash,omitempty"`
	Profile       string               `json:"profile,omitempty"`
	Rows          int                  `json:"rows"`
	CreditPolicy  grades.CreditPolicy  `json:"credit_policy"`
	SemesterOrder grades.SemesterOrder `json:"semester_order"`
}

// Build runs scoring, aggregation and distribution over a loaded dataset.
func Build(ds *dataset.Dataset, opts grades.Options) *Report {
	if !opts.CreditPolicy.Valid() {
		opts.CreditPolicy = grades.CreditPolicyAll
	}
	if !opts.SemesterOrder.Valid() {
		opts.SemesterOrder = grades.SemesterOrderFirstSeen
	}

	scored := grades.Score(ds.Records)
	semesters, cumulative := grades.Aggregate(scored, opts)

	r := &Report{
		Tool: Tool,
		Input: Input{
			DataHash:      ds.Hash,
			Rows:          len(ds.Records),
			CreditPolicy:  opts.CreditPolicy,
			SemesterOrder: opts.SemesterOrder,
		},
		Cumulative:   cumulative,
		Semesters:    semesters,
		Distribution: grades.Distribution(ds.Records),
		BySemester:   grades.GroupBySemester(ds.Records, opts.SemesterOrder),
		ByGrade:      grades.GroupByGrade(ds.Records),
		Diagnostics:  ds.Diagnostics,
	}
	if ds.FilePath != "" {
		r.Input.DataFile = filepath.Base(ds.FilePath)
	}
	return r
}

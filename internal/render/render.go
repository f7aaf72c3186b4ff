// Package render produces Markdown output from a report.
package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dshills/gpareport/internal/grades"
	"github.com/dshills/gpareport/internal/report"
)

// Markdown renders a report as a Markdown document.
func Markdown(r *report.Report) string {
	var b strings.Builder

	// Summary
	b.WriteString("# Academic Summary\n\n")
	if r.Input.DataFile != "" {
		fmt.Fprintf(&b, "**Data:** %s\n", r.Input.DataFile)
	}
	fmt.Fprintf(&b, "**Total Credits:** %s\n", formatNumber(r.Cumulative.TotalCredits))
	fmt.Fprintf(&b, "**Cumulative GPA:** %.2f\n", r.Cumulative.CumulativeGPA)
	fmt.Fprintf(&b, "**Courses:** %d\n\n", r.Cumulative.Courses)

	// GPA per semester
	b.WriteString("## GPA per Semester\n\n")
	if len(r.Semesters) == 0 {
		b.WriteString("No courses found.\n\n")
	} else {
		b.WriteString("| Semester | Courses | Credits | GPA |\n")
		b.WriteString("|---|---:|---:|---:|\n")
		for _, s := range r.Semesters {
			fmt.Fprintf(&b, "| %s | %d | %s | %.2f |\n", escape(s.Semester), s.Courses, formatNumber(s.TotalCredits), s.GPA)
		}
		b.WriteString("\n")
	}

	// Grade distribution
	if len(r.Distribution) > 0 {
		b.WriteString("## Grade Distribution\n\n")
		b.WriteString("| Grade | Count | Share |\n")
		b.WriteString("|---|---:|---:|\n")
		total := 0
		for _, gc := range r.Distribution {
			total += gc.Count
		}
		for _, gc := range byCount(r.Distribution) {
			label := escape(gc.Grade)
			if !gc.Known {
				label += " (unknown)"
			}
			fmt.Fprintf(&b, "| %s | %d | %.1f%% |\n", label, gc.Count, 100*float64(gc.Count)/float64(total))
		}
		b.WriteString("\n")
	}

	// Courses per semester
	if len(r.BySemester) > 0 {
		b.WriteString("## Courses per Semester\n\n")
		for _, g := range r.BySemester {
			fmt.Fprintf(&b, "### Semester: %s (%d courses)\n\n", g.Semester, len(g.Courses))
			b.WriteString("| # | Course | Credits |\n")
			b.WriteString("|---:|---|---:|\n")
			for i, c := range g.Courses {
				fmt.Fprintf(&b, "| %d | %s | %s |\n", i+1, escape(c.CourseName), formatCredits(c.Credits))
			}
			b.WriteString("\n")
		}
	}

	// Courses per grade
	if len(r.ByGrade) > 0 {
		b.WriteString("## Courses per Grade\n\n")
		for _, g := range r.ByGrade {
			fmt.Fprintf(&b, "### Grade: %s (%d courses)\n\n", g.Grade, len(g.Courses))
			for i, name := range g.Courses {
				fmt.Fprintf(&b, "%d. %s\n", i+1, name)
			}
			b.WriteString("\n")
		}
	}

	renderDiagnostics(&b, r)

	return b.String()
}

func renderDiagnostics(b *strings.Builder, r *report.Report) {
	d := r.Diagnostics
	if d.Empty() {
		return
	}
	b.WriteString("## Diagnostics\n\n")
	if len(d.MissingColumns) > 0 {
		fmt.Fprintf(b, "- Missing columns: %s\n", strings.Join(d.MissingColumns, ", "))
	}
	if len(d.UnknownGrades) > 0 {
		fmt.Fprintf(b, "- Invalid grades found: %s\n", strings.Join(d.UnknownGrades, ", "))
	}
	if d.MissingGradeCount > 0 {
		fmt.Fprintf(b, "- Missing grades found in %d rows\n", d.MissingGradeCount)
	}
	if d.InvalidCreditsCount > 0 {
		fmt.Fprintf(b, "- Invalid credit values found in %d rows\n", d.InvalidCreditsCount)
	}
	b.WriteString("\n")
}

// byCount orders grades by descending count, keeping first-seen order for ties.
func byCount(dist []grades.GradeCount) []grades.GradeCount {
	out := make([]grades.GradeCount, len(dist))
	copy(out, dist)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatCredits(c *float64) string {
	if c == nil {
		return "-"
	}
	return formatNumber(*c)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Package dataset reads course records from delimited files and collects
// non-fatal diagnostics about the rows it could not fully interpret.
package dataset

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/gpareport/internal/grades"
)

// ErrDataSourceNotFound is returned when the input cannot be located, opened
// or read as delimited text. It is the only fatal input condition.
var ErrDataSourceNotFound = errors.New("data source not found")

// Layout describes how input columns are named. Each field lists header
// candidates matched case-insensitively; the first match wins.
type Layout struct {
	Semester []string
	Course   []string
	Grade    []string
	Credits  []string
	// Comma is the field delimiter. Zero selects ',' (or '\t' for .tsv files in Load).
	Comma rune
}

// DefaultLayout accepts the column names of the original grade sheets.
func DefaultLayout() Layout {
	return Layout{
		Semester: []string{"Semester"},
		Course:   []string{"Mata Kuliah", "Nama Mata Kuliah B. Inggris", "Course"},
		Grade:    []string{"Nilai", "Grade"},
		Credits:  []string{"SKS", "Credits"},
	}
}

// Dataset holds a loaded table of course records with its diagnostics.
type Dataset struct {
	FilePath    string
	Hash        string
	Header      []string
	Records     []grades.CourseRecord
	Diagnostics Diagnostics
}

// Load reads a data file and computes its SHA-256 hash.
func Load(path string, layout Layout) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset.Load: %w: %w", ErrDataSourceNotFound, err)
	}
	if layout.Comma == 0 && strings.EqualFold(filepath.Ext(path), ".tsv") {
		layout.Comma = '\t'
	}
	ds, err := Parse(bytes.NewReader(data), layout)
	if err != nil {
		return nil, err
	}
	h := sha256.Sum256(data)
	ds.FilePath = path
	ds.Hash = fmt.Sprintf("sha256:%x", h)
	return ds, nil
}

// Parse reads delimited rows from r. The first row is the header.
// Stray quotes inside fields are kept as text; only a failed read is fatal.
func Parse(r io.Reader, layout Layout) (*Dataset, error) {
	reader := csv.NewReader(r)
	if layout.Comma != 0 {
		reader.Comma = layout.Comma
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset.Parse: %w: %w", ErrDataSourceNotFound, err)
	}

	ds := &Dataset{
		Records:     []grades.CourseRecord{},
		Diagnostics: Diagnostics{UnknownGrades: []string{}},
	}
	if len(rows) == 0 {
		return ds, nil
	}

	ds.Header = make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		ds.Header[i] = cleanCell(cell)
	}
	cols := resolveColumns(ds.Header, layout)
	ds.Diagnostics.MissingColumns = cols.missing()

	unknown := make(map[string]bool)
	for i, row := range rows[1:] {
		rowNum := i + 1
		rec := grades.CourseRecord{
			Row:        rowNum,
			Semester:   cellAt(row, cols.semester),
			CourseName: cellAt(row, cols.course),
		}

		grade := cellAt(row, cols.grade)
		switch {
		case isMissing(grade):
			ds.Diagnostics.MissingGradeCount++
			ds.Diagnostics.add(Issue{Row: rowNum, Kind: KindMissingGrade, Column: cols.name(cols.grade)})
		case !grades.Known(grade):
			rec.Grade = grade
			if !unknown[grade] {
				unknown[grade] = true
				ds.Diagnostics.UnknownGrades = append(ds.Diagnostics.UnknownGrades, grade)
			}
			ds.Diagnostics.add(Issue{Row: rowNum, Kind: KindUnknownGrade, Column: cols.name(cols.grade), Value: grade})
		default:
			rec.Grade = grade
		}

		raw := cellAt(row, cols.credits)
		if c, ok := parseCredits(raw); ok {
			rec.Credits = &c
		} else {
			ds.Diagnostics.InvalidCreditsCount++
			ds.Diagnostics.add(Issue{Row: rowNum, Kind: KindInvalidCredits, Column: cols.name(cols.credits), Value: raw})
		}

		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

type columns struct {
	header                           []string
	semester, course, grade, credits int
}

func resolveColumns(header []string, layout Layout) columns {
	return columns{
		header:   header,
		semester: findColumn(header, layout.Semester),
		course:   findColumn(header, layout.Course),
		grade:    findColumn(header, layout.Grade),
		credits:  findColumn(header, layout.Credits),
	}
}

func (c columns) name(idx int) string {
	if idx < 0 {
		return ""
	}
	return c.header[idx]
}

func (c columns) missing() []string {
	var out []string
	for _, col := range []struct {
		name string
		idx  int
	}{
		{"semester", c.semester},
		{"course", c.course},
		{"grade", c.grade},
		{"credits", c.credits},
	} {
		if col.idx < 0 {
			out = append(out, col.name)
		}
	}
	return out
}

// findColumn returns the index of the first candidate present in header.
func findColumn(header []string, candidates []string) int {
	for _, cand := range candidates {
		want := normalize(cand)
		for i, col := range header {
			if strings.EqualFold(col, want) {
				return i
			}
		}
	}
	return -1
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return cleanCell(row[idx])
}

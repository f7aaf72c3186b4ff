package profile

import (
	"strings"
	"testing"

	"github.com/dshills/gpareport/internal/dataset"
)

func TestLoadBuiltinAll(t *testing.T) {
	names := []string{"general", "english", "indonesian"}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			p, err := LoadBuiltin(name)
			if err != nil {
				t.Fatalf("LoadBuiltin(%q): %v", name, err)
			}
			if p.Name != name {
				t.Errorf("profile name = %q, want %q", p.Name, name)
			}
			l := p.Layout()
			if len(l.Semester) == 0 || len(l.Course) == 0 || len(l.Grade) == 0 || len(l.Credits) == 0 {
				t.Errorf("layout has empty column candidates: %+v", l)
			}
		})
	}
}

func TestLoadBuiltinDefault(t *testing.T) {
	p, err := LoadBuiltin("")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != Default {
		t.Errorf("default profile = %q, want %q", p.Name, Default)
	}
}

func TestLoadBuiltinNotFound(t *testing.T) {
	_, err := LoadBuiltin("nonexistent")
	if err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestList(t *testing.T) {
	names, err := List()
	if err != nil {
		t.Fatal(err)
	}
	required := map[string]bool{"general": false, "english": false, "indonesian": false}
	for _, n := range names {
		required[n] = true
	}
	for name, found := range required {
		if !found {
			t.Errorf("missing required profile: %s", name)
		}
	}
}

func TestEnglishCourseColumn(t *testing.T) {
	p, err := LoadBuiltin("english")
	if err != nil {
		t.Fatal(err)
	}
	input := "Semester,Mata Kuliah,Nama Mata Kuliah B. Inggris,Nilai,SKS\n1,Kalkulus,Calculus,A,3\n"
	ds, err := dataset.Parse(strings.NewReader(input), p.Layout())
	if err != nil {
		t.Fatal(err)
	}
	if got := ds.Records[0].CourseName; got != "Calculus" {
		t.Errorf("english course name = %q, want Calculus", got)
	}

	p, err = LoadBuiltin("indonesian")
	if err != nil {
		t.Fatal(err)
	}
	ds, err = dataset.Parse(strings.NewReader(input), p.Layout())
	if err != nil {
		t.Fatal(err)
	}
	if got := ds.Records[0].CourseName; got != "Kalkulus" {
		t.Errorf("indonesian course name = %q, want Kalkulus", got)
	}
}

func TestValidateDelimiter(t *testing.T) {
	p := &Profile{
		Columns:   Columns{Semester: []string{"a"}, Course: []string{"b"}, Grade: []string{"c"}, Credits: []string{"d"}},
		Delimiter: ";;",
	}
	if err := p.validate(); err == nil {
		t.Error("expected error for multi-character delimiter")
	}
	p.Delimiter = ";"
	if err := p.validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Layout().Comma != ';' {
		t.Errorf("Comma = %q, want ';'", p.Layout().Comma)
	}
}

func TestDescribe(t *testing.T) {
	p, err := LoadBuiltin("indonesian")
	if err != nil {
		t.Fatal(err)
	}
	text := Describe(p)
	for _, want := range []string{"indonesian (v1)", "Mata Kuliah", "SKS"} {
		if !strings.Contains(text, want) {
			t.Errorf("description missing %q", want)
		}
	}
}

// Package profile handles loading built-in input column profiles.
package profile

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/dshills/gpareport/internal/dataset"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Default is the profile used when none is named.
const Default = "general"

// Profile names the header candidates for each input column.
type Profile struct {
	Name        string  `yaml:"name"`
	Version     int     `yaml:"version"`
	Description string  `yaml:"description"`
	Columns     Columns `yaml:"columns"`
	Delimiter   string  `yaml:"delimiter"`
}

// Columns lists header candidates per field, in priority order.
type Columns struct {
	Semester []string `yaml:"semester"`
	Course   []string `yaml:"course"`
	Grade    []string `yaml:"grade"`
	Credits  []string `yaml:"credits"`
}

// LoadBuiltin loads a built-in profile by name.
func LoadBuiltin(name string) (*Profile, error) {
	if name == "" {
		name = Default
	}
	filename := name + ".yaml"
	data, err := builtinFS.ReadFile("builtin/" + filename)
	if err != nil {
		return nil, fmt.Errorf("profile.LoadBuiltin: unknown profile %q: %w", name, err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("profile.LoadBuiltin: parse %q: %w", name, err)
	}
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("profile.LoadBuiltin: %q: %w", name, err)
	}
	return &p, nil
}

func (p *Profile) validate() error {
	for _, f := range []struct {
		name  string
		names []string
	}{
		{"semester", p.Columns.Semester},
		{"course", p.Columns.Course},
		{"grade", p.Columns.Grade},
		{"credits", p.Columns.Credits},
	} {
		if len(f.names) == 0 {
			return fmt.Errorf("columns.%s: at least one header name required", f.name)
		}
	}
	if p.Delimiter != "" && utf8.RuneCountInString(p.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", p.Delimiter)
	}
	return nil
}

// Layout converts the profile into a dataset layout.
func (p *Profile) Layout() dataset.Layout {
	l := dataset.Layout{
		Semester: p.Columns.Semester,
		Course:   p.Columns.Course,
		Grade:    p.Columns.Grade,
		Credits:  p.Columns.Credits,
	}
	if p.Delimiter != "" {
		r, _ := utf8.DecodeRuneInString(p.Delimiter)
		l.Comma = r
	}
	return l
}

// List returns the names of all available built-in profiles.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Describe renders a profile as a short plain-text listing.
func Describe(p *Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (v%d)\n", p.Name, p.Version)
	if p.Description != "" {
		fmt.Fprintf(&b, "  %s\n", strings.TrimSpace(p.Description))
	}
	fmt.Fprintf(&b, "  semester: %s\n", strings.Join(p.Columns.Semester, ", "))
	fmt.Fprintf(&b, "  course:   %s\n", strings.Join(p.Columns.Course, ", "))
	fmt.Fprintf(&b, "  grade:    %s\n", strings.Join(p.Columns.Grade, ", "))
	fmt.Fprintf(&b, "  credits:  %s\n", strings.Join(p.Columns.Credits, ", "))
	return b.String()
}

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/dshills/gpareport/internal/config"
	"github.com/dshills/gpareport/internal/report"
)

const sampleCSV = `Semester,Mata Kuliah,Nilai,SKS
S1,CourseA,A,3
S1,CourseB,B,2
S2,CourseC,AB,4
`

func writeTempData(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "grades.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load(nil, "")
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func assertExitCode(t *testing.T, err error, wantCode int) {
	t.Helper()
	if wantCode == 0 {
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected exit code %d, got nil error", wantCode)
	}
	var ee *exitErr
	if !errors.As(err, &ee) {
		t.Fatalf("expected *exitErr, got %T: %v", err, err)
	}
	if ee.code != wantCode {
		t.Errorf("exit code = %d, want %d (msg: %s)", ee.code, wantCode, ee.msg)
	}
}

func TestRunReportHappyPath(t *testing.T) {
	path := writeTempData(t, sampleCSV)
	var out bytes.Buffer
	err := runReport(path, testConfig(t), &reportFlags{check: true}, &out, zap.NewNop().Sugar())
	assertExitCode(t, err, 0)

	var rep report.Report
	if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if rep.Tool != "gpareport" || rep.Version != version {
		t.Errorf("unexpected metadata: tool=%q version=%q", rep.Tool, rep.Version)
	}
	if rep.Input.DataFile != "grades.csv" || !strings.HasPrefix(rep.Input.DataHash, "sha256:") {
		t.Errorf("unexpected input: %+v", rep.Input)
	}
	if rep.Cumulative.TotalCredits != 9 || rep.Cumulative.CumulativeGPA != 3.56 {
		t.Errorf("cumulative = %+v", rep.Cumulative)
	}
}

func TestRunReportMarkdownToFile(t *testing.T) {
	path := writeTempData(t, sampleCSV)
	cfg := testConfig(t)
	cfg.Format = "md"
	cfg.Out = filepath.Join(t.TempDir(), "report.md")

	var out bytes.Buffer
	err := runReport(path, cfg, &reportFlags{}, &out, zap.NewNop().Sugar())
	assertExitCode(t, err, 0)
	if out.Len() != 0 {
		t.Error("expected nothing on stdout when --out is set")
	}
	data, err := os.ReadFile(cfg.Out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "**Cumulative GPA:** 3.56") {
		t.Errorf("unexpected markdown:\n%s", data)
	}
}

func TestRunReportMissingDataFile(t *testing.T) {
	var out bytes.Buffer
	err := runReport("/nonexistent/grades.csv", testConfig(t), &reportFlags{}, &out, zap.NewNop().Sugar())
	assertExitCode(t, err, 3)
	if out.Len() != 0 {
		t.Error("no output should be produced when the data file is missing")
	}
}

func TestRunReportUnknownProfile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Profile = "nonexistent-profile-xyz"
	err := runReport(writeTempData(t, sampleCSV), cfg, &reportFlags{}, &bytes.Buffer{}, zap.NewNop().Sugar())
	assertExitCode(t, err, 3)
}

func TestRunReportInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"format", func(c *config.Config) { c.Format = "html" }},
		{"credit policy", func(c *config.Config) { c.CreditPolicy = "half" }},
		{"semester order", func(c *config.Config) { c.SemesterOrder = "random" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(cfg)
			err := runReport(writeTempData(t, sampleCSV), cfg, &reportFlags{}, &bytes.Buffer{}, zap.NewNop().Sugar())
			assertExitCode(t, err, 3)
		})
	}
}

func TestRunReportFailOnDiagnostics(t *testing.T) {
	path := writeTempData(t, sampleCSV+"S2,Mystery,F,3\n")

	var out bytes.Buffer
	err := runReport(path, testConfig(t), &reportFlags{failOnDiagnostics: true}, &out, zap.NewNop().Sugar())
	assertExitCode(t, err, 2)
	if out.Len() == 0 {
		t.Error("report should still be written before failing on diagnostics")
	}

	err = runReport(path, testConfig(t), &reportFlags{}, &bytes.Buffer{}, zap.NewNop().Sugar())
	assertExitCode(t, err, 0)
}

func TestRunReportCleanInputPassesFailOnDiagnostics(t *testing.T) {
	err := runReport(writeTempData(t, sampleCSV), testConfig(t), &reportFlags{failOnDiagnostics: true}, &bytes.Buffer{}, zap.NewNop().Sugar())
	assertExitCode(t, err, 0)
}

func TestReportCommandFlags(t *testing.T) {
	path := writeTempData(t, "Semester,Mata Kuliah,Nilai,SKS\n10,a,A,2\n2,b,E,2\n2,c,F,1\n")
	configFile := ""
	cmd := newReportCmd(&configFile)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path, "--semester-order", "natural", "--credit-policy", "graded"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	var rep report.Report
	if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatal(err)
	}
	if len(rep.Semesters) != 2 || rep.Semesters[0].Semester != "2" {
		t.Fatalf("expected natural order starting with 2, got %+v", rep.Semesters)
	}
	if rep.Cumulative.TotalCredits != 4 || rep.Cumulative.CumulativeGPA != 2.5 {
		t.Errorf("cumulative = %+v, want 4 credits / 2.5", rep.Cumulative)
	}
}

func TestProfilesCommand(t *testing.T) {
	cmd := newProfilesCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"english", "general", "indonesian"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("profiles output missing %q", want)
		}
	}
}

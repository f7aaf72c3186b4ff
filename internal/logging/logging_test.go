package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true).Sugar()
	log.Debugf("Loading data: %s", "grades.csv")
	if !strings.Contains(buf.String(), "Loading data: grades.csv") {
		t.Errorf("expected debug line, got %q", buf.String())
	}
}

func TestNewQuiet(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false).Sugar()
	log.Debugf("hidden")
	log.Infof("hidden too")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
	log.Warnf("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected warning, got %q", buf.String())
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf)
	log.Info("report built")
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "report built" {
		t.Errorf("msg = %v", entry["msg"])
	}
}

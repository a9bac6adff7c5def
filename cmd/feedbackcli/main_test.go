package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"writing-tutor-api/internal/feedback"
)

func TestRunWritesLocalReport(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("REMOTE_ANALYSIS_URL", "")
	input := filepath.Join(dir, "essay.txt")
	text := "The results show a clear trend. However, further research is needed.\n\nIn conclusion, the data is promising."
	if err := os.WriteFile(input, []byte(text), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}
	outPath := filepath.Join(dir, "out.json")

	var stdout bytes.Buffer
	if err := run([]string{"-file", input, "-type", "essay", "-form", "4", "-out", outPath}, &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}

	var report feedback.WritingFeedback
	if err := json.Unmarshal(stdout.Bytes(), &report); err != nil {
		t.Fatalf("decode stdout: %v", err)
	}
	want := feedback.GenerateLocal(feedback.WritingSample{Text: text, AssignmentType: feedback.AssignmentEssay, FormLevel: 4})
	if report.Overview != want.Overview {
		t.Fatalf("unexpected overview: %+v want %+v", report.Overview, want.Overview)
	}

	written, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read out file: %v", err)
	}
	if !bytes.Equal(written, stdout.Bytes()) {
		t.Fatalf("expected out file to match stdout")
	}
}

func TestRunRemoteKeepsReportFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"overview":{"wordCount":12.5},"modelVersion":"v2"}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("REMOTE_ANALYSIS_URL", srv.URL)
	input := filepath.Join(dir, "essay.txt")
	if err := os.WriteFile(input, []byte("Some text."), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}

	var stdout bytes.Buffer
	if err := run([]string{"-file", input, "-remote"}, &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, `"modelVersion": "v2"`) || !strings.Contains(out, `"wordCount": 12.5`) {
		t.Fatalf("expected remote fields in output, got %s", out)
	}
}

func TestRunValidatesArguments(t *testing.T) {
	chdir(t, t.TempDir())
	if err := run([]string{}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected missing file error")
	}

	input := filepath.Join(t.TempDir(), "essay.txt")
	if err := os.WriteFile(input, []byte("Some text."), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}
	if err := run([]string{"-file", input, "-type", "poem"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected invalid assignment type error")
	}
	if err := run([]string{"-file", input, "-form", "9"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected invalid form level error")
	}
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

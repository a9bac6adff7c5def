package main

// Analyze a local file without starting the API:
//   go run ./cmd/feedbackcli -file essay.docx -type essay -form 4

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"writing-tutor-api/internal/bootstrap"
	"writing-tutor-api/internal/extract"
	"writing-tutor-api/internal/feedback"
	"writing-tutor-api/internal/shared/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg := config.Load()

	fs := flag.NewFlagSet("feedbackcli", flag.ContinueOnError)
	filePath := fs.String("file", "", "Path to the writing sample (pdf, docx, txt or md)")
	assignmentType := fs.String("type", string(feedback.AssignmentEssay), "Assignment type: essay, research-paper, summary, report")
	formLevel := fs.Int("form", feedback.DefaultFormLevel, "Form level 1-6")
	useRemote := fs.Bool("remote", false, "Try the remote analysis endpoint before the local pipeline")
	outPath := fs.String("out", "", "Path to write JSON output (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(*filePath) == "" {
		return errors.New("file path is required")
	}
	data, err := os.ReadFile(*filePath)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	fileName := filepath.Base(*filePath)
	text, err := extract.TextFromBytes(context.Background(), data, extract.MimeFromExt(fileName), fileName)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}

	at, err := feedback.ParseAssignmentType(*assignmentType)
	if err != nil {
		return err
	}
	if err := feedback.ValidateFormLevel(*formLevel); err != nil {
		return err
	}
	sample := feedback.WritingSample{Text: text, AssignmentType: at, FormLevel: *formLevel}

	svc := &feedback.Service{}
	if *useRemote {
		svc.Remote, err = bootstrap.BuildRemote(cfg)
		if err != nil {
			return err
		}
	}
	report, err := svc.AnalyzeWriting(context.Background(), sample)
	if err != nil {
		return err
	}

	pretty, err := prettyJSON(report)
	if err != nil {
		return fmt.Errorf("format json: %w", err)
	}
	if *outPath != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if _, err := stdout.Write(pretty); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	return nil
}

func prettyJSON(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

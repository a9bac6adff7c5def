package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"writing-tutor-api/internal/shared/metrics"
	"writing-tutor-api/internal/shared/telemetry"
	"writing-tutor-api/internal/shared/util"
)

// RemoteAnalyzer is the external analysis collaborator. A successful call
// returns the report document exactly as received. Any error it returns is
// treated as transient and answered by the local pipeline.
type RemoteAnalyzer interface {
	Analyze(ctx context.Context, sample WritingSample) (json.RawMessage, error)
}

var errRemoteMissing = errors.New("remote analyzer not configured")

// Service runs the remote-first, local-fallback analysis flow.
type Service struct {
	Remote RemoteAnalyzer
	Repo   Repo
	Now    func() time.Time
}

// Result is an encoded report plus where it came from. Remote reports are
// carried byte for byte.
type Result struct {
	ID     string
	Source Source
	Report json.RawMessage
}

// reportSummary is the part of a report kept in the analysis log. Remote
// reports are not validated, so fields that fail to decode stay zero.
type reportSummary struct {
	Overview struct {
		WordCount        float64 `json:"wordCount"`
		ReadabilityScore float64 `json:"readabilityScore"`
		FormalityScore   float64 `json:"formalityScore"`
		GrammarScore     float64 `json:"grammarScore"`
	} `json:"overview"`
	Improvements []json.RawMessage `json:"improvements"`
}

func summarizeReport(raw json.RawMessage) reportSummary {
	var sum reportSummary
	_ = json.Unmarshal(raw, &sum)
	return sum
}

func (r reportSummary) wordCount() int {
	return int(math.Round(r.Overview.WordCount))
}

// AnalyzeWriting returns the encoded report for sample.
func (s *Service) AnalyzeWriting(ctx context.Context, sample WritingSample) (json.RawMessage, error) {
	res, err := s.Analyze(ctx, sample)
	if err != nil {
		return nil, err
	}
	return res.Report, nil
}

// Analyze validates the sample, tries the remote analyzer once and falls back
// to GenerateLocal on any remote failure.
func (s *Service) Analyze(ctx context.Context, sample WritingSample) (Result, error) {
	if strings.TrimSpace(sample.Text) == "" {
		metrics.IncValidationFailure()
		return Result{}, ErrEmptyText
	}
	if sample.FormLevel == 0 {
		sample.FormLevel = DefaultFormLevel
	}
	metrics.IncFeedbackRequest()

	startedAt := s.now()
	report, source, err := s.remoteOrLocal(ctx, sample)
	if err != nil {
		return Result{}, err
	}
	completedAt := s.now()

	res := Result{
		ID:     uuid.NewString(),
		Source: source,
		Report: report,
	}
	summary := summarizeReport(report)
	duration := durationMs(startedAt, completedAt)
	metrics.ObserveFeedbackDurationMs(duration)
	telemetry.Info("feedback.completed", map[string]any{
		"request_id":      requestIDFromContext(ctx),
		"analysis_id":     res.ID,
		"source":          string(source),
		"assignment_type": string(sample.AssignmentType),
		"form_level":      sample.FormLevel,
		"word_count":      summary.wordCount(),
		"duration_ms":     duration,
	})

	s.recordAnalysis(ctx, sample, res, summary, duration, completedAt)
	return res, nil
}

func (s *Service) remoteOrLocal(ctx context.Context, sample WritingSample) (json.RawMessage, Source, error) {
	var err error
	if s.Remote == nil {
		err = errRemoteMissing
	} else {
		var raw json.RawMessage
		raw, err = s.Remote.Analyze(ctx, sample)
		if err == nil {
			metrics.IncRemoteSuccess()
			return raw, SourceRemote, nil
		}
	}

	metrics.IncRemoteFailure()
	telemetry.Error("feedback.remote_failed", map[string]any{
		"request_id":      requestIDFromContext(ctx),
		"reason":          sanitizeError(err),
		"assignment_type": string(sample.AssignmentType),
	})

	metrics.IncLocalFallback()
	local, err := json.Marshal(GenerateLocal(sample))
	if err != nil {
		return nil, "", fmt.Errorf("encode local report: %w", err)
	}
	return local, SourceLocal, nil
}

func (s *Service) recordAnalysis(ctx context.Context, sample WritingSample, res Result, summary reportSummary, duration float64, at time.Time) {
	if s.Repo == nil {
		return
	}
	rec := AnalysisRecord{
		ID:               res.ID,
		TextHash:         util.HashText(sample.Text),
		AssignmentType:   sample.AssignmentType,
		FormLevel:        sample.FormLevel,
		WordCount:        summary.wordCount(),
		ReadabilityScore: summary.Overview.ReadabilityScore,
		FormalityScore:   summary.Overview.FormalityScore,
		GrammarScore:     summary.Overview.GrammarScore,
		ImprovementCount: len(summary.Improvements),
		Source:           res.Source,
		DurationMs:       duration,
		CreatedAt:        at.UTC(),
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		telemetry.Error("feedback.record_failed", map[string]any{
			"request_id":  requestIDFromContext(ctx),
			"analysis_id": res.ID,
			"error":       sanitizeError(err),
		})
	}
}

// Get returns a stored analysis record.
func (s *Service) Get(ctx context.Context, id string) (AnalysisRecord, error) {
	if strings.TrimSpace(id) == "" {
		return AnalysisRecord{}, errors.New("analysis id is required")
	}
	if s.Repo == nil {
		return AnalysisRecord{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns stored analysis records newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]AnalysisRecord, error) {
	if s.Repo == nil {
		return []AnalysisRecord{}, nil
	}
	return s.Repo.ListRecent(ctx, limit, offset)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func durationMs(startedAt, completedAt time.Time) float64 {
	return float64(completedAt.Sub(startedAt).Microseconds()) / 1000.0
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}

package feedback

import (
	"strconv"
	"strings"
)

// Category groups feedback items by the aspect of writing they address.
type Category string

const (
	CategoryGrammar    Category = "grammar"
	CategoryVocabulary Category = "vocabulary"
	CategoryStructure  Category = "structure"
	CategoryCoherence  Category = "coherence"
	CategoryFormality  Category = "formality"
	CategoryStyle      Category = "style"
)

// Categories returns every category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryGrammar,
		CategoryVocabulary,
		CategoryStructure,
		CategoryCoherence,
		CategoryFormality,
		CategoryStyle,
	}
}

// Severity is ordered info < warning < error.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// AssignmentType is the kind of writing task being analyzed.
type AssignmentType string

const (
	AssignmentEssay         AssignmentType = "essay"
	AssignmentResearchPaper AssignmentType = "research-paper"
	AssignmentSummary       AssignmentType = "summary"
	AssignmentReport        AssignmentType = "report"
)

const (
	MinFormLevel     = 1
	MaxFormLevel     = 6
	DefaultFormLevel = 3
)

// WritingSample is a single submission to analyze. Its JSON shape is also the
// request body sent to the remote analysis endpoint.
type WritingSample struct {
	Text           string         `json:"text"`
	AssignmentType AssignmentType `json:"assignmentType"`
	FormLevel      int            `json:"formLevel"`
}

// FeedbackItem is one piece of advice produced by a category analyzer.
type FeedbackItem struct {
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Suggestion  string   `json:"suggestion,omitempty"`
	Severity    Severity `json:"severity"`
}

// Overview holds the headline metrics of a report.
type Overview struct {
	WordCount        int     `json:"wordCount"`
	ReadabilityScore float64 `json:"readabilityScore"`
	FormalityScore   float64 `json:"formalityScore"`
	GrammarScore     float64 `json:"grammarScore"`
}

// DetailedFeedback keeps one list per category.
type DetailedFeedback struct {
	Grammar    []FeedbackItem `json:"grammar"`
	Vocabulary []FeedbackItem `json:"vocabulary"`
	Structure  []FeedbackItem `json:"structure"`
	Coherence  []FeedbackItem `json:"coherence"`
	Formality  []FeedbackItem `json:"formality"`
	Style      []FeedbackItem `json:"style"`
}

// Items returns the list stored for the given category.
func (d DetailedFeedback) Items(c Category) []FeedbackItem {
	switch c {
	case CategoryGrammar:
		return d.Grammar
	case CategoryVocabulary:
		return d.Vocabulary
	case CategoryStructure:
		return d.Structure
	case CategoryCoherence:
		return d.Coherence
	case CategoryFormality:
		return d.Formality
	case CategoryStyle:
		return d.Style
	default:
		return nil
	}
}

// WritingFeedback is the full report returned for a sample.
type WritingFeedback struct {
	Overview         Overview         `json:"overview"`
	Strengths        []string         `json:"strengths"`
	Improvements     []FeedbackItem   `json:"improvements"`
	DetailedFeedback DetailedFeedback `json:"detailedFeedback"`
}

// Source records which path produced a report.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// ParseAssignmentType accepts the enum values ignoring case and surrounding
// whitespace.
func ParseAssignmentType(raw string) (AssignmentType, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "", ErrMissingAssignmentType
	}
	switch AssignmentType(normalized) {
	case AssignmentEssay, AssignmentResearchPaper, AssignmentSummary, AssignmentReport:
		return AssignmentType(normalized), nil
	default:
		return "", ErrInvalidAssignmentType
	}
}

// ParseFormLevel parses a form level, returning DefaultFormLevel for an empty string.
func ParseFormLevel(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DefaultFormLevel, nil
	}
	level, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, ErrInvalidFormLevel
	}
	return level, ValidateFormLevel(level)
}

// ValidateFormLevel checks that level is within 1..6.
func ValidateFormLevel(level int) error {
	if level < MinFormLevel || level > MaxFormLevel {
		return ErrInvalidFormLevel
	}
	return nil
}

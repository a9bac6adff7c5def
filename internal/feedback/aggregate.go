package feedback

import "strings"

const maxImprovements = 5

var evidenceMarkers = []string{"according to", "cited", "research", "study"}

// Aggregate fills in strengths and improvements from the overview and the
// per-category items already present on fb.
func Aggregate(fb WritingFeedback, text string) WritingFeedback {
	fb.Strengths = Strengths(fb.Overview, text)
	fb.Improvements = Improvements(fb.DetailedFeedback)
	return fb
}

// Strengths always returns at least one entry.
func Strengths(overview Overview, text string) []string {
	strengths := []string{}

	if overview.WordCount > 300 {
		strengths = append(strengths, "Your writing demonstrates good development of ideas with sufficient length")
	}
	if overview.GrammarScore > 70 {
		strengths = append(strengths, "You've maintained generally good grammar throughout your writing")
	}
	if overview.FormalityScore > 70 {
		strengths = append(strengths, "Your writing maintains an appropriately formal academic tone")
	}
	// markers are matched case-sensitively
	for _, marker := range evidenceMarkers {
		if strings.Contains(text, marker) {
			strengths = append(strengths, "You've attempted to support your points with evidence or references")
			break
		}
	}

	if len(strengths) < 2 {
		strengths = append(strengths, "You've made an attempt at academic writing")
	}
	return strengths
}

// Improvements picks at most one item per category, errors before warnings,
// in category declaration order, capped at five.
func Improvements(detailed DetailedFeedback) []FeedbackItem {
	improvements := []FeedbackItem{}
	for _, category := range Categories() {
		if item, ok := priorityItem(detailed.Items(category)); ok {
			improvements = append(improvements, item)
		}
	}
	if len(improvements) > maxImprovements {
		improvements = improvements[:maxImprovements]
	}
	return improvements
}

func priorityItem(items []FeedbackItem) (FeedbackItem, bool) {
	for _, severity := range []Severity{SeverityError, SeverityWarning} {
		for _, item := range items {
			if item.Severity == severity {
				return item, true
			}
		}
	}
	return FeedbackItem{}, false
}

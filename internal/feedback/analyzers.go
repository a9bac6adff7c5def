package feedback

import (
	"fmt"
	"strings"
)

// AnalyzeGrammar flags hedging phrases, informal quantifiers and the first
// contraction found.
func AnalyzeGrammar(text string) []FeedbackItem {
	items := []FeedbackItem{}
	lower := strings.ToLower(text)

	if strings.Contains(lower, "i think") || strings.Contains(lower, "i believe") {
		items = append(items, FeedbackItem{
			Category:    CategoryGrammar,
			Description: `Avoid personal phrases like "I think" or "I believe" in academic writing`,
			Suggestion:  `Replace with "The evidence suggests" or "Research indicates"`,
			Severity:    SeverityWarning,
		})
	}

	if strings.Contains(lower, "a lot") || strings.Contains(lower, "lots of") {
		items = append(items, FeedbackItem{
			Category:    CategoryGrammar,
			Description: "Informal quantifiers detected",
			Suggestion:  `Replace phrases like "a lot" with more precise terms like "numerous", "significant", or "substantial"`,
			Severity:    SeverityWarning,
		})
	}

	for _, contraction := range contractions {
		if strings.Contains(lower, contraction) {
			items = append(items, FeedbackItem{
				Category:    CategoryGrammar,
				Description: "Contractions should be avoided in academic writing",
				Suggestion:  fmt.Sprintf(`Expand contractions like "%s" to their full form`, contraction),
				Severity:    SeverityWarning,
			})
			break
		}
	}

	return items
}

// AnalyzeVocabulary suggests academic alternatives for every basic word used.
func AnalyzeVocabulary(text string, formLevel int) []FeedbackItem {
	items := []FeedbackItem{}

	for _, bw := range basicWords {
		if bw.pattern.MatchString(text) {
			items = append(items, FeedbackItem{
				Category:    CategoryVocabulary,
				Description: fmt.Sprintf(`Consider using more academic alternatives to "%s"`, bw.word),
				Suggestion:  "Try: " + bw.alternatives,
				Severity:    SeverityInfo,
			})
		}
	}

	if formLevel >= 4 && textLength(text) > 200 {
		items = append(items, FeedbackItem{
			Category:    CategoryVocabulary,
			Description: "Consider enhancing your vocabulary with more subject-specific terms",
			Suggestion:  "Research specialized terminology related to your topic to add precision to your writing",
			Severity:    SeverityInfo,
		})
	}

	return items
}

// AnalyzeStructure checks paragraph count and the sections each assignment
// type is expected to contain.
func AnalyzeStructure(text string, assignmentType AssignmentType) []FeedbackItem {
	items := []FeedbackItem{}
	paragraphs := splitParagraphs(text)
	lower := strings.ToLower(text)

	if len(paragraphs) < 3 {
		lead := "In an academic " + string(assignmentType)
		if assignmentType == AssignmentSummary {
			lead = "Even in a summary"
		}
		items = append(items, FeedbackItem{
			Category:    CategoryStructure,
			Description: "Your text has few paragraphs",
			Suggestion:  lead + ", organize your ideas into clear paragraphs (introduction, body, conclusion)",
			Severity:    SeverityWarning,
		})
	}

	switch assignmentType {
	case AssignmentEssay:
		if !strings.Contains(lower, "conclusion") && len(paragraphs) >= 3 {
			items = append(items, FeedbackItem{
				Category:    CategoryStructure,
				Description: "No clear conclusion identified",
				Suggestion:  "End your essay with a conclusion that summarizes your main points and restates your thesis",
				Severity:    SeverityInfo,
			})
		}
	case AssignmentResearchPaper:
		var missing []string
		for _, section := range researchSections {
			if !strings.Contains(lower, section) {
				missing = append(missing, section)
			}
		}
		if len(missing) > 2 {
			items = append(items, FeedbackItem{
				Category:    CategoryStructure,
				Description: "Research paper may be missing key sections",
				Suggestion:  "Consider including standard sections: " + strings.Join(missing, ", "),
				Severity:    SeverityWarning,
			})
		}
	case AssignmentReport:
		if !strings.Contains(lower, "recommendation") {
			items = append(items, FeedbackItem{
				Category:    CategoryStructure,
				Description: "Reports typically include recommendations",
				Suggestion:  "Consider adding a recommendations section based on your findings",
				Severity:    SeverityInfo,
			})
		}
	}

	return items
}

// AnalyzeCoherence reports when no paragraph after the first contains a
// transition word.
func AnalyzeCoherence(text string) []FeedbackItem {
	items := []FeedbackItem{}
	paragraphs := splitParagraphs(text)
	if len(paragraphs) <= 1 {
		return items
	}

	for _, p := range paragraphs[1:] {
		lower := strings.ToLower(p)
		for _, word := range transitionWords {
			if strings.Contains(lower, word) {
				return items
			}
		}
	}

	return append(items, FeedbackItem{
		Category:    CategoryCoherence,
		Description: "Limited use of transition words between paragraphs",
		Suggestion:  `Use words like "however," "therefore," "consequently," etc. to connect ideas between paragraphs`,
		Severity:    SeverityInfo,
	})
}

// AnalyzeFormality reports the first informal expression pattern that matches.
func AnalyzeFormality(text string) []FeedbackItem {
	items := []FeedbackItem{}
	for _, expr := range informalExpressions {
		if expr.pattern.MatchString(text) {
			items = append(items, FeedbackItem{
				Category:    CategoryFormality,
				Description: "Informal language detected",
				Suggestion:  "Replace informal expressions with more formal alternatives: " + expr.suggestion,
				Severity:    SeverityWarning,
			})
			break
		}
	}
	return items
}

// AnalyzeStyle checks passive voice usage for research papers and reports and
// long sentences for essays. Summaries have no style rule.
func AnalyzeStyle(text string, assignmentType AssignmentType) []FeedbackItem {
	items := []FeedbackItem{}

	switch assignmentType {
	case AssignmentResearchPaper, AssignmentReport:
		passiveCount := 0
		for _, re := range passiveRegex {
			passiveCount += len(re.FindAllStringIndex(text, -1))
		}
		if passiveCount < 2 && textLength(text) > 500 {
			items = append(items, FeedbackItem{
				Category:    CategoryStyle,
				Description: "Limited use of passive voice",
				Suggestion:  `In research papers and reports, passive voice is often appropriate for Methods and Results sections (e.g., "Samples were collected" rather than "We collected samples")`,
				Severity:    SeverityInfo,
			})
		}
	case AssignmentEssay:
		longSentences := 0
		for _, sentence := range splitSentences(text) {
			if countWords(sentence) > 30 {
				longSentences++
			}
		}
		if longSentences > 2 {
			items = append(items, FeedbackItem{
				Category:    CategoryStyle,
				Description: "Several overly long sentences detected",
				Suggestion:  "Consider breaking down some long sentences into shorter ones for clarity",
				Severity:    SeverityInfo,
			})
		}
	}

	return items
}

package feedback

// GenerateLocal runs the rule-based pipeline. It is deterministic and never
// fails; callers are expected to have rejected empty text already.
func GenerateLocal(sample WritingSample) WritingFeedback {
	text := sample.Text
	formLevel := sample.FormLevel
	if formLevel == 0 {
		formLevel = DefaultFormLevel
	}

	fb := WritingFeedback{
		Overview: ExtractMetrics(text).Overview(),
		DetailedFeedback: DetailedFeedback{
			Grammar:    AnalyzeGrammar(text),
			Vocabulary: AnalyzeVocabulary(text, formLevel),
			Structure:  AnalyzeStructure(text, sample.AssignmentType),
			Coherence:  AnalyzeCoherence(text),
			Formality:  AnalyzeFormality(text),
			Style:      AnalyzeStyle(text, sample.AssignmentType),
		},
	}
	return Aggregate(fb, text)
}

package feedback

import (
	"math"
	"strings"
)

// TextMetrics are the surface statistics the overview scores derive from.
type TextMetrics struct {
	WordCount           int
	SentenceCount       int
	AvgWordsPerSentence float64
	ReadabilityScore    float64
	FormalityScore      float64
	GrammarScore        float64
}

// ExtractMetrics computes word and sentence counts plus the heuristic scores.
// Readability rewards longer sentences, formality counts connectives per
// thousand words, and grammar subtracts ten points per informal phrase.
func ExtractMetrics(text string) TextMetrics {
	wordCount := countWords(text)
	sentenceCount := len(splitSentences(text))
	if sentenceCount == 0 {
		sentenceCount = 1
	}
	avg := float64(wordCount) / float64(sentenceCount)

	lower := strings.ToLower(text)
	formalCount := 0
	for _, re := range formalWordRegex {
		formalCount += len(re.FindAllStringIndex(lower, -1))
	}
	formalRatio := 0.0
	if wordCount > 0 {
		formalRatio = float64(formalCount) / float64(wordCount)
	}

	informalCount := 0
	for _, phrase := range informalPhrases {
		informalCount += strings.Count(lower, phrase)
	}

	return TextMetrics{
		WordCount:           wordCount,
		SentenceCount:       sentenceCount,
		AvgWordsPerSentence: avg,
		ReadabilityScore:    clamp(avg*4, 30, 100),
		FormalityScore:      clamp(formalRatio*1000, 30, 100),
		GrammarScore:        clamp(100-float64(informalCount)*10, 40, 100),
	}
}

// Overview projects the metrics onto the report overview.
func (m TextMetrics) Overview() Overview {
	return Overview{
		WordCount:        m.WordCount,
		ReadabilityScore: m.ReadabilityScore,
		FormalityScore:   m.FormalityScore,
		GrammarScore:     m.GrammarScore,
	}
}

func countWords(text string) int {
	return len(strings.FieldsFunc(text, isSpace))
}

// isSpace matches the same set as spaceClass.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0xa0, 0x1680, 0x2028, 0x2029, 0x202f, 0x205f, 0x3000, 0xfeff:
		return true
	}
	return r >= 0x2000 && r <= 0x200a
}

// textLength counts UTF-16 code units so length thresholds agree with
// clients that measure strings that way.
func textLength(text string) int {
	n := 0
	for _, r := range text {
		if r > 0xffff {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// splitSentences keeps every non-empty segment between terminators, including
// whitespace-only tails.
func splitSentences(text string) []string {
	parts := sentenceEnd.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func splitParagraphs(text string) []string {
	return paragraphBreak.Split(text, -1)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

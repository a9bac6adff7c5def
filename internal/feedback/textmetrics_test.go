package feedback

import (
	"math"
	"testing"
)

const scenarioText = "I think social media is bad for students. I believe it causes a lot of problems. However, some studies show benefits."

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestExtractMetricsScenario(t *testing.T) {
	m := ExtractMetrics(scenarioText)
	if m.WordCount != 21 {
		t.Fatalf("expected 21 words, got %d", m.WordCount)
	}
	if m.SentenceCount != 3 {
		t.Fatalf("expected 3 sentences, got %d", m.SentenceCount)
	}
	if m.ReadabilityScore != 30 {
		t.Fatalf("expected readability floor 30, got %v", m.ReadabilityScore)
	}
	if !approxEqual(m.FormalityScore, 1.0/21.0*1000) {
		t.Fatalf("unexpected formality %v", m.FormalityScore)
	}
	if m.GrammarScore != 70 {
		t.Fatalf("expected grammar 70 for three informal phrases, got %v", m.GrammarScore)
	}
}

func TestExtractMetricsEmptyText(t *testing.T) {
	m := ExtractMetrics("")
	if m.WordCount != 0 || m.SentenceCount != 1 {
		t.Fatalf("unexpected counts: %+v", m)
	}
	if m.ReadabilityScore != 30 || m.FormalityScore != 30 || m.GrammarScore != 100 {
		t.Fatalf("unexpected scores: %+v", m)
	}
}

func TestExtractMetricsClamps(t *testing.T) {
	if got := ExtractMetrics("Therefore the point stands.").FormalityScore; got != 100 {
		t.Fatalf("expected formality capped at 100, got %v", got)
	}
	if got := ExtractMetrics("THEREFORE it holds. Thus it ends.").FormalityScore; got != 100 {
		t.Fatalf("expected connectives matched case-insensitively, got %v", got)
	}
	if got := ExtractMetrics("a lot a lot a lot a lot a lot a lot a lot").GrammarScore; got != 40 {
		t.Fatalf("expected grammar floor 40, got %v", got)
	}

	long := "This sentence has a good number of words in it so that the average length is high enough to cap readability at the very top of the range"
	if got := ExtractMetrics(long).ReadabilityScore; got != 100 {
		t.Fatalf("expected readability capped at 100, got %v", got)
	}
}

func TestExtractMetricsFormalWordsNeedBoundaries(t *testing.T) {
	if got := ExtractMetrics("Thusly we go on and on.").FormalityScore; got != 30 {
		t.Fatalf("expected no connective match inside a longer word, got %v", got)
	}
}

func TestSplitSentencesKeepsWhitespaceSegments(t *testing.T) {
	got := splitSentences("One. Two. ")
	if len(got) != 3 {
		t.Fatalf("expected 3 segments, got %d: %q", len(got), got)
	}
	if got := splitSentences("Wait?! Really..."); len(got) != 2 {
		t.Fatalf("expected punctuation runs to split once, got %q", got)
	}
	if got := splitSentences("..."); len(got) != 0 {
		t.Fatalf("expected no segments, got %q", got)
	}
}

func TestSplitParagraphs(t *testing.T) {
	got := splitParagraphs("First.\n\nSecond.\n   \nThird.")
	if len(got) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", len(got))
	}
	if got := splitParagraphs("Only one.\nStill one."); len(got) != 1 {
		t.Fatalf("expected single newline to keep one paragraph, got %d", len(got))
	}
}

func TestCountWords(t *testing.T) {
	cases := map[string]int{
		"":                                 0,
		"   ":                              0,
		"one":                              1,
		"  one\ttwo\nthree ":               3,
		"alpha\vbeta":                      2,
		"alpha\u00a0beta":                  2,
		"\ufeffalpha\u3000beta\u2009gamma": 3,
		"caf\u00e9 na\u00efve":             2,
	}
	for in, want := range cases {
		if got := countWords(in); got != want {
			t.Fatalf("countWords(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestUnicodeWhitespaceSeparatesParagraphsAndWords(t *testing.T) {
	text := "Good idea here.\n\u00a0\nSecond para.\n\u3000\nThird para."

	if got := splitParagraphs(text); len(got) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d: %q", len(got), got)
	}
	if got := countWords(text); got != 6 {
		t.Fatalf("expected 6 words, got %d", got)
	}
	if got := splitParagraphs("One.\n\v\u2028\ufeff\nTwo."); len(got) != 2 {
		t.Fatalf("expected vertical tab and separators to count as blank, got %d", len(got))
	}
	if got := splitParagraphs("One.\n\u00e9\nTwo."); len(got) != 1 {
		t.Fatalf("expected letter between newlines to keep one paragraph, got %d", len(got))
	}
	for _, item := range AnalyzeStructure(text, AssignmentEssay) {
		if item.Description == "Your text has few paragraphs" {
			t.Fatalf("unexpected paragraph warning for three paragraphs: %+v", item)
		}
	}
}

func TestTextLengthCountsUTF16Units(t *testing.T) {
	cases := map[string]int{
		"":             0,
		"abc":          3,
		"caf\u00e9":    4,
		"\U0001F600":   2,
		"a\U0001F600b": 4,
		"\u3000\u00a0": 2,
	}
	for in, want := range cases {
		if got := textLength(in); got != want {
			t.Fatalf("textLength(%q) = %d, want %d", in, got, want)
		}
	}
}

package feedback

import "regexp"

var (
	formalConnectives = []string{"therefore", "however", "furthermore", "consequently", "nevertheless", "thus"}
	informalPhrases   = []string{"i think", "i believe", "a lot", "lots of", "got to"}

	contractions = []string{"can't", "don't", "won't", "isn't", "aren't", "haven't", "hasn't", "didn't", "wouldn't", "couldn't", "shouldn't"}

	transitionWords = []string{"however", "therefore", "consequently", "furthermore", "moreover", "in addition", "similarly", "in contrast"}

	researchSections = []string{"introduction", "method", "results", "discussion", "conclusion"}

	passiveAuxiliaries = []string{"was", "were", "been", "being", "is", "are", "am"}
)

type basicWord struct {
	word         string
	alternatives string
	pattern      *regexp.Regexp
}

// basicWords is ordered; vocabulary items are emitted in this order.
var basicWords = []basicWord{
	newBasicWord("good", "beneficial, advantageous, favorable"),
	newBasicWord("bad", "detrimental, unfavorable, adverse"),
	newBasicWord("big", "substantial, significant, considerable"),
	newBasicWord("small", "minimal, negligible, insignificant"),
	newBasicWord("show", "demonstrate, illustrate, indicate"),
	newBasicWord("important", "essential, crucial, significant"),
}

func newBasicWord(word, alternatives string) basicWord {
	return basicWord{
		word:         word,
		alternatives: alternatives,
		pattern:      regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`),
	}
}

type informalExpression struct {
	pattern    *regexp.Regexp
	suggestion string
}

// informalExpressions is checked in order and only the first match is reported.
var informalExpressions = []informalExpression{
	{pattern: regexp.MustCompile(`(?i)\bkind of\b|\bsort of\b`), suggestion: "somewhat, relatively"},
	{pattern: regexp.MustCompile(`(?i)\btotally\b|\breally\b|\bvery\b`), suggestion: "significantly, substantially"},
	{pattern: regexp.MustCompile(`(?i)\bgot\b|\bgets\b`), suggestion: "obtained, receives, becomes"},
	{pattern: regexp.MustCompile(`(?i)\bnowhere\b`), suggestion: "not evident, not present"},
	{pattern: regexp.MustCompile(`(?i)\ba lot\b|\blots of\b`), suggestion: "numerous, substantial, considerable"},
}

// spaceClass lists the characters treated as whitespace when counting words
// and splitting paragraphs. RE2's \s is ASCII-only, so the Unicode space
// separators, NBSP and the byte-order mark are spelled out.
const spaceClass = `\t\n\v\f\r \x{a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

var (
	sentenceEnd     = regexp.MustCompile(`[.!?]+`)
	paragraphBreak  = regexp.MustCompile(`\n[` + spaceClass + `]*\n`)
	formalWordRegex = wordBoundaryPatterns(formalConnectives, false)
	passiveRegex    = passivePatterns(passiveAuxiliaries)
)

func wordBoundaryPatterns(words []string, caseInsensitive bool) []*regexp.Regexp {
	prefix := ""
	if caseInsensitive {
		prefix = "(?i)"
	}
	out := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		out = append(out, regexp.MustCompile(prefix+`\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return out
}

// passivePatterns matches "<aux> <word>ed", case-sensitively.
func passivePatterns(auxiliaries []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(auxiliaries))
	for _, aux := range auxiliaries {
		out = append(out, regexp.MustCompile(`\b`+aux+`\s+\w+ed\b`))
	}
	return out
}

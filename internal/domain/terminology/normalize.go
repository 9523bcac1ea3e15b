package terminology

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Domain selects the normalization profile for a clinical vocabulary.
type Domain int

const (
	// DomainCondition additionally maps whole-token Roman numerals I-V to
	// digits, so "type ii" and "type 2" produce the same key.
	DomainCondition Domain = iota
	// DomainMedication additionally strips dosage expressions such as
	// "500mg" or "10 %".
	DomainMedication
	// DomainLab applies only the shared steps. Stripping units or numbers
	// would destroy lab semantics ("vitamin D 25-hydroxy" is not
	// "vitamin D").
	DomainLab
)

var (
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	separatorRe     = regexp.MustCompile(`[-_/]`)
	dosageRe        = regexp.MustCompile(`\b\d+\s*(mg|ml|mcg|g|iu|units|%)\b`)
	nonAlnumRe      = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// Roman numerals appear in condition names (diabetes type II, stage III).
// The map is deliberately small: beyond V the tokens become ambiguous with
// ordinary words and abbreviations.
var romanNumeralRes = []struct {
	re     *regexp.Regexp
	arabic string
}{
	{regexp.MustCompile(`\biv\b`), "4"},
	{regexp.MustCompile(`\biii\b`), "3"},
	{regexp.MustCompile(`\bii\b`), "2"},
	{regexp.MustCompile(`\bi\b`), "1"},
	{regexp.MustCompile(`\bv\b`), "5"},
}

// Normalize produces a stable lookup key for a free-text clinical term.
// It is pure and total: empty input yields an empty key, and applying it
// twice yields the same key as applying it once. It does not infer meaning,
// assign codes, or touch the vocabulary tables.
func Normalize(d Domain, text string) string {
	if text == "" {
		return ""
	}

	// Unicode canonical decomposition folds smart quotes and accented
	// characters into base characters plus combining marks; the marks are
	// removed with the rest of the non-alphanumerics below.
	t := norm.NFKD.String(text)
	t = strings.ToLower(t)

	t = parentheticalRe.ReplaceAllString(t, "")
	t = separatorRe.ReplaceAllString(t, " ")

	switch d {
	case DomainCondition:
		for _, rn := range romanNumeralRes {
			t = rn.re.ReplaceAllString(t, rn.arabic)
		}
	case DomainMedication:
		t = dosageRe.ReplaceAllString(t, "")
	}

	t = nonAlnumRe.ReplaceAllString(t, "")
	t = whitespaceRe.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// NormalizeCondition is Normalize with the condition profile.
func NormalizeCondition(text string) string { return Normalize(DomainCondition, text) }

// NormalizeMedication is Normalize with the medication profile.
func NormalizeMedication(text string) string { return Normalize(DomainMedication, text) }

// NormalizeLab is Normalize with the lab profile.
func NormalizeLab(text string) string { return Normalize(DomainLab, text) }

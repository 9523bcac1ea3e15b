package terminology

import (
	"context"
	"strings"

	"github.com/clinscribe/clinscribe/internal/platform/fhir"
)

// Candidate is a vocabulary match suggested by similarity search. It is
// unverified: nothing about its shape or code is trusted until it has been
// cross-checked against the vocabulary store.
type Candidate struct {
	System  string  `json:"system"`
	Code    string  `json:"code"`
	Display string  `json:"display"`
	Score   float64 `json:"score"`
}

// SemanticSearcher produces ranked vocabulary candidates for a free-text
// term. Implementations are best-effort: an error or empty result simply
// means no candidates, never a pipeline fault.
type SemanticSearcher interface {
	Search(ctx context.Context, term string, k int) ([]Candidate, error)
}

// candidateSystemURI maps a candidate's system identifier to a canonical
// system URI. Both the short index identifiers ("snomed") and full URIs are
// accepted; anything else returns "" and disqualifies the candidate.
func candidateSystemURI(system string) string {
	switch strings.ToLower(strings.TrimSpace(system)) {
	case "snomed", fhir.SystemSNOMED:
		return fhir.SystemSNOMED
	case "icd10", "icd-10", fhir.SystemICD10:
		return fhir.SystemICD10
	case "rxnorm", fhir.SystemRxNorm:
		return fhir.SystemRxNorm
	case "loinc", fhir.SystemLOINC:
		return fhir.SystemLOINC
	default:
		return ""
	}
}

// wellFormed reports whether a candidate has the minimum shape required to
// even attempt verification: a recognised system and non-empty code and
// display strings.
func (c Candidate) wellFormed() bool {
	return candidateSystemURI(c.System) != "" &&
		strings.TrimSpace(c.Code) != "" &&
		strings.TrimSpace(c.Display) != ""
}

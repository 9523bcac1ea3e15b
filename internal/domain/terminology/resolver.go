package terminology

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinscribe/clinscribe/internal/platform/fhir"
)

// Resolver turns free-text clinical terms into coded concepts. The static
// vocabulary tables are authoritative; the semantic searcher only widens
// recall, and every candidate it produces must be independently confirmed
// against the tables before its code is emitted.
type Resolver struct {
	store    *Store
	semantic SemanticSearcher // nil disables the fallback
	topK     int
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewResolver wires a resolver. semantic may be nil, in which case condition
// resolution stops after the deterministic lookups.
func NewResolver(store *Store, semantic SemanticSearcher, topK int, timeout time.Duration, logger zerolog.Logger) *Resolver {
	if topK <= 0 {
		topK = 3
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Resolver{store: store, semantic: semantic, topK: topK, timeout: timeout, logger: logger}
}

// ResolveCondition resolves a condition term to a CodeableConcept.
//
// Order of attempts:
//  1. deterministic lookup, primary then secondary table; a hit returns
//     immediately without touching the semantic searcher
//  2. semantic candidates in provider rank order, each shape-checked and
//     then verified by re-running the deterministic lookup on the
//     candidate's display text; the first candidate whose code the tables
//     confirm wins
//  3. a text-only concept; a code is never fabricated
func (r *Resolver) ResolveCondition(ctx context.Context, term string) fhir.CodeableConcept {
	concept := fhir.CodeableConcept{Text: term}

	if coding := r.store.LookupCondition(term); coding != nil {
		concept.Coding = []fhir.Coding{*coding}
		return concept
	}
	if coding := r.store.LookupConditionSecondary(term); coding != nil {
		concept.Coding = []fhir.Coding{*coding}
		return concept
	}

	if r.semantic == nil {
		return concept
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	candidates, err := r.semantic.Search(ctx, term, r.topK)
	if err != nil {
		// Best-effort path: a searcher failure degrades to an uncoded
		// concept, it is not a pipeline fault.
		r.logger.Debug().Err(err).Str("term", term).Msg("semantic search unavailable")
		return concept
	}

	for _, candidate := range candidates {
		if !candidate.wellFormed() {
			continue
		}
		if verified := r.verify(candidate); verified != nil {
			concept.Coding = []fhir.Coding{*verified}
			return concept
		}
		r.logger.Debug().
			Str("term", term).
			Str("candidate_code", candidate.Code).
			Msg("semantic candidate rejected by vocabulary check")
	}

	return concept
}

// verify re-runs the deterministic lookup on the candidate's display text
// and accepts the candidate only when the authoritative code matches. The
// returned coding comes from the vocabulary store, so system URI and display
// stay canonical even when the candidate carried index-internal values.
func (r *Resolver) verify(candidate Candidate) *fhir.Coding {
	if coding := r.store.LookupCondition(candidate.Display); coding != nil && coding.Code == candidate.Code {
		return coding
	}
	if coding := r.store.LookupConditionSecondary(candidate.Display); coding != nil && coding.Code == candidate.Code {
		return coding
	}
	return nil
}

// ResolveMedication resolves a medication name against RxNorm. There is no
// semantic fallback for medications; a wrong drug code is worse than none.
func (r *Resolver) ResolveMedication(name string) *fhir.Coding {
	return r.store.LookupMedication(name)
}

// ResolveLab resolves a lab test name against LOINC. Deterministic only.
func (r *Resolver) ResolveLab(test string) *fhir.Coding {
	return r.store.LookupLab(test)
}

// Package extraction wraps the language-model calls that turn free clinical
// text into a raw entity payload and a narrative summary. Both calls own
// their retry policy; the pipeline treats an exhausted oracle as a fatal
// server-side failure for that run.
package extraction

import (
	"context"
	"errors"
)

// ErrUnavailable marks an oracle that exhausted its retries or returned
// unparsable content even after a repair attempt.
var ErrUnavailable = errors.New("language model unavailable")

// ExtractionOracle produces schema-shaped but untrusted entity JSON for a
// clinical note. The payload keys follow the canonical record's field names
// but nothing about the value types is guaranteed.
type ExtractionOracle interface {
	Extract(ctx context.Context, text string) (map[string]interface{}, error)
}

// NoteSummary is the summarization oracle's structured output.
type NoteSummary struct {
	Summary     string   `json:"summary"`
	Diagnoses   []string `json:"diagnoses"`
	Symptoms    []string `json:"symptoms"`
	Medications []string `json:"medications"`
}

// SummarizationOracle rewrites a clinical note into EMR-style prose plus
// headline entity lists.
type SummarizationOracle interface {
	Summarize(ctx context.Context, text string) (*NoteSummary, error)
}

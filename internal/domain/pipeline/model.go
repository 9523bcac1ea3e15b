package pipeline

import (
	"github.com/clinscribe/clinscribe/internal/domain/normalization"
	"github.com/clinscribe/clinscribe/internal/platform/fhir"
)

// NoteRequest is the request body shared by the pipeline, extract and
// summarize endpoints.
type NoteRequest struct {
	Text string `json:"text"`
}

// PipelineResponse is one full run's output: the narrative summary, the
// canonical entity record, and the assembled document bundle.
type PipelineResponse struct {
	Summary  string                         `json:"summary"`
	Entities *normalization.CanonicalRecord `json:"entities"`
	FHIR     *fhir.Bundle                   `json:"fhir"`
}

// ConvertResponse is the output of entity-to-bundle conversion without the
// language-model stages.
type ConvertResponse struct {
	Entities *normalization.CanonicalRecord `json:"entities"`
	FHIR     *fhir.Bundle                   `json:"fhir"`
}

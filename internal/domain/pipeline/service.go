package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/clinscribe/clinscribe/internal/domain/extraction"
	"github.com/clinscribe/clinscribe/internal/domain/normalization"
)

// Service orchestrates the full note pipeline: summarize, extract,
// normalize, validate, assemble. Runs for different notes share no mutable
// state and may execute concurrently.
type Service struct {
	summarizer extraction.SummarizationOracle
	extractor  extraction.ExtractionOracle
	assembler  *Assembler
	logger     zerolog.Logger
}

func NewService(summarizer extraction.SummarizationOracle, extractor extraction.ExtractionOracle, assembler *Assembler, logger zerolog.Logger) *Service {
	return &Service{
		summarizer: summarizer,
		extractor:  extractor,
		assembler:  assembler,
		logger:     logger,
	}
}

// Run executes the full pipeline for one clinical note. Oracle failures are
// fatal for the run; validation failures surface as *ValidationError.
func (s *Service) Run(ctx context.Context, text string) (*PipelineResponse, error) {
	summary, err := s.summarizer.Summarize(ctx, text)
	if err != nil {
		return nil, err
	}

	raw, err := s.extractor.Extract(ctx, text)
	if err != nil {
		return nil, err
	}

	rec := normalization.Normalize(raw)
	if err := normalization.Validate(rec); err != nil {
		return nil, err
	}

	bundle := s.assembler.Assemble(ctx, rec)

	s.logger.Info().
		Int("conditions", len(rec.Conditions)).
		Int("medications", len(rec.Medications)).
		Int("entries", len(bundle.Entry)).
		Msg("pipeline run complete")

	return &PipelineResponse{
		Summary:  summary.Summary,
		Entities: rec,
		FHIR:     bundle,
	}, nil
}

// Extract runs only the extraction and normalization stages.
func (s *Service) Extract(ctx context.Context, text string) (*normalization.CanonicalRecord, error) {
	raw, err := s.extractor.Extract(ctx, text)
	if err != nil {
		return nil, err
	}
	return normalization.Normalize(raw), nil
}

// Summarize runs only the summarization stage.
func (s *Service) Summarize(ctx context.Context, text string) (*extraction.NoteSummary, error) {
	return s.summarizer.Summarize(ctx, text)
}

// Convert normalizes a caller-supplied raw entity payload and assembles it
// into a bundle, skipping the language-model stages entirely.
func (s *Service) Convert(ctx context.Context, raw map[string]interface{}) (*ConvertResponse, error) {
	rec := normalization.Normalize(raw)
	if err := normalization.Validate(rec); err != nil {
		return nil, err
	}
	return &ConvertResponse{
		Entities: rec,
		FHIR:     s.assembler.Assemble(ctx, rec),
	}, nil
}

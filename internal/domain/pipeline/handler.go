package pipeline

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clinscribe/clinscribe/internal/domain/extraction"
	"github.com/clinscribe/clinscribe/internal/domain/normalization"
	"github.com/clinscribe/clinscribe/internal/platform/fhir"
)

// Handler exposes the pipeline over REST.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the pipeline routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/pipeline", h.RunPipeline)
	api.POST("/extract", h.Extract)
	api.POST("/summarize", h.Summarize)
	api.POST("/fhir/convert", h.Convert)
}

// RunPipeline handles POST /api/v1/pipeline.
func (h *Handler) RunPipeline(c echo.Context) error {
	text, ok, err := bindNote(c)
	if !ok {
		return err
	}
	resp, err := h.svc.Run(c.Request().Context(), text)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Extract handles POST /api/v1/extract.
func (h *Handler) Extract(c echo.Context) error {
	text, ok, err := bindNote(c)
	if !ok {
		return err
	}
	rec, err := h.svc.Extract(c.Request().Context(), text)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

// Summarize handles POST /api/v1/summarize.
func (h *Handler) Summarize(c echo.Context) error {
	text, ok, err := bindNote(c)
	if !ok {
		return err
	}
	summary, err := h.svc.Summarize(c.Request().Context(), text)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// Convert handles POST /api/v1/fhir/convert. The body is a raw entity
// payload in the extraction schema.
func (h *Handler) Convert(c echo.Context) error {
	var raw map[string]interface{}
	if err := c.Bind(&raw); err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("invalid JSON body"))
	}
	resp, err := h.svc.Convert(c.Request().Context(), raw)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// bindNote reads the note body and writes the 400 response itself when the
// body is unusable; ok is false in that case.
func bindNote(c echo.Context) (text string, ok bool, err error) {
	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return "", false, c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("invalid JSON body"))
	}
	if strings.TrimSpace(req.Text) == "" {
		return "", false, c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("text is required"))
	}
	return req.Text, true, nil
}

// writeError maps pipeline errors onto HTTP statuses: empty payloads are
// 422, other validation failures 400, exhausted oracles 502.
func writeError(c echo.Context, err error) error {
	var verr *normalization.ValidationError
	if errors.As(err, &verr) {
		issues := make([]fhir.ValidationIssue, len(verr.Issues))
		for i, issue := range verr.Issues {
			issues[i] = fhir.ValidationIssue{Field: issue.Field, Diagnostics: issue.Detail}
		}
		status := http.StatusBadRequest
		if verr.Kind == normalization.FailureEmptyPayload {
			status = http.StatusUnprocessableEntity
		}
		return c.JSON(status, fhir.ValidationOutcome(issues))
	}
	if errors.Is(err, extraction.ErrUnavailable) {
		return c.JSON(http.StatusBadGateway, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
}

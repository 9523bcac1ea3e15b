package normalization

import (
	"fmt"
	"strings"
)

// FailureKind distinguishes a malformed record from an empty extraction.
type FailureKind string

const (
	// FailureInvalidEntity means one or more entities violate a structural
	// check; every violation is reported.
	FailureInvalidEntity FailureKind = "invalid-entity"
	// FailureEmptyPayload means no clinical entities were extracted at all.
	// An empty-looking extraction is "nothing was found", not a success.
	FailureEmptyPayload FailureKind = "empty-payload"
)

// Issue is a single violated check, addressed by field path.
type Issue struct {
	Field  string `json:"field"`
	Detail string `json:"detail"`
}

// ValidationError aggregates every violated check so the caller can fix all
// reported issues at once rather than resubmitting per failure.
type ValidationError struct {
	Kind   FailureKind `json:"kind"`
	Issues []Issue     `json:"issues"`
}

func (e *ValidationError) Error() string {
	details := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		details[i] = fmt.Sprintf("%s: %s", issue.Field, issue.Detail)
	}
	return fmt.Sprintf("validation failed (%s): %s", e.Kind, strings.Join(details, "; "))
}

// Validate enforces the minimum structural invariants a record needs before
// document assembly. The Schema Normalizer already guarantees most of them;
// they are re-checked here so a record constructed some other way cannot
// slip through. It returns nil or a *ValidationError carrying every
// violation.
func Validate(rec *CanonicalRecord) error {
	var issues []Issue

	for i, c := range rec.Conditions {
		if strings.TrimSpace(c) == "" {
			issues = append(issues, Issue{
				Field:  fmt.Sprintf("conditions[%d]", i),
				Detail: "condition must be a non-empty string",
			})
		}
	}
	for i, med := range rec.Medications {
		if med.Name == "" {
			issues = append(issues, Issue{
				Field:  fmt.Sprintf("medications[%d].name", i),
				Detail: "medication entry missing name",
			})
		}
	}
	for i, lab := range rec.Labs {
		if lab.Test == "" {
			issues = append(issues, Issue{
				Field:  fmt.Sprintf("labs[%d].test", i),
				Detail: "lab entry missing test name",
			})
		}
	}
	for i, vit := range rec.Vitals {
		if vit.Type == "" {
			issues = append(issues, Issue{
				Field:  fmt.Sprintf("vitals[%d].type", i),
				Detail: "vital entry missing type",
			})
		}
		if vit.Value == "" {
			issues = append(issues, Issue{
				Field:  fmt.Sprintf("vitals[%d].value", i),
				Detail: "vital entry missing value",
			})
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Kind: FailureInvalidEntity, Issues: issues}
	}

	if len(rec.Conditions) == 0 && len(rec.Symptoms) == 0 &&
		len(rec.Medications) == 0 && len(rec.Vitals) == 0 &&
		len(rec.Labs) == 0 && len(rec.Imaging) == 0 &&
		len(rec.Procedures) == 0 {
		return &ValidationError{
			Kind: FailureEmptyPayload,
			Issues: []Issue{{
				Field:  "entities",
				Detail: "no structured clinical entities were extracted from the note",
			}},
		}
	}

	return nil
}

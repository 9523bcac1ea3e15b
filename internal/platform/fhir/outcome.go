package fhir

// OperationOutcome reports errors to FHIR-aware clients.
type OperationOutcome struct {
	ResourceType string                  `json:"resourceType"`
	Issue        []OperationOutcomeIssue `json:"issue"`
}

type OperationOutcomeIssue struct {
	Severity    string   `json:"severity"`
	Code        string   `json:"code"`
	Diagnostics string   `json:"diagnostics,omitempty"`
	Expression  []string `json:"expression,omitempty"`
}

func NewOperationOutcome(severity, code, diagnostics string) *OperationOutcome {
	return &OperationOutcome{
		ResourceType: "OperationOutcome",
		Issue: []OperationOutcomeIssue{
			{Severity: severity, Code: code, Diagnostics: diagnostics},
		},
	}
}

// ErrorOutcome creates a generic processing error outcome.
func ErrorOutcome(diagnostics string) *OperationOutcome {
	return NewOperationOutcome("error", "processing", diagnostics)
}

// ValidationIssue is one violated check, addressed by field path.
type ValidationIssue struct {
	Field       string
	Diagnostics string
}

// ValidationOutcome creates an OperationOutcome carrying every violated
// validation check, one issue per violation.
func ValidationOutcome(issues []ValidationIssue) *OperationOutcome {
	oo := &OperationOutcome{ResourceType: "OperationOutcome"}
	for _, vi := range issues {
		issue := OperationOutcomeIssue{
			Severity:    "error",
			Code:        "invalid",
			Diagnostics: vi.Diagnostics,
		}
		if vi.Field != "" {
			issue.Expression = []string{vi.Field}
		}
		oo.Issue = append(oo.Issue, issue)
	}
	return oo
}

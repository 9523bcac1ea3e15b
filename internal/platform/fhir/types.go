// Package fhir holds the FHIR R4 datatypes and resources emitted by the
// document assembly pipeline. Only the subset of the specification actually
// produced by the service is modelled; fields that the assembler never
// populates are omitted rather than carried as dead weight.
package fhir

// Coding is a single code drawn from a terminology system.
type Coding struct {
	System  string `json:"system,omitempty"`
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
}

// CodeableConcept pairs free text with zero or more verified codings.
// The coding slice is only ever populated from the authoritative vocabulary
// tables; semantic candidates that fail verification never land here.
type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty"`
	Text   string   `json:"text,omitempty"`
}

// Reference points at another resource, typically by urn:uuid.
type Reference struct {
	Reference string `json:"reference,omitempty"`
	Display   string `json:"display,omitempty"`
}

type HumanName struct {
	Use    string   `json:"use,omitempty"`
	Text   string   `json:"text,omitempty"`
	Family string   `json:"family,omitempty"`
	Given  []string `json:"given,omitempty"`
}

// Quantity carries a measured value. Value is either a float64 (when the
// source text parsed as a number) or the original string.
type Quantity struct {
	Value interface{} `json:"value,omitempty"`
	Unit  string      `json:"unit,omitempty"`
}

// IsZero reports whether the quantity carries neither a value nor a unit.
func (q Quantity) IsZero() bool {
	return q.Value == nil && q.Unit == ""
}

type Annotation struct {
	Text string `json:"text"`
}

// Attachment is used for plain-text presented forms on diagnostic reports.
type Attachment struct {
	ContentType string `json:"contentType,omitempty"`
	Data        string `json:"data,omitempty"`
}

// Age is the value of the patient-age extension.
type Age struct {
	Value int    `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

type Extension struct {
	URL      string `json:"url"`
	ValueAge *Age   `json:"valueAge,omitempty"`
}

// System URIs for the code systems the resolver can emit.
const (
	SystemSNOMED = "http://snomed.info/sct"
	SystemICD10  = "http://hl7.org/fhir/sid/icd-10-cm"
	SystemRxNorm = "http://www.nlm.nih.gov/research/umls/rxnorm"
	SystemLOINC  = "http://loinc.org"
)

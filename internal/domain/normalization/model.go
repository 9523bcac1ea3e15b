// Package normalization is the single boundary where the untrusted,
// LLM-shaped extraction payload meets typed data. The Schema Normalizer
// repairs or drops malformed input; the Validation Guard rejects records
// that are structurally unusable for document assembly.
package normalization

// CanonicalRecord is the typed, repaired form of an extraction payload.
// Every list element satisfies its required fields; elements that could not
// be repaired were dropped, never retained with blank required fields.
type CanonicalRecord struct {
	Patient       *Patient             `json:"patient,omitempty"`
	Conditions    []string             `json:"conditions"`
	Symptoms      []Symptom            `json:"symptoms"`
	Medications   []Medication         `json:"medications"`
	Procedures    []string             `json:"procedures"`
	Allergies     []Allergy            `json:"allergies"`
	Vitals        []Vital              `json:"vitals"`
	Labs          []LabResult          `json:"labs"`
	Imaging       []ImagingResult      `json:"imaging"`
	PhysicalExam  []ExamFinding        `json:"physical_exam"`
	SocialHistory *SocialHistory       `json:"social_history,omitempty"`
	FamilyHistory []FamilyHistoryEntry `json:"family_history"`
	Assessment    *Assessment          `json:"assessment,omitempty"`
	Plan          *Plan                `json:"plan,omitempty"`
}

type Patient struct {
	Name   string `json:"name,omitempty"`
	Age    *int   `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

type Symptom struct {
	Name     string `json:"name"`
	Duration string `json:"duration,omitempty"`
	Severity string `json:"severity,omitempty"`
}

type Medication struct {
	Name      string `json:"name"`
	Dose      string `json:"dose,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Route     string `json:"route,omitempty"`
}

type Allergy struct {
	Substance string `json:"substance"`
	Reaction  string `json:"reaction,omitempty"`
}

type Vital struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// LabResult's Value is float64 when the source parsed as a number,
// otherwise the original string ("elevated" stays a string), or nil.
type LabResult struct {
	Test           string      `json:"test"`
	Value          interface{} `json:"value,omitempty"`
	Unit           string      `json:"unit,omitempty"`
	Interpretation string      `json:"interpretation,omitempty"`
}

type ImagingResult struct {
	Modality   string `json:"modality"`
	Finding    string `json:"finding"`
	Impression string `json:"impression,omitempty"`
}

type ExamFinding struct {
	BodyPart string `json:"body_part"`
	Finding  string `json:"finding"`
}

type SocialHistory struct {
	SmokingStatus string `json:"smoking_status,omitempty"`
	AlcoholUse    string `json:"alcohol_use,omitempty"`
	Occupation    string `json:"occupation,omitempty"`
}

type FamilyHistoryEntry struct {
	Condition string `json:"condition"`
	Relation  string `json:"relation,omitempty"`
}

type Assessment struct {
	Summary string `json:"summary"`
}

type Plan struct {
	Actions []string `json:"actions"`
}

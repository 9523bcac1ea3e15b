package fhir

// Patient is the subject resource every other entry references.
type Patient struct {
	ResourceType string      `json:"resourceType"`
	ID           string      `json:"id,omitempty"`
	Name         []HumanName `json:"name,omitempty"`
	Gender       string      `json:"gender,omitempty"`
	Extension    []Extension `json:"extension,omitempty"`
}

// Condition represents a diagnosed problem or an assessment summary.
type Condition struct {
	ResourceType string          `json:"resourceType"`
	ID           string          `json:"id,omitempty"`
	Subject      *Reference      `json:"subject,omitempty"`
	Code         CodeableConcept `json:"code"`
}

// Observation covers symptoms, vitals, labs, physical exam findings and
// social history entries. Exactly one of ValueString / ValueQuantity is set.
type Observation struct {
	ResourceType   string            `json:"resourceType"`
	ID             string            `json:"id,omitempty"`
	Subject        *Reference        `json:"subject,omitempty"`
	Category       []CodeableConcept `json:"category,omitempty"`
	Code           CodeableConcept   `json:"code"`
	ValueString    string            `json:"valueString,omitempty"`
	ValueQuantity  *Quantity         `json:"valueQuantity,omitempty"`
	Interpretation []CodeableConcept `json:"interpretation,omitempty"`
	Note           []Annotation      `json:"note,omitempty"`
}

type MedicationStatement struct {
	ResourceType              string          `json:"resourceType"`
	ID                        string          `json:"id,omitempty"`
	Subject                   *Reference      `json:"subject,omitempty"`
	MedicationCodeableConcept CodeableConcept `json:"medicationCodeableConcept"`
	Dosage                    []Dosage        `json:"dosage,omitempty"`
}

type Dosage struct {
	Text string `json:"text,omitempty"`
}

type Procedure struct {
	ResourceType string          `json:"resourceType"`
	ID           string          `json:"id,omitempty"`
	Subject      *Reference      `json:"subject,omitempty"`
	Code         CodeableConcept `json:"code"`
}

type AllergyIntolerance struct {
	ResourceType string            `json:"resourceType"`
	ID           string            `json:"id,omitempty"`
	Patient      *Reference        `json:"patient,omitempty"`
	Code         CodeableConcept   `json:"code"`
	Reaction     []AllergyReaction `json:"reaction,omitempty"`
}

type AllergyReaction struct {
	Description   string            `json:"description,omitempty"`
	Manifestation []CodeableConcept `json:"manifestation,omitempty"`
}

type DiagnosticReport struct {
	ResourceType  string          `json:"resourceType"`
	ID            string          `json:"id,omitempty"`
	Subject       *Reference      `json:"subject,omitempty"`
	Status        string          `json:"status"`
	Code          CodeableConcept `json:"code"`
	Conclusion    string          `json:"conclusion,omitempty"`
	PresentedForm []Attachment    `json:"presentedForm,omitempty"`
}

type FamilyMemberHistory struct {
	ResourceType string                   `json:"resourceType"`
	ID           string                   `json:"id,omitempty"`
	Patient      *Reference               `json:"patient,omitempty"`
	Status       string                   `json:"status"`
	Relationship *CodeableConcept         `json:"relationship,omitempty"`
	Condition    []FamilyHistoryCondition `json:"condition,omitempty"`
}

type FamilyHistoryCondition struct {
	Code CodeableConcept `json:"code"`
}

type CarePlan struct {
	ResourceType string             `json:"resourceType"`
	ID           string             `json:"id,omitempty"`
	Subject      *Reference         `json:"subject,omitempty"`
	Status       string             `json:"status"`
	Intent       string             `json:"intent"`
	Activity     []CarePlanActivity `json:"activity,omitempty"`
}

type CarePlanActivity struct {
	Detail CarePlanDetail `json:"detail"`
}

type CarePlanDetail struct {
	Description string `json:"description"`
}

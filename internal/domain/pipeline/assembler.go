package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinscribe/clinscribe/internal/domain/normalization"
	"github.com/clinscribe/clinscribe/internal/domain/terminology"
	"github.com/clinscribe/clinscribe/internal/platform/fhir"
)

const patientAgeExtensionURL = "http://hl7.org/fhir/StructureDefinition/patient-age"

// Assembler deterministically maps a canonical record into a collection
// bundle. Given a valid record it is total: absent inputs produce absent
// outputs, and no placeholder resources are emitted for empty sources.
type Assembler struct {
	resolver *terminology.Resolver
}

func NewAssembler(resolver *terminology.Resolver) *Assembler {
	return &Assembler{resolver: resolver}
}

// Assemble builds the output bundle. The Patient resource is emitted first
// and every subsequent resource carries a fresh identifier plus a reference
// back to the patient. Emission order is fixed; downstream consumers rely
// on it.
func (a *Assembler) Assemble(ctx context.Context, rec *normalization.CanonicalRecord) *fhir.Bundle {
	bundle := fhir.NewCollectionBundle()

	patientID := uuid.NewString()
	bundle.Append(patientID, a.patientResource(patientID, rec.Patient))
	subject := &fhir.Reference{Reference: fhir.URN(patientID)}

	for _, condition := range rec.Conditions {
		id := uuid.NewString()
		bundle.Append(id, &fhir.Condition{
			ResourceType: "Condition",
			ID:           id,
			Subject:      subject,
			Code:         a.resolver.ResolveCondition(ctx, condition),
		})
	}
	if rec.Assessment != nil {
		id := uuid.NewString()
		bundle.Append(id, &fhir.Condition{
			ResourceType: "Condition",
			ID:           id,
			Subject:      subject,
			Code:         a.resolver.ResolveCondition(ctx, rec.Assessment.Summary),
		})
	}

	for _, symptom := range rec.Symptoms {
		id := uuid.NewString()
		obs := &fhir.Observation{
			ResourceType: "Observation",
			ID:           id,
			Subject:      subject,
			Code:         fhir.CodeableConcept{Text: symptom.Name},
			ValueString:  symptom.Name,
		}
		if symptom.Duration != "" {
			obs.Note = append(obs.Note, fhir.Annotation{Text: "Duration: " + symptom.Duration})
		}
		if symptom.Severity != "" {
			obs.Note = append(obs.Note, fhir.Annotation{Text: "Severity: " + symptom.Severity})
		}
		bundle.Append(id, obs)
	}

	for _, vital := range rec.Vitals {
		id := uuid.NewString()
		obs := &fhir.Observation{
			ResourceType: "Observation",
			ID:           id,
			Subject:      subject,
			Code:         fhir.CodeableConcept{Text: vital.Type},
		}
		quantity := fhir.Quantity{
			Value: normalization.CoerceNumeric(vital.Value),
			Unit:  vital.Unit,
		}
		if !quantity.IsZero() {
			obs.ValueQuantity = &quantity
		}
		bundle.Append(id, obs)
	}

	for _, lab := range rec.Labs {
		id := uuid.NewString()
		code := fhir.CodeableConcept{Text: lab.Test}
		if coding := a.resolver.ResolveLab(lab.Test); coding != nil {
			code.Coding = []fhir.Coding{*coding}
		}
		obs := &fhir.Observation{
			ResourceType: "Observation",
			ID:           id,
			Subject:      subject,
			Code:         code,
		}
		quantity := fhir.Quantity{Value: lab.Value, Unit: lab.Unit}
		if !quantity.IsZero() {
			obs.ValueQuantity = &quantity
		}
		if lab.Interpretation != "" {
			obs.Interpretation = []fhir.CodeableConcept{{Text: lab.Interpretation}}
		}
		bundle.Append(id, obs)
	}

	for _, med := range rec.Medications {
		id := uuid.NewString()
		code := fhir.CodeableConcept{Text: med.Name}
		if coding := a.resolver.ResolveMedication(med.Name); coding != nil {
			code.Coding = []fhir.Coding{*coding}
		}
		stmt := &fhir.MedicationStatement{
			ResourceType:              "MedicationStatement",
			ID:                        id,
			Subject:                   subject,
			MedicationCodeableConcept: code,
		}
		if dosage := dosageText(med); dosage != "" {
			stmt.Dosage = []fhir.Dosage{{Text: dosage}}
		}
		bundle.Append(id, stmt)
	}

	for _, procedure := range rec.Procedures {
		id := uuid.NewString()
		bundle.Append(id, &fhir.Procedure{
			ResourceType: "Procedure",
			ID:           id,
			Subject:      subject,
			Code:         fhir.CodeableConcept{Text: procedure},
		})
	}

	for _, allergy := range rec.Allergies {
		id := uuid.NewString()
		res := &fhir.AllergyIntolerance{
			ResourceType: "AllergyIntolerance",
			ID:           id,
			Patient:      subject,
			Code:         fhir.CodeableConcept{Text: allergy.Substance},
		}
		if allergy.Reaction != "" {
			res.Reaction = []fhir.AllergyReaction{{
				Description:   allergy.Reaction,
				Manifestation: []fhir.CodeableConcept{{Text: allergy.Reaction}},
			}}
		}
		bundle.Append(id, res)
	}

	for _, img := range rec.Imaging {
		id := uuid.NewString()
		conclusion := img.Impression
		if conclusion == "" {
			conclusion = img.Finding
		}
		report := &fhir.DiagnosticReport{
			ResourceType: "DiagnosticReport",
			ID:           id,
			Subject:      subject,
			Status:       "final",
			Code:         fhir.CodeableConcept{Text: img.Modality},
			Conclusion:   conclusion,
			PresentedForm: []fhir.Attachment{{
				ContentType: "text/plain",
				Data:        img.Finding,
			}},
		}
		bundle.Append(id, report)
	}

	for _, exam := range rec.PhysicalExam {
		id := uuid.NewString()
		bundle.Append(id, &fhir.Observation{
			ResourceType: "Observation",
			ID:           id,
			Subject:      subject,
			Code:         fhir.CodeableConcept{Text: "Physical exam of " + exam.BodyPart},
			ValueString:  exam.Finding,
		})
	}

	for _, fh := range rec.FamilyHistory {
		id := uuid.NewString()
		res := &fhir.FamilyMemberHistory{
			ResourceType: "FamilyMemberHistory",
			ID:           id,
			Patient:      subject,
			Status:       "completed",
			Condition: []fhir.FamilyHistoryCondition{{
				Code: fhir.CodeableConcept{Text: fh.Condition},
			}},
		}
		if fh.Relation != "" {
			res.Relationship = &fhir.CodeableConcept{Text: fh.Relation}
		}
		bundle.Append(id, res)
	}

	if rec.SocialHistory != nil {
		appendSocial := func(label, value string) {
			if value == "" {
				return
			}
			id := uuid.NewString()
			bundle.Append(id, &fhir.Observation{
				ResourceType: "Observation",
				ID:           id,
				Subject:      subject,
				Category:     []fhir.CodeableConcept{{Text: "social-history"}},
				Code:         fhir.CodeableConcept{Text: label},
				ValueString:  value,
			})
		}
		appendSocial("smoking status", rec.SocialHistory.SmokingStatus)
		appendSocial("alcohol use", rec.SocialHistory.AlcoholUse)
		appendSocial("occupation", rec.SocialHistory.Occupation)
	}

	if rec.Plan != nil && len(rec.Plan.Actions) > 0 {
		id := uuid.NewString()
		plan := &fhir.CarePlan{
			ResourceType: "CarePlan",
			ID:           id,
			Subject:      subject,
			Status:       "active",
			Intent:       "plan",
		}
		for _, action := range rec.Plan.Actions {
			plan.Activity = append(plan.Activity, fhir.CarePlanActivity{
				Detail: fhir.CarePlanDetail{Description: action},
			})
		}
		bundle.Append(id, plan)
	}

	return bundle
}

func (a *Assembler) patientResource(id string, p *normalization.Patient) *fhir.Patient {
	patient := &fhir.Patient{ResourceType: "Patient", ID: id}
	if p == nil {
		return patient
	}
	if p.Name != "" {
		patient.Name = []fhir.HumanName{{Text: p.Name}}
	}
	patient.Gender = p.Gender
	if p.Age != nil {
		patient.Extension = []fhir.Extension{{
			URL:      patientAgeExtensionURL,
			ValueAge: &fhir.Age{Value: *p.Age, Unit: "years"},
		}}
	}
	return patient
}

// dosageText joins dose, frequency and route in that order.
func dosageText(med normalization.Medication) string {
	text := ""
	for _, part := range []string{med.Dose, med.Frequency, med.Route} {
		if part == "" {
			continue
		}
		if text != "" {
			text += " "
		}
		text += part
	}
	return text
}

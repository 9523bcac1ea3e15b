package normalization

import (
	"reflect"
	"testing"
)

func TestNormalizeNilAndEmpty(t *testing.T) {
	for _, raw := range []map[string]interface{}{nil, {}} {
		rec := Normalize(raw)
		if rec == nil {
			t.Fatal("Normalize returned nil record")
		}
		if rec.Conditions == nil || rec.Symptoms == nil || rec.Medications == nil ||
			rec.Procedures == nil || rec.Allergies == nil || rec.Vitals == nil ||
			rec.Labs == nil || rec.Imaging == nil || rec.PhysicalExam == nil ||
			rec.FamilyHistory == nil {
			t.Error("list fields must be initialized, not nil")
		}
		if rec.Patient != nil || rec.SocialHistory != nil || rec.Assessment != nil || rec.Plan != nil {
			t.Error("optional sections must be absent for empty input")
		}
	}
}

func TestNormalizePatient(t *testing.T) {
	rec := Normalize(map[string]interface{}{
		"patient": map[string]interface{}{
			"name":   "  Jane Doe ",
			"age":    float64(54),
			"gender": "Female",
		},
	})
	if rec.Patient == nil {
		t.Fatal("patient dropped")
	}
	if rec.Patient.Name != "Jane Doe" {
		t.Errorf("Name = %q", rec.Patient.Name)
	}
	if rec.Patient.Age == nil || *rec.Patient.Age != 54 {
		t.Errorf("Age = %v, want 54", rec.Patient.Age)
	}
	if rec.Patient.Gender != "female" {
		t.Errorf("Gender = %q, want lowercased", rec.Patient.Gender)
	}

	// Age as string.
	rec = Normalize(map[string]interface{}{
		"patient": map[string]interface{}{"age": "47"},
	})
	if rec.Patient == nil || rec.Patient.Age == nil || *rec.Patient.Age != 47 {
		t.Errorf("string age not coerced: %+v", rec.Patient)
	}

	// All fields empty collapses to absent.
	rec = Normalize(map[string]interface{}{
		"patient": map[string]interface{}{"name": "  ", "gender": ""},
	})
	if rec.Patient != nil {
		t.Errorf("empty patient should be absent, got %+v", rec.Patient)
	}
}

func TestNormalizeConditionsAndProcedures(t *testing.T) {
	rec := Normalize(map[string]interface{}{
		"conditions": []interface{}{" hypertension ", "", 42, float64(3.5), nil},
		"procedures": []interface{}{"appendectomy", "   "},
	})
	want := []string{"hypertension", "42", "3.5"}
	if !reflect.DeepEqual(rec.Conditions, want) {
		t.Errorf("Conditions = %v, want %v", rec.Conditions, want)
	}
	if !reflect.DeepEqual(rec.Procedures, []string{"appendectomy"}) {
		t.Errorf("Procedures = %v", rec.Procedures)
	}
}

func TestNormalizeDropsEntitiesMissingRequiredFields(t *testing.T) {
	rec := Normalize(map[string]interface{}{
		"symptoms": []interface{}{
			map[string]interface{}{"name": "headache", "severity": "Mild"},
			map[string]interface{}{"duration": "3 days"}, // no name
			"not a map",
		},
		"medications": []interface{}{
			map[string]interface{}{"name": "metformin", "frequency": "BID"},
			map[string]interface{}{"dose": "500mg"}, // no name
		},
		"allergies": []interface{}{
			map[string]interface{}{"substance": "penicillin", "reaction": "rash"},
			map[string]interface{}{"reaction": "hives"}, // no substance
		},
		"imaging": []interface{}{
			map[string]interface{}{"modality": "CXR", "finding": "clear"},
			map[string]interface{}{"modality": "CT"}, // no finding
		},
		"physical_exam": []interface{}{
			map[string]interface{}{"body_part": "abdomen", "finding": "soft"},
			map[string]interface{}{"finding": "tender"}, // no body part
		},
		"family_history": []interface{}{
			map[string]interface{}{"condition": "diabetes", "relation": "mother"},
			map[string]interface{}{"relation": "father"}, // no condition
		},
	})

	if len(rec.Symptoms) != 1 || rec.Symptoms[0].Name != "headache" || rec.Symptoms[0].Severity != "mild" {
		t.Errorf("Symptoms = %+v", rec.Symptoms)
	}
	if len(rec.Medications) != 1 || rec.Medications[0].Frequency != "bid" {
		t.Errorf("Medications = %+v", rec.Medications)
	}
	if len(rec.Allergies) != 1 || rec.Allergies[0].Substance != "penicillin" {
		t.Errorf("Allergies = %+v", rec.Allergies)
	}
	if len(rec.Imaging) != 1 || rec.Imaging[0].Modality != "CXR" {
		t.Errorf("Imaging = %+v", rec.Imaging)
	}
	if len(rec.PhysicalExam) != 1 || rec.PhysicalExam[0].BodyPart != "abdomen" {
		t.Errorf("PhysicalExam = %+v", rec.PhysicalExam)
	}
	if len(rec.FamilyHistory) != 1 || rec.FamilyHistory[0].Condition != "diabetes" {
		t.Errorf("FamilyHistory = %+v", rec.FamilyHistory)
	}
}

func TestNormalizeVitals(t *testing.T) {
	rec := Normalize(map[string]interface{}{
		"vitals": []interface{}{
			map[string]interface{}{"type": "heart rate", "value": "88 bpm"},
			map[string]interface{}{"type": "bp", "value": "120/80", "unit": "mmHg"},
			map[string]interface{}{"type": "temp"},           // no value
			map[string]interface{}{"value": "98.6", "unit": "F"}, // no type
		},
	})

	if len(rec.Vitals) != 2 {
		t.Fatalf("Vitals = %+v, want 2 entries", rec.Vitals)
	}
	// Compound value splits into value and unit.
	if rec.Vitals[0].Value != "88" || rec.Vitals[0].Unit != "bpm" {
		t.Errorf("compound vital = %+v, want value 88 unit bpm", rec.Vitals[0])
	}
	// Explicit unit is not overwritten.
	if rec.Vitals[1].Value != "120/80" || rec.Vitals[1].Unit != "mmHg" {
		t.Errorf("vital = %+v", rec.Vitals[1])
	}
}

func TestNormalizeLabs(t *testing.T) {
	rec := Normalize(map[string]interface{}{
		"labs": []interface{}{
			map[string]interface{}{"test": "pH", "value": "7.4"},
			map[string]interface{}{"test": "troponin", "value": "elevated", "interpretation": "High"},
			map[string]interface{}{"test": "glucose", "value": float64(110), "unit": "mg/dL"},
			map[string]interface{}{"value": float64(5)}, // no test name
		},
	})

	if len(rec.Labs) != 3 {
		t.Fatalf("Labs = %+v, want 3 entries", rec.Labs)
	}
	if v, ok := rec.Labs[0].Value.(float64); !ok || v != 7.4 {
		t.Errorf("numeric string value = %v (%T), want 7.4 float64", rec.Labs[0].Value, rec.Labs[0].Value)
	}
	if v, ok := rec.Labs[1].Value.(string); !ok || v != "elevated" {
		t.Errorf("qualitative value = %v (%T), want string", rec.Labs[1].Value, rec.Labs[1].Value)
	}
	if rec.Labs[1].Interpretation != "high" {
		t.Errorf("Interpretation = %q, want lowercased", rec.Labs[1].Interpretation)
	}
	if v, ok := rec.Labs[2].Value.(float64); !ok || v != 110 {
		t.Errorf("float value = %v (%T)", rec.Labs[2].Value, rec.Labs[2].Value)
	}
}

func TestNormalizeSocialAssessmentPlan(t *testing.T) {
	rec := Normalize(map[string]interface{}{
		"social_history": map[string]interface{}{
			"smoking_status": "Former",
			"alcohol_use":    "",
			"occupation":     "engineer",
		},
		"assessment": map[string]interface{}{"summary": " Likely viral URI. "},
		"plan":       map[string]interface{}{"actions": []interface{}{"rest", "", "fluids"}},
	})

	if rec.SocialHistory == nil || rec.SocialHistory.SmokingStatus != "former" || rec.SocialHistory.Occupation != "engineer" {
		t.Errorf("SocialHistory = %+v", rec.SocialHistory)
	}
	if rec.Assessment == nil || rec.Assessment.Summary != "Likely viral URI." {
		t.Errorf("Assessment = %+v", rec.Assessment)
	}
	if rec.Plan == nil || !reflect.DeepEqual(rec.Plan.Actions, []string{"rest", "fluids"}) {
		t.Errorf("Plan = %+v", rec.Plan)
	}

	// Empty sections collapse to absent.
	rec = Normalize(map[string]interface{}{
		"social_history": map[string]interface{}{"smoking_status": ""},
		"assessment":     map[string]interface{}{"summary": "  "},
		"plan":           map[string]interface{}{"actions": []interface{}{}},
	})
	if rec.SocialHistory != nil || rec.Assessment != nil || rec.Plan != nil {
		t.Errorf("empty sections should be absent: %+v %+v %+v", rec.SocialHistory, rec.Assessment, rec.Plan)
	}
}

func TestCoerceNumeric(t *testing.T) {
	if v := CoerceNumeric("98.6"); v != 98.6 {
		t.Errorf("CoerceNumeric(98.6) = %v", v)
	}
	if v := CoerceNumeric("120/80"); v != "120/80" {
		t.Errorf("CoerceNumeric(120/80) = %v", v)
	}
	if v := CoerceNumeric("  "); v != nil {
		t.Errorf("CoerceNumeric(blank) = %v, want nil", v)
	}
}

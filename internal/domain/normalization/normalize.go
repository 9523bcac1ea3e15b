package normalization

import (
	"strconv"
	"strings"
)

// Normalize converts a raw extraction payload into a CanonicalRecord.
// It is total: malformed input is repaired or dropped, never an error.
// Strings are trimmed, empties become absent, enum-like fields are
// lowercased without being validated against a fixed set, and list elements
// missing a required field are dropped.
func Normalize(raw map[string]interface{}) *CanonicalRecord {
	rec := &CanonicalRecord{
		Conditions:    []string{},
		Symptoms:      []Symptom{},
		Medications:   []Medication{},
		Procedures:    []string{},
		Allergies:     []Allergy{},
		Vitals:        []Vital{},
		Labs:          []LabResult{},
		Imaging:       []ImagingResult{},
		PhysicalExam:  []ExamFinding{},
		FamilyHistory: []FamilyHistoryEntry{},
	}
	if raw == nil {
		return rec
	}

	for _, v := range asList(raw["conditions"]) {
		if c := cleanString(v); c != "" {
			rec.Conditions = append(rec.Conditions, c)
		}
	}

	for _, v := range asList(raw["procedures"]) {
		if p := cleanString(v); p != "" {
			rec.Procedures = append(rec.Procedures, p)
		}
	}

	if p := asMap(raw["patient"]); p != nil {
		patient := Patient{
			Name:   cleanString(p["name"]),
			Age:    cleanAge(p["age"]),
			Gender: cleanLower(p["gender"]),
		}
		if patient.Name != "" || patient.Age != nil || patient.Gender != "" {
			rec.Patient = &patient
		}
	}

	for _, v := range asList(raw["symptoms"]) {
		m := asMap(v)
		if m == nil {
			continue
		}
		sym := Symptom{
			Name:     cleanString(m["name"]),
			Duration: cleanString(m["duration"]),
			Severity: cleanLower(m["severity"]),
		}
		if sym.Name != "" {
			rec.Symptoms = append(rec.Symptoms, sym)
		}
	}

	for _, v := range asList(raw["medications"]) {
		m := asMap(v)
		if m == nil {
			continue
		}
		med := Medication{
			Name:      cleanString(m["name"]),
			Dose:      cleanString(m["dose"]),
			Frequency: cleanLower(m["frequency"]),
			Route:     cleanLower(m["route"]),
		}
		if med.Name != "" {
			rec.Medications = append(rec.Medications, med)
		}
	}

	for _, v := range asList(raw["allergies"]) {
		m := asMap(v)
		if m == nil {
			continue
		}
		allergy := Allergy{
			Substance: cleanString(m["substance"]),
			Reaction:  cleanString(m["reaction"]),
		}
		if allergy.Substance != "" {
			rec.Allergies = append(rec.Allergies, allergy)
		}
	}

	for _, v := range asList(raw["vitals"]) {
		m := asMap(v)
		if m == nil {
			continue
		}
		vital := Vital{
			Type:  cleanString(m["type"]),
			Value: cleanString(m["value"]),
			Unit:  cleanString(m["unit"]),
		}
		// A compound "88 bpm" value supplies the unit when none was given.
		if value, unit, ok := splitValueUnit(vital.Value); ok {
			vital.Value = value
			if vital.Unit == "" {
				vital.Unit = unit
			}
		}
		if vital.Type != "" && vital.Value != "" {
			rec.Vitals = append(rec.Vitals, vital)
		}
	}

	for _, v := range asList(raw["labs"]) {
		m := asMap(v)
		if m == nil {
			continue
		}
		lab := LabResult{
			Test:           cleanString(m["test"]),
			Value:          cleanNumeric(m["value"]),
			Unit:           cleanString(m["unit"]),
			Interpretation: cleanLower(m["interpretation"]),
		}
		if lab.Test != "" {
			rec.Labs = append(rec.Labs, lab)
		}
	}

	for _, v := range asList(raw["imaging"]) {
		m := asMap(v)
		if m == nil {
			continue
		}
		img := ImagingResult{
			Modality:   cleanString(m["modality"]),
			Finding:    cleanString(m["finding"]),
			Impression: cleanString(m["impression"]),
		}
		if img.Modality != "" && img.Finding != "" {
			rec.Imaging = append(rec.Imaging, img)
		}
	}

	for _, v := range asList(raw["physical_exam"]) {
		m := asMap(v)
		if m == nil {
			continue
		}
		exam := ExamFinding{
			BodyPart: cleanString(m["body_part"]),
			Finding:  cleanString(m["finding"]),
		}
		if exam.BodyPart != "" && exam.Finding != "" {
			rec.PhysicalExam = append(rec.PhysicalExam, exam)
		}
	}

	if sh := asMap(raw["social_history"]); sh != nil {
		social := SocialHistory{
			SmokingStatus: cleanLower(sh["smoking_status"]),
			AlcoholUse:    cleanLower(sh["alcohol_use"]),
			Occupation:    cleanString(sh["occupation"]),
		}
		if social.SmokingStatus != "" || social.AlcoholUse != "" || social.Occupation != "" {
			rec.SocialHistory = &social
		}
	}

	for _, v := range asList(raw["family_history"]) {
		m := asMap(v)
		if m == nil {
			continue
		}
		fh := FamilyHistoryEntry{
			Condition: cleanString(m["condition"]),
			Relation:  cleanString(m["relation"]),
		}
		if fh.Condition != "" {
			rec.FamilyHistory = append(rec.FamilyHistory, fh)
		}
	}

	if a := asMap(raw["assessment"]); a != nil {
		if summary := cleanString(a["summary"]); summary != "" {
			rec.Assessment = &Assessment{Summary: summary}
		}
	}

	if p := asMap(raw["plan"]); p != nil {
		var actions []string
		for _, v := range asList(p["actions"]) {
			if a := cleanString(v); a != "" {
				actions = append(actions, a)
			}
		}
		if len(actions) > 0 {
			rec.Plan = &Plan{Actions: actions}
		}
	}

	return rec
}

// -- coercion helpers --

func asList(v interface{}) []interface{} {
	list, _ := v.([]interface{})
	return list
}

func asMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

// cleanString trims a scalar into a string; numbers are formatted, empty
// strings and unrecognised types become "".
func cleanString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	default:
		return ""
	}
}

func cleanLower(v interface{}) string {
	return strings.ToLower(cleanString(v))
}

// cleanAge coerces an age into a whole number of years, or nil.
func cleanAge(v interface{}) *int {
	switch a := v.(type) {
	case float64:
		age := int(a)
		return &age
	case int:
		age := a
		return &age
	case string:
		if age, err := strconv.Atoi(strings.TrimSpace(a)); err == nil {
			return &age
		}
	}
	return nil
}

// cleanNumeric prefers a float value and falls back to the trimmed original
// string when parsing fails; empty input is nil.
func cleanNumeric(v interface{}) interface{} {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return s
	default:
		return nil
	}
}

// CoerceNumeric returns the float64 form of s when it parses as a number,
// otherwise s unchanged; empty input yields nil. The assembler uses it for
// vital values that stayed strings through normalization.
func CoerceNumeric(s string) interface{} {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// splitValueUnit splits a compound "88 bpm" value into value and unit when
// it consists of exactly two space-separated tokens.
func splitValueUnit(value string) (string, string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return value, "", false
	}
	return parts[0], parts[1], true
}

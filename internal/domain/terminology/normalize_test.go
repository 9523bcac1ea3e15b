package terminology

import "testing"

func TestNormalizeCondition(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Hypertension", "hypertension"},
		{"parenthetical stripped", "Type 2 Diabetes (adult onset)", "type 2 diabetes"},
		{"roman numeral II", "Type-II diabetes (adult)", "type 2 diabetes"},
		{"roman numeral III", "stage III CKD", "stage 3 ckd"},
		{"roman numeral IV", "Stage IV cancer", "stage 4 cancer"},
		{"roman only as whole token", "vitamin deficiency", "vitamin deficiency"},
		{"separators become spaces", "gastro-esophageal_reflux/disease", "gastro esophageal reflux disease"},
		{"punctuation removed", "Crohn's disease", "crohns disease"},
		{"whitespace collapsed", "  heart   failure  ", "heart failure"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCondition(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeCondition(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeMedication(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"dosage mg stripped", "Metformin 500mg", "metformin"},
		{"dosage with space", "Lisinopril 10 mg", "lisinopril"},
		{"dosage mcg", "Levothyroxine 75mcg", "levothyroxine"},
		{"units", "Insulin 10 units", "insulin"},
		{"no dosage untouched", "Aspirin", "aspirin"},
		{"number without unit kept", "Vitamin B12", "vitamin b12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeMedication(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeMedication(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeLab(t *testing.T) {
	// The lab profile must not strip numbers or units; they are part of
	// the test identity.
	tests := []struct {
		in   string
		want string
	}{
		{"Hemoglobin A1c", "hemoglobin a1c"},
		{"Vitamin D 25-Hydroxy", "vitamin d 25 hydroxy"},
		{"CD4 count", "cd4 count"},
	}
	for _, tt := range tests {
		got := NormalizeLab(tt.in)
		if got != tt.want {
			t.Errorf("NormalizeLab(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Type-II Diabetes (adult)",
		"Metformin 500mg",
		"Vitamin D 25-Hydroxy",
		"Crohn's disease",
		"",
	}
	for _, d := range []Domain{DomainCondition, DomainMedication, DomainLab} {
		for _, in := range inputs {
			once := Normalize(d, in)
			twice := Normalize(d, once)
			if once != twice {
				t.Errorf("Normalize(%v, %q) not idempotent: %q then %q", d, in, once, twice)
			}
		}
	}
}

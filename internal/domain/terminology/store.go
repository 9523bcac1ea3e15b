package terminology

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/clinscribe/clinscribe/internal/platform/fhir"
)

// Store holds the four authoritative vocabulary tables, indexed by
// normalized lookup key. It is populated once at startup and read-only
// afterwards, so concurrent pipeline runs share it without locks.
type Store struct {
	condition          map[string]fhir.Coding // SNOMED CT, primary
	conditionSecondary map[string]fhir.Coding // ICD-10-CM
	medication         map[string]fhir.Coding // RxNorm
	lab                map[string]fhir.Coding // LOINC
}

// SNOMEDRow is one concept from the SNOMED source table.
type SNOMEDRow struct {
	Term      string
	Code      string
	Preferred string
	Synonyms  string // comma-separated
}

// ICD10Row is one concept from the ICD-10-CM source table.
type ICD10Row struct {
	Term string
	Code string
}

// RxNormRow is one medication from the RxNorm source table.
type RxNormRow struct {
	Name     string
	Code     string
	Synonyms string // comma-separated
}

// LOINCRow is one lab test from the LOINC source table.
type LOINCRow struct {
	Test      string
	Code      string
	Component string
}

// NewStore builds the lookup indexes from in-memory rows. Primary terms and
// synonyms are keyed by their normalized form; the first row claiming a key
// wins, matching source-table order.
func NewStore(snomed []SNOMEDRow, icd10 []ICD10Row, rxnorm []RxNormRow, loinc []LOINCRow) *Store {
	s := &Store{
		condition:          make(map[string]fhir.Coding),
		conditionSecondary: make(map[string]fhir.Coding),
		medication:         make(map[string]fhir.Coding),
		lab:                make(map[string]fhir.Coding),
	}

	for _, row := range snomed {
		coding := fhir.Coding{System: fhir.SystemSNOMED, Code: row.Code, Display: row.Preferred}
		s.index(s.condition, DomainCondition, row.Term, coding)
		for _, syn := range splitSynonyms(row.Synonyms) {
			s.index(s.condition, DomainCondition, syn, coding)
		}
	}
	for _, row := range icd10 {
		coding := fhir.Coding{System: fhir.SystemICD10, Code: row.Code, Display: row.Term}
		s.index(s.conditionSecondary, DomainCondition, row.Term, coding)
	}
	for _, row := range rxnorm {
		coding := fhir.Coding{System: fhir.SystemRxNorm, Code: row.Code, Display: row.Name}
		s.index(s.medication, DomainMedication, row.Name, coding)
		for _, syn := range splitSynonyms(row.Synonyms) {
			s.index(s.medication, DomainMedication, syn, coding)
		}
	}
	for _, row := range loinc {
		coding := fhir.Coding{System: fhir.SystemLOINC, Code: row.Code, Display: row.Component}
		s.index(s.lab, DomainLab, row.Test, coding)
	}

	return s
}

func (s *Store) index(table map[string]fhir.Coding, d Domain, term string, coding fhir.Coding) {
	key := Normalize(d, term)
	if key == "" {
		return
	}
	if _, exists := table[key]; !exists {
		table[key] = coding
	}
}

func splitSynonyms(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LookupCondition resolves a condition term against the SNOMED table.
func (s *Store) LookupCondition(term string) *fhir.Coding {
	return lookup(s.condition, DomainCondition, term)
}

// LookupConditionSecondary resolves a condition term against the ICD-10 table.
func (s *Store) LookupConditionSecondary(term string) *fhir.Coding {
	return lookup(s.conditionSecondary, DomainCondition, term)
}

// LookupMedication resolves a medication name against the RxNorm table.
func (s *Store) LookupMedication(name string) *fhir.Coding {
	return lookup(s.medication, DomainMedication, name)
}

// LookupLab resolves a lab test name against the LOINC table.
func (s *Store) LookupLab(test string) *fhir.Coding {
	return lookup(s.lab, DomainLab, test)
}

func lookup(table map[string]fhir.Coding, d Domain, term string) *fhir.Coding {
	key := Normalize(d, term)
	if key == "" {
		return nil
	}
	if coding, ok := table[key]; ok {
		return &coding
	}
	return nil
}

// Stats reports the number of indexed keys per table.
type Stats struct {
	Condition          int `json:"condition"`
	ConditionSecondary int `json:"condition_secondary"`
	Medication         int `json:"medication"`
	Lab                int `json:"lab"`
}

func (s *Store) Stats() Stats {
	return Stats{
		Condition:          len(s.condition),
		ConditionSecondary: len(s.conditionSecondary),
		Medication:         len(s.medication),
		Lab:                len(s.lab),
	}
}

// Source file names expected inside the vocabulary data directory.
const (
	snomedFile = "snomed.csv"
	icd10File  = "icd10.csv"
	rxnormFile = "rxnorm.csv"
	loincFile  = "loinc.csv"
)

// Load reads the four vocabulary CSVs from dir and builds the store.
// A missing file yields an empty table rather than an error, so a partial
// vocabulary deployment still starts; malformed CSV content is an error.
func Load(dir string) (*Store, error) {
	snomedRows, err := readCSV(filepath.Join(dir, snomedFile))
	if err != nil {
		return nil, fmt.Errorf("load snomed: %w", err)
	}
	icd10Rows, err := readCSV(filepath.Join(dir, icd10File))
	if err != nil {
		return nil, fmt.Errorf("load icd10: %w", err)
	}
	rxnormRows, err := readCSV(filepath.Join(dir, rxnormFile))
	if err != nil {
		return nil, fmt.Errorf("load rxnorm: %w", err)
	}
	loincRows, err := readCSV(filepath.Join(dir, loincFile))
	if err != nil {
		return nil, fmt.Errorf("load loinc: %w", err)
	}

	var snomed []SNOMEDRow
	for _, r := range snomedRows {
		snomed = append(snomed, SNOMEDRow{
			Term:      r["term"],
			Code:      r["code"],
			Preferred: r["preferred"],
			Synonyms:  r["synonyms"],
		})
	}
	var icd10 []ICD10Row
	for _, r := range icd10Rows {
		icd10 = append(icd10, ICD10Row{Term: r["term"], Code: r["code"]})
	}
	var rxnorm []RxNormRow
	for _, r := range rxnormRows {
		rxnorm = append(rxnorm, RxNormRow{
			Name:     r["name"],
			Code:     r["rxnorm"],
			Synonyms: r["synonyms"],
		})
	}
	var loinc []LOINCRow
	for _, r := range loincRows {
		loinc = append(loinc, LOINCRow{
			Test:      r["test"],
			Code:      r["code"],
			Component: r["component"],
		})
	}

	return NewStore(snomed, icd10, rxnorm, loinc), nil
}

// readCSV parses a header-row CSV into one map per record. Missing files
// return no rows.
func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[strings.TrimSpace(col)] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Package importer loads the bulk healthcare CSV dataset into the record
// store. It is an external collaborator of the core: every row goes through
// the facade operations, so ID uniqueness and the one-ledger-per-patient
// invariant are enforced the same way they are for interactive use.
package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/records"
)

// IDs for imported patients are allocated from this base upward, skipping
// any that are already taken.
const autoIDBase = 10000

// Run imports the CSV file at path and returns the number of patients
// created.
func Run(svc *records.Service, path string, logger zerolog.Logger) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	created := 0
	row := 0
	for {
		cols, err := r.Read()
		if err != nil {
			break
		}
		row++

		name := col(cols, idx, "name")
		if name == "" {
			name = "N/A"
		}
		age := clampAge(parseInt(col(cols, idx, "age"), 30))

		gender := orNA(col(cols, idx, "gender"))
		bloodType := orNA(col(cols, idx, "blood type"))
		condition := orNA(col(cols, idx, "medical condition"))
		doctor := orNA(col(cols, idx, "doctor"))
		hospital := orNA(col(cols, idx, "hospital"))
		insurance := orNA(col(cols, idx, "insurance provider"))
		roomNumber := orNA(col(cols, idx, "room number"))
		admissionType := orNA(col(cols, idx, "admission type"))
		dischargeDate := orNA(col(cols, idx, "discharge date"))
		medication := orNA(col(cols, idx, "medication"))
		testResults := orNA(col(cols, idx, "test results"))
		billingAmount := parseFloat(col(cols, idx, "billing amount"), 0)
		if billingAmount < 0 {
			billingAmount = 0
		}

		pid := autoIDBase + row
		for svc.FindPatient(pid) != nil {
			pid++
		}

		contact := insurance
		if contact == "N/A" {
			contact = hospital
		}
		if !svc.AddPatient(pid, normalizeName(name), age, contact) {
			logger.Warn().Int("row", row).Int("patient_id", pid).Msg("skipping duplicate patient")
			continue
		}
		created++

		for _, entry := range []string{
			"Gender: " + gender,
			"Blood Type: " + bloodType,
			"Diagnosis: " + condition,
			"Doctor: " + doctor,
			"Hospital: " + hospital,
			"Insurance: " + insurance,
			"Room Number: " + roomNumber,
			"Admission Type: " + admissionType,
			"Discharge Date: " + dischargeDate,
			"Medication: " + medication,
			"Test Results: " + testResults,
		} {
			svc.AddMedicalHistory(pid, entry)
		}

		if dischargeDate != "N/A" {
			record := dischargeDate + " - Discharge"
			if admissionType != "N/A" {
				record += " (" + admissionType + ")"
			}
			svc.AddVisitRecord(pid, record)
		}

		if billingAmount > 0 {
			svc.GenerateBill(pid, billingAmount)
		}
	}

	logger.Info().Int("created", created).Int("rows", row).Str("file", path).Msg("import finished")
	return created, nil
}

func col(cols []string, idx map[string]int, key string) string {
	i, ok := idx[key]
	if !ok || i < 0 || i >= len(cols) {
		return ""
	}
	return strings.TrimSpace(cols[i])
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func parseFloat(s string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return f
}

func clampAge(age int) int {
	if age < 1 {
		return 1
	}
	if age > 120 {
		return 120
	}
	return age
}

// normalizeName title-cases each whitespace-separated word.
func normalizeName(name string) string {
	parts := strings.Fields(strings.ToLower(name))
	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

package visitplan

import (
	"fmt"
	"strings"

	"github.com/hms/hms/internal/domain/patient"
)

// Visit plan statuses.
const (
	StatusPlanned   = "Planned"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// VisitPlan is a planned clinical encounter for one patient, carrying the
// clinical report fields filled in during or after the visit. The patient
// pointer is a non-owning back-reference.
type VisitPlan struct {
	ID      int              `json:"id"`
	Patient *patient.Patient `json:"patient"`
	Date    string           `json:"date"`
	Purpose string           `json:"purpose"`
	Doctor  string           `json:"doctor"`
	Status  string           `json:"status"`

	Diagnosis     string `json:"diagnosis"`
	TreatmentPlan string `json:"treatment_plan"`
	DoctorNote    string `json:"doctor_note"`
}

// FormattedReport renders the fixed-layout visit report block. Empty
// clinical fields render as "N/A".
func (v *VisitPlan) FormattedReport() string {
	name := "N/A"
	if v.Patient != nil {
		name = v.Patient.Name
	}
	var b strings.Builder
	b.WriteString("=== VISIT REPORT ===\n")
	fmt.Fprintf(&b, "Plan ID: %d\n", v.ID)
	fmt.Fprintf(&b, "Patient: %s\n", name)
	fmt.Fprintf(&b, "Date: %s\n", v.Date)
	fmt.Fprintf(&b, "Doctor: %s\n\n", v.Doctor)
	fmt.Fprintf(&b, "Diagnosis: %s\n\n", orNA(v.Diagnosis))
	fmt.Fprintf(&b, "Treatment Plan:\n%s\n\n", orNA(v.TreatmentPlan))
	fmt.Fprintf(&b, "Doctor Notes:\n%s\n", orNA(v.DoctorNote))
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func (v *VisitPlan) String() string {
	name := "N/A"
	if v.Patient != nil {
		name = v.Patient.Name
	}
	return fmt.Sprintf("VisitPlan{ID=%d, Patient=%s, Date=%s, Purpose=%s, Doctor=%s, Status=%s}",
		v.ID, name, v.Date, v.Purpose, v.Doctor, v.Status)
}

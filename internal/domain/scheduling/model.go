package scheduling

import (
	"fmt"

	"github.com/hms/hms/internal/domain/patient"
)

// Appointment statuses. Status is the only field that changes after
// creation, besides date/time on reschedule.
const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Appointment is a dated booking against an existing patient. The patient
// pointer is a non-owning back-reference into the patient index.
type Appointment struct {
	ID      int              `json:"id"`
	Patient *patient.Patient `json:"patient"`
	Date    string           `json:"date"`
	Time    string           `json:"time"`
	Status  string           `json:"status"`
}

// Cancel marks the appointment cancelled.
func (a *Appointment) Cancel() {
	a.Status = StatusCancelled
}

// Complete marks the appointment completed.
func (a *Appointment) Complete() {
	a.Status = StatusCompleted
}

// Reschedule moves the appointment and puts it back in Scheduled state.
func (a *Appointment) Reschedule(date, time string) {
	a.Date = date
	a.Time = time
	a.Status = StatusScheduled
}

func (a *Appointment) String() string {
	name := "N/A"
	if a.Patient != nil {
		name = a.Patient.Name
	}
	return fmt.Sprintf("Appointment{ID=%d, Patient=%s, Date=%s, Time=%s, Status=%s}",
		a.ID, name, a.Date, a.Time, a.Status)
}

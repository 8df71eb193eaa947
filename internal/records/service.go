// Package records is the single entry point to the clinical record store.
// The Service owns the patient index, appointment queue, waiting list,
// billing ledgers, and visit-plan store, and enforces the invariants that
// span them: one ledger per patient, bookings and plans only against live
// patients, and visit-record append on plan completion.
package records

import (
	"strings"
	"sync"

	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/reports"
	"github.com/hms/hms/internal/domain/scheduling"
	"github.com/hms/hms/internal/domain/visitplan"
)

// Service coordinates all record sub-structures. Every operation runs to
// completion under one exclusive lock; report generation also serializes
// behind it so a reader never observes a structure mid-mutation.
type Service struct {
	mu       sync.Mutex
	patients *patient.Index
	queue    *scheduling.Queue
	waitlist *scheduling.WaitingList
	ledgers  []*billing.Ledger
	plans    *visitplan.Store
}

func NewService() *Service {
	return &Service{
		patients: patient.NewIndex(),
		queue:    scheduling.NewQueue(),
		waitlist: scheduling.NewWaitingList(),
		plans:    visitplan.NewStore(),
	}
}

// -- Patients --

// AddPatient registers a patient and opens their billing ledger. Returns
// false when the ID is already taken, leaving all state unchanged.
func (s *Service) AddPatient(id int, name string, age int, contact string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.patients.Search(id) != nil {
		return false
	}
	s.patients.Insert(patient.New(id, name, age, contact))
	s.ledgers = append(s.ledgers, billing.Open(id))
	return true
}

func (s *Service) FindPatient(id int) *patient.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.patients.Search(id)
}

// AllPatients returns every patient in ascending ID order.
func (s *Service) AllPatients() []*patient.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.patients.All()
}

// UpdateContact replaces a patient's contact string.
func (s *Service) UpdateContact(id int, contact string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.patients.Search(id)
	if p == nil {
		return false
	}
	p.UpdateContact(contact)
	return true
}

// AddMedicalHistory appends a history entry to a patient's record.
func (s *Service) AddMedicalHistory(id int, entry string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.patients.Search(id)
	if p == nil {
		return false
	}
	p.AddMedicalHistory(entry)
	return true
}

// AddVisitRecord appends a visit entry to a patient's record.
func (s *Service) AddVisitRecord(id int, record string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.patients.Search(id)
	if p == nil {
		return false
	}
	p.AddVisitRecord(record)
	return true
}

// -- Appointments --

// ScheduleAppointment books an appointment for an existing patient. Returns
// nil for an unknown patient; the failed attempt does not consume an
// appointment ID.
func (s *Service) ScheduleAppointment(patientID int, date, time string) *scheduling.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Schedule(s.patients.Search(patientID), date, time)
}

func (s *Service) CancelAppointment(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Cancel(id)
}

func (s *Service) CompleteAppointment(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Complete(id)
}

func (s *Service) RescheduleAppointment(id int, date, time string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Reschedule(id, date, time)
}

// AllAppointments returns a snapshot in arrival order.
func (s *Service) AllAppointments() []*scheduling.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.All()
}

// -- Waiting list --

// AddToWaitingList enqueues an existing patient with priority equal to
// their age.
func (s *Service) AddToWaitingList(patientID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.patients.Search(patientID)
	if p == nil {
		return false
	}
	s.waitlist.Enqueue(p)
	return true
}

// AddToWaitingListWithPriority enqueues with an explicit priority value.
func (s *Service) AddToWaitingListWithPriority(patientID, priority int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.patients.Search(patientID)
	if p == nil {
		return false
	}
	s.waitlist.EnqueueWithPriority(p, priority)
	return true
}

// RemoveFromWaitingList dequeues the highest-priority patient, or nil.
func (s *Service) RemoveFromWaitingList() *patient.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waitlist.Dequeue()
}

// NextWaiting returns the head of the waiting list without removing it.
func (s *Service) NextWaiting() *patient.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waitlist.Peek()
}

// WaitingPatients returns every waiting patient. Only the first element is
// guaranteed to be the next served.
func (s *Service) WaitingPatients() []*patient.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waitlist.All()
}

// -- Billing --

// GenerateBill charges an amount to a patient's ledger. False for an
// unknown patient or a non-positive amount.
func (s *Service) GenerateBill(patientID int, amount float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.ledgerFor(patientID)
	if l == nil {
		return false
	}
	return l.Charge(amount)
}

// AddPayment records a payment against a patient's ledger.
func (s *Service) AddPayment(patientID int, amount float64, date string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.ledgerFor(patientID)
	if l == nil {
		return false
	}
	l.Pay(amount, date)
	return true
}

func (s *Service) BillingFor(patientID int) *billing.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledgerFor(patientID)
}

// AllBilling returns every ledger in patient-creation order.
func (s *Service) AllBilling() []*billing.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*billing.Ledger, len(s.ledgers))
	copy(out, s.ledgers)
	return out
}

func (s *Service) ledgerFor(patientID int) *billing.Ledger {
	for _, l := range s.ledgers {
		if l.PatientID == patientID {
			return l
		}
	}
	return nil
}

// -- Visit plans --

// CreateVisitPlan opens a plan against an existing patient. Returns nil for
// an unknown patient; the failed attempt does not consume a plan ID.
func (s *Service) CreateVisitPlan(patientID int, date, purpose, doctor string) *visitplan.VisitPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plans.Create(s.patients.Search(patientID), date, purpose, doctor)
}

// SetVisitPlanStatus transitions a plan to Planned, Completed, or
// Cancelled. Completion appends the plan date to the patient's visit
// records. Unknown statuses are refused.
func (s *Service) SetVisitPlanStatus(planID int, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch status {
	case visitplan.StatusPlanned, visitplan.StatusCompleted, visitplan.StatusCancelled:
		return s.plans.SetStatus(planID, status)
	}
	return false
}

// UpdateVisitPlanReport sets whichever clinical fields are non-empty.
func (s *Service) UpdateVisitPlanReport(planID int, diagnosis, treatmentPlan, doctorNote string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plans.UpdateReport(planID, diagnosis, treatmentPlan, doctorNote)
}

func (s *Service) FindVisitPlan(planID int) *visitplan.VisitPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plans.Find(planID)
}

func (s *Service) AllVisitPlans() []*visitplan.VisitPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plans.All()
}

func (s *Service) VisitPlansForPatient(patientID int) []*visitplan.VisitPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plans.ForPatient(patientID)
}

// VisitPlanFormattedReport renders a single plan's report block.
func (s *Service) VisitPlanFormattedReport(planID int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.plans.Find(planID)
	if v == nil {
		return "Visit plan not found."
	}
	return v.FormattedReport()
}

// -- Reports --

func (s *Service) GeneratePatientReport(patientID int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reports.PatientReport(s.patients.Search(patientID), s.plans.ForPatient(patientID))
}

func (s *Service) GenerateAppointmentReport() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reports.AppointmentReport(s.queue.All())
}

func (s *Service) GenerateRevenueReport() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reports.RevenueReport(s.ledgers)
}

// GenerateReport dispatches on report kind. patientID is only consulted for
// the patient report.
func (s *Service) GenerateReport(kind string, patientID int) string {
	switch strings.ToLower(kind) {
	case "patient":
		return s.GeneratePatientReport(patientID)
	case "appointment":
		return s.GenerateAppointmentReport()
	case "revenue":
		return s.GenerateRevenueReport()
	default:
		return "Invalid report type."
	}
}

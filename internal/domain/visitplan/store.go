package visitplan

import "github.com/hms/hms/internal/domain/patient"

// Store holds visit plans in creation order with sequential IDs starting
// at 1. Lookups are linear scans; absence is a normal result.
type Store struct {
	plans  []*VisitPlan
	nextID int
}

func NewStore() *Store {
	return &Store{nextID: 1}
}

// Create adds a plan for p in Planned state. A nil patient is refused and
// does not consume an ID.
func (s *Store) Create(p *patient.Patient, date, purpose, doctor string) *VisitPlan {
	if p == nil {
		return nil
	}
	v := &VisitPlan{
		ID:      s.nextID,
		Patient: p,
		Date:    date,
		Purpose: purpose,
		Doctor:  doctor,
		Status:  StatusPlanned,
	}
	s.nextID++
	s.plans = append(s.plans, v)
	return v
}

// Find returns the plan with the given ID, or nil.
func (s *Store) Find(id int) *VisitPlan {
	for _, v := range s.plans {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// SetStatus transitions a plan. Completing a plan with a non-empty date
// appends that date to the patient's visit records; other transitions have
// no side effect on the patient.
func (s *Store) SetStatus(id int, status string) bool {
	v := s.Find(id)
	if v == nil {
		return false
	}
	v.Status = status
	if status == StatusCompleted && v.Patient != nil && v.Date != "" {
		v.Patient.AddVisitRecord(v.Date)
	}
	return true
}

// UpdateReport sets whichever of the three clinical fields are non-empty,
// leaving the others untouched.
func (s *Store) UpdateReport(id int, diagnosis, treatmentPlan, doctorNote string) bool {
	v := s.Find(id)
	if v == nil {
		return false
	}
	if diagnosis != "" {
		v.Diagnosis = diagnosis
	}
	if treatmentPlan != "" {
		v.TreatmentPlan = treatmentPlan
	}
	if doctorNote != "" {
		v.DoctorNote = doctorNote
	}
	return true
}

// All returns every plan in creation order.
func (s *Store) All() []*VisitPlan {
	out := make([]*VisitPlan, len(s.plans))
	copy(out, s.plans)
	return out
}

// ForPatient returns the plans referencing the given patient ID, in
// creation order.
func (s *Store) ForPatient(patientID int) []*VisitPlan {
	var out []*VisitPlan
	for _, v := range s.plans {
		if v.Patient != nil && v.Patient.ID == patientID {
			out = append(out, v)
		}
	}
	return out
}

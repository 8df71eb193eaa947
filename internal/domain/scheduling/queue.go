package scheduling

import "github.com/hms/hms/internal/domain/patient"

// Queue holds appointments in arrival order. IDs are allocated sequentially
// starting at 1; a failed schedule attempt does not consume an ID. Lookups
// are linear scans over arrival order, which is the ordering basis the
// report generator re-sorts by date.
type Queue struct {
	appointments []*Appointment
	nextID       int
}

func NewQueue() *Queue {
	return &Queue{nextID: 1}
}

// Schedule books an appointment for p. The caller resolves p from the
// patient index; a nil patient means the booking is refused.
func (q *Queue) Schedule(p *patient.Patient, date, time string) *Appointment {
	if p == nil {
		return nil
	}
	a := &Appointment{
		ID:      q.nextID,
		Patient: p,
		Date:    date,
		Time:    time,
		Status:  StatusScheduled,
	}
	q.nextID++
	q.appointments = append(q.appointments, a)
	return a
}

// Cancel marks the first appointment with the given ID cancelled.
func (q *Queue) Cancel(id int) bool {
	if a := q.find(id); a != nil {
		a.Cancel()
		return true
	}
	return false
}

// Complete marks the first appointment with the given ID completed.
func (q *Queue) Complete(id int) bool {
	if a := q.find(id); a != nil {
		a.Complete()
		return true
	}
	return false
}

// Reschedule updates date/time and resets the status to Scheduled.
func (q *Queue) Reschedule(id int, date, time string) bool {
	if a := q.find(id); a != nil {
		a.Reschedule(date, time)
		return true
	}
	return false
}

func (q *Queue) find(id int) *Appointment {
	for _, a := range q.appointments {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// All returns a snapshot of the appointments in arrival order.
func (q *Queue) All() []*Appointment {
	out := make([]*Appointment, len(q.appointments))
	copy(out, q.appointments)
	return out
}

func (q *Queue) Size() int { return len(q.appointments) }

package patient

import (
	"fmt"
	"strings"
)

// Patient is the single owned record for a person under care. The index in
// this package is the sole owner; every other structure in the system refers
// to a patient by ID or holds the pointer without mutating it.
type Patient struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Age            int      `json:"age"`
	Contact        string   `json:"contact"`
	MedicalHistory []string `json:"medical_history"`
	VisitRecords   []string `json:"visit_records"`
}

func New(id int, name string, age int, contact string) *Patient {
	return &Patient{
		ID:             id,
		Name:           name,
		Age:            age,
		Contact:        contact,
		MedicalHistory: []string{},
		VisitRecords:   []string{},
	}
}

// AddMedicalHistory appends a free-text history entry. Entries are
// append-only and keep insertion order.
func (p *Patient) AddMedicalHistory(entry string) {
	p.MedicalHistory = append(p.MedicalHistory, entry)
}

// AddVisitRecord appends a free-text visit entry.
func (p *Patient) AddVisitRecord(record string) {
	p.VisitRecords = append(p.VisitRecords, record)
}

// UpdateContact replaces the patient's contact string.
func (p *Patient) UpdateContact(contact string) {
	p.Contact = contact
}

// Info renders the multi-line summary block used at the top of the patient
// report.
func (p *Patient) Info() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Patient ID: %d\n", p.ID)
	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	fmt.Fprintf(&b, "Age: %d\n", p.Age)
	fmt.Fprintf(&b, "Contact Info: %s\n", p.Contact)
	fmt.Fprintf(&b, "Medical History: [%s]\n", strings.Join(p.MedicalHistory, ", "))
	fmt.Fprintf(&b, "Visit Records: [%s]\n", strings.Join(p.VisitRecords, ", "))
	return b.String()
}

func (p *Patient) String() string {
	return fmt.Sprintf("Patient{ID=%d, Name=%s, Age=%d}", p.ID, p.Name, p.Age)
}

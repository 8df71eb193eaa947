// Package reports renders deterministic text reports over snapshots of the
// record store. Every generator sorts a copy of its input and never touches
// the source structures, so report output for the same state is always
// byte-identical.
package reports

import (
	"fmt"
	"strings"

	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/scheduling"
	"github.com/hms/hms/internal/domain/visitplan"
)

// PatientReport renders the full patient record: identity block, visit
// records sorted ascending, and a clinical summary taken from the latest
// dated plan that carries a diagnosis or treatment. Dates are YYYY-MM-DD
// strings, so lexicographic order is chronological order.
func PatientReport(p *patient.Patient, plans []*visitplan.VisitPlan) string {
	if p == nil {
		return "Patient not found."
	}

	var b strings.Builder
	b.WriteString("PATIENT REPORT\n")
	b.WriteString("==============\n\n")
	b.WriteString(p.Info())
	b.WriteString("\nVisit Records (Sorted by Date):\n")

	visits := make([]string, len(p.VisitRecords))
	copy(visits, p.VisitRecords)
	quickSort(visits, 0, len(visits)-1)
	for _, v := range visits {
		fmt.Fprintf(&b, "- %s\n", v)
	}

	diagnosis, treatment := latestClinicalSummary(plans)
	b.WriteString("\nClinical Summary\n")
	b.WriteString("----------------\n")
	fmt.Fprintf(&b, "Diagnosis: %s\n", orNA(diagnosis))
	fmt.Fprintf(&b, "Treatment Plan:\n%s\n", orNA(treatment))
	return b.String()
}

// latestClinicalSummary scans plans in order and keeps the fields of the
// plan with the greatest date among those with a non-empty diagnosis or
// treatment. The >= comparison means a tie goes to the plan seen later.
func latestClinicalSummary(plans []*visitplan.VisitPlan) (diagnosis, treatment string) {
	latestDate := ""
	for _, vp := range plans {
		d := strings.TrimSpace(vp.Diagnosis)
		t := strings.TrimSpace(vp.TreatmentPlan)
		if d == "" && t == "" {
			continue
		}
		if latestDate == "" || vp.Date >= latestDate {
			latestDate = vp.Date
			diagnosis = d
			treatment = t
		}
	}
	return diagnosis, treatment
}

// AppointmentReport renders every appointment sorted ascending by date with
// per-status tallies.
func AppointmentReport(appointments []*scheduling.Appointment) string {
	var b strings.Builder
	b.WriteString("=== APPOINTMENT REPORT ===\n")
	fmt.Fprintf(&b, "Total Appointments: %d\n\n", len(appointments))

	sorted := make([]*scheduling.Appointment, len(appointments))
	copy(sorted, appointments)
	mergeSortAppointments(sorted)

	b.WriteString("Appointments (Sorted by Date):\n")
	var scheduled, completed, cancelled int
	for _, a := range sorted {
		b.WriteString(a.String())
		b.WriteString("\n")
		switch a.Status {
		case scheduling.StatusScheduled:
			scheduled++
		case scheduling.StatusCompleted:
			completed++
		case scheduling.StatusCancelled:
			cancelled++
		}
	}

	b.WriteString("\nStatistics:\n")
	fmt.Fprintf(&b, "Scheduled: %d\n", scheduled)
	fmt.Fprintf(&b, "Completed: %d\n", completed)
	fmt.Fprintf(&b, "Cancelled: %d\n", cancelled)
	return b.String()
}

// RevenueReport renders every ledger sorted descending by outstanding
// balance, followed by the sum of all balances.
func RevenueReport(ledgers []*billing.Ledger) string {
	var b strings.Builder
	b.WriteString("=== REVENUE REPORT ===\n")
	fmt.Fprintf(&b, "Total Patients with Billing: %d\n\n", len(ledgers))

	sorted := make([]*billing.Ledger, len(ledgers))
	copy(sorted, ledgers)
	mergeSortLedgers(sorted)

	var total float64
	b.WriteString("Billing Records (Sorted by Amount):\n")
	for _, l := range sorted {
		b.WriteString(l.String())
		b.WriteString("\n")
		total += l.Balance
	}

	fmt.Fprintf(&b, "\nTotal Outstanding Revenue: $%.2f\n", total)
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

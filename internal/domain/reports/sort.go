package reports

import (
	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/scheduling"
)

// The generators sort with fixed, hand-rolled algorithms rather than the
// sort package: report output must be reproducible byte for byte, and that
// pins down exactly how equal keys are ordered. The merge step takes from
// the left run on ties, preserving relative order for equal dates and
// amounts; the quicksort's last-element pivot matches the partition scheme
// the visit-record ordering was defined against.

// quickSort orders strings ascending, in place, pivoting on the last
// element of each partition.
func quickSort(s []string, low, high int) {
	if low >= high {
		return
	}
	pi := partition(s, low, high)
	quickSort(s, low, pi-1)
	quickSort(s, pi+1, high)
}

func partition(s []string, low, high int) int {
	pivot := s[high]
	i := low - 1
	for j := low; j < high; j++ {
		if s[j] <= pivot {
			i++
			s[i], s[j] = s[j], s[i]
		}
	}
	s[i+1], s[high] = s[high], s[i+1]
	return i + 1
}

// mergeSortAppointments orders appointments ascending by date string.
func mergeSortAppointments(a []*scheduling.Appointment) {
	if len(a) < 2 {
		return
	}
	mid := len(a) / 2
	left := make([]*scheduling.Appointment, mid)
	right := make([]*scheduling.Appointment, len(a)-mid)
	copy(left, a[:mid])
	copy(right, a[mid:])
	mergeSortAppointments(left)
	mergeSortAppointments(right)

	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if left[i].Date <= right[j].Date {
			a[k] = left[i]
			i++
		} else {
			a[k] = right[j]
			j++
		}
		k++
	}
	for i < len(left) {
		a[k] = left[i]
		i++
		k++
	}
	for j < len(right) {
		a[k] = right[j]
		j++
		k++
	}
}

// mergeSortLedgers orders ledgers descending by balance.
func mergeSortLedgers(l []*billing.Ledger) {
	if len(l) < 2 {
		return
	}
	mid := len(l) / 2
	left := make([]*billing.Ledger, mid)
	right := make([]*billing.Ledger, len(l)-mid)
	copy(left, l[:mid])
	copy(right, l[mid:])
	mergeSortLedgers(left)
	mergeSortLedgers(right)

	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if left[i].Balance >= right[j].Balance {
			l[k] = left[i]
			i++
		} else {
			l[k] = right[j]
			j++
		}
		k++
	}
	for i < len(left) {
		l[k] = left[i]
		i++
		k++
	}
	for j < len(right) {
		l[k] = right[j]
		j++
		k++
	}
}

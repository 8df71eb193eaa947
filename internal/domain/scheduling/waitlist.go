package scheduling

import (
	"container/heap"

	"github.com/hms/hms/internal/domain/patient"
)

// WaitingList is a priority queue of patients awaiting service. Higher
// priority is served first; the default priority is the patient's age, so
// older patients come off the list before younger ones. The same patient may
// be enqueued more than once. Ordering among equal priorities is not
// defined and callers must not rely on it.
type WaitingList struct {
	entries waitHeap
}

type waitEntry struct {
	patient  *patient.Patient
	priority int
}

func NewWaitingList() *WaitingList {
	return &WaitingList{}
}

// Enqueue adds p with priority equal to its age.
func (w *WaitingList) Enqueue(p *patient.Patient) {
	w.EnqueueWithPriority(p, p.Age)
}

// EnqueueWithPriority adds p with an explicit priority value.
func (w *WaitingList) EnqueueWithPriority(p *patient.Patient, priority int) {
	heap.Push(&w.entries, waitEntry{patient: p, priority: priority})
}

// Dequeue removes and returns the highest-priority patient, or nil when the
// list is empty.
func (w *WaitingList) Dequeue() *patient.Patient {
	if w.entries.Len() == 0 {
		return nil
	}
	e := heap.Pop(&w.entries).(waitEntry)
	return e.patient
}

// Peek returns the highest-priority patient without removing it.
func (w *WaitingList) Peek() *patient.Patient {
	if w.entries.Len() == 0 {
		return nil
	}
	return w.entries[0].patient
}

// All returns the waiting patients in heap order. The order is an
// implementation detail; only the head is guaranteed highest priority.
func (w *WaitingList) All() []*patient.Patient {
	out := make([]*patient.Patient, 0, len(w.entries))
	for _, e := range w.entries {
		out = append(out, e.patient)
	}
	return out
}

func (w *WaitingList) Size() int { return w.entries.Len() }

func (w *WaitingList) IsEmpty() bool { return w.entries.Len() == 0 }

type waitHeap []waitEntry

func (h waitHeap) Len() int            { return len(h) }
func (h waitHeap) Less(i, j int) bool  { return h[i].priority > h[j].priority }
func (h waitHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *waitHeap) Push(x interface{}) { *h = append(*h, x.(waitEntry)) }

func (h *waitHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

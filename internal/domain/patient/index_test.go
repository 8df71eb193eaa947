package patient

import (
	"testing"
)

func insertIDs(ix *Index, ids ...int) {
	for _, id := range ids {
		ix.Insert(New(id, "p", 30, "c"))
	}
}

func orderedIDs(ix *Index) []int {
	var got []int
	for _, p := range ix.All() {
		got = append(got, p.ID)
	}
	return got
}

func TestIndex_InsertAndSearch(t *testing.T) {
	ix := NewIndex()
	if !ix.IsEmpty() {
		t.Error("new index should be empty")
	}

	insertIDs(ix, 50, 10, 70, 5)

	if ix.IsEmpty() {
		t.Error("index should not be empty after inserts")
	}
	if ix.Size() != 4 {
		t.Errorf("Size() = %d, want 4", ix.Size())
	}
	for _, id := range []int{50, 10, 70, 5} {
		p := ix.Search(id)
		if p == nil {
			t.Fatalf("Search(%d) = nil, want patient", id)
		}
		if p.ID != id {
			t.Errorf("Search(%d).ID = %d", id, p.ID)
		}
	}
	if p := ix.Search(99); p != nil {
		t.Errorf("Search(99) = %v, want nil", p)
	}
}

func TestIndex_AllAscendingRegardlessOfInsertionOrder(t *testing.T) {
	cases := [][]int{
		{50, 10, 70, 5},
		{5, 10, 50, 70},
		{70, 50, 10, 5},
		{10, 70, 5, 50},
	}
	for _, ids := range cases {
		ix := NewIndex()
		insertIDs(ix, ids...)
		got := orderedIDs(ix)
		want := []int{5, 10, 50, 70}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("insert order %v: All() = %v, want %v", ids, got, want)
				break
			}
		}
	}
}

func TestIndex_DeleteLeaf(t *testing.T) {
	ix := NewIndex()
	insertIDs(ix, 50, 10, 70, 5)

	ix.Delete(5)

	if p := ix.Search(5); p != nil {
		t.Error("Search(5) should be nil after delete")
	}
	got := orderedIDs(ix)
	want := []int{10, 50, 70}
	if len(got) != len(want) {
		t.Fatalf("All() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("All() = %v, want %v", got, want)
		}
	}
}

func TestIndex_DeleteNodeWithOneChild(t *testing.T) {
	ix := NewIndex()
	insertIDs(ix, 50, 10, 70, 5)

	// 10 has a single left child (5)
	ix.Delete(10)

	if ix.Search(10) != nil {
		t.Error("Search(10) should be nil after delete")
	}
	got := orderedIDs(ix)
	want := []int{5, 50, 70}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("All() = %v, want %v", got, want)
		}
	}
}

func TestIndex_DeleteNodeWithTwoChildren(t *testing.T) {
	ix := NewIndex()
	insertIDs(ix, 50, 30, 70, 20, 40, 60, 80)

	// root has two children; successor (60) is spliced in
	ix.Delete(50)

	if ix.Search(50) != nil {
		t.Error("Search(50) should be nil after delete")
	}
	if p := ix.Search(60); p == nil {
		t.Error("successor 60 should still be present")
	}
	got := orderedIDs(ix)
	want := []int{20, 30, 40, 60, 70, 80}
	if len(got) != len(want) {
		t.Fatalf("All() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("All() = %v, want %v", got, want)
		}
	}
}

func TestIndex_DeleteRootRepeatedly(t *testing.T) {
	ix := NewIndex()
	insertIDs(ix, 4, 2, 6, 1, 3, 5, 7)

	for _, id := range []int{4, 2, 6, 1, 3, 5, 7} {
		ix.Delete(id)
		if ix.Search(id) != nil {
			t.Errorf("Search(%d) should be nil after delete", id)
		}
		got := orderedIDs(ix)
		for i := 1; i < len(got); i++ {
			if got[i-1] >= got[i] {
				t.Fatalf("ordering violated after deleting %d: %v", id, got)
			}
		}
	}
	if !ix.IsEmpty() {
		t.Error("index should be empty after deleting everything")
	}
}

func TestIndex_DeleteAbsentIDIsNoop(t *testing.T) {
	ix := NewIndex()
	insertIDs(ix, 10, 20)

	ix.Delete(99)

	if ix.Size() != 2 {
		t.Errorf("Size() = %d, want 2", ix.Size())
	}
}

func TestIndex_ReuseAfterDelete(t *testing.T) {
	ix := NewIndex()
	insertIDs(ix, 10, 20, 30)
	ix.Delete(20)
	insertIDs(ix, 25, 15)

	got := orderedIDs(ix)
	want := []int{10, 15, 25, 30}
	if len(got) != len(want) {
		t.Fatalf("All() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("All() = %v, want %v", got, want)
		}
	}
}

package journal

import (
	"testing"

	"github.com/google/uuid"

	"github.com/dshills/tapecalc/internal/tape"
)

func TestRecord(t *testing.T) {
	j := New()

	steps := []tape.Step{
		{DisplayValue: "10", Kind: tape.NumberEntry},
		{DisplayValue: "+(5×3)=15", Kind: tape.CompoundOperation},
	}
	entry := j.Record(25, 2, steps)

	if entry.ID == uuid.Nil {
		t.Error("entry should have an ID")
	}
	if entry.Result != 25 || entry.ArticleCount != 2 {
		t.Errorf("entry = %+v", entry)
	}
	if len(entry.Expressions) != 2 || entry.Expressions[1] != "+(5×3)=15" {
		t.Errorf("expressions = %v", entry.Expressions)
	}
	if entry.RecordedAt.IsZero() {
		t.Error("entry should carry a timestamp")
	}

	if j.Len() != 1 {
		t.Errorf("Len = %d, want 1", j.Len())
	}
	last, ok := j.Last()
	if !ok || last.ID != entry.ID {
		t.Errorf("Last = %+v/%v, want the recorded entry", last, ok)
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	j := New(WithCapacity(3))

	for i := 0; i < 5; i++ {
		j.Record(float64(i), 1, nil)
	}

	if j.Len() != 3 {
		t.Fatalf("Len = %d, want 3", j.Len())
	}
	entries := j.Entries()
	want := []float64{2, 3, 4}
	for i, w := range want {
		if entries[i].Result != w {
			t.Errorf("entry %d result = %g, want %g", i, entries[i].Result, w)
		}
	}
}

func TestLastEmpty(t *testing.T) {
	if _, ok := New().Last(); ok {
		t.Error("Last on empty journal should report false")
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	j := New()
	j.Record(1, 1, nil)

	entries := j.Entries()
	entries[0].Result = 99

	if fresh := j.Entries(); fresh[0].Result != 1 {
		t.Error("mutating the returned slice should not affect the journal")
	}
}

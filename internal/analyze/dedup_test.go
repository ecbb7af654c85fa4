package analyze

import (
	"testing"

	"ado-policy-report/internal/model"
)

func TestDedupKeepsFirstOccurrence(t *testing.T) {
	in := []model.RawPolicy{
		{ID: "a", Name: "first a"},
		{ID: "b", Name: "first b"},
		{ID: "a", Name: "second a"},
		{ID: "c", Name: "first c"},
		{ID: "b", Name: "second b"},
	}
	got := Dedup(in)
	want := []string{"first a", "first b", "first c"}
	if len(got) != len(want) {
		t.Fatalf("Dedup returned %d policies, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("Dedup()[%d] = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestDedupEmpty(t *testing.T) {
	if got := Dedup(nil); len(got) != 0 {
		t.Errorf("Dedup(nil) = %v, want empty", got)
	}
}

func TestDedupDeterministic(t *testing.T) {
	in := make([]model.RawPolicy, 0, 50)
	for i := 0; i < 50; i++ {
		in = append(in, model.RawPolicy{ID: string(rune('a' + i%7))})
	}
	first := Dedup(in)
	for run := 0; run < 20; run++ {
		again := Dedup(in)
		for i := range first {
			if again[i].ID != first[i].ID {
				t.Fatalf("run %d: Dedup()[%d] = %q, want %q", run, i, again[i].ID, first[i].ID)
			}
		}
	}
	if len(first) != 7 {
		t.Errorf("Dedup kept %d ids, want 7", len(first))
	}
}

package analyze

import "testing"

func TestTopCoverage(t *testing.T) {
	table := FrequencyTableOf(Entry{"C", 2}, Entry{"A", 5}, Entry{"B", 3})
	got := Top(table, TopN, 8)
	want := []struct {
		label string
		count int
		pct   string
	}{
		{"A", 5, "62.5"},
		{"B", 3, "37.5"},
		{"C", 2, "25.0"},
	}
	if len(got) != len(want) {
		t.Fatalf("Top returned %d entries, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Label != w.label || got[i].Count != w.count || FormatPercent(got[i].Coverage) != w.pct {
			t.Errorf("Top()[%d] = (%s,%d,%s), want (%s,%d,%s)", i,
				got[i].Label, got[i].Count, FormatPercent(got[i].Coverage), w.label, w.count, w.pct)
		}
	}
}

func TestTopTruncatesToTen(t *testing.T) {
	table := NewFrequencyTable()
	for i := 0; i < 15; i++ {
		table.Add(string(rune('a'+i)), i+1)
	}
	got := Top(table, TopN, 15)
	if len(got) != TopN {
		t.Fatalf("Top returned %d entries, want %d", len(got), TopN)
	}
	if got[0].Label != "o" || got[9].Label != "f" {
		t.Errorf("Top range = %s..%s, want o..f", got[0].Label, got[9].Label)
	}
}

func TestRankStableOnTies(t *testing.T) {
	table := FrequencyTableOf(Entry{"x", 1}, Entry{"y", 2}, Entry{"z", 1}, Entry{"w", 2})
	got := Rank(table)
	want := []string{"y", "w", "x", "z"}
	for i, label := range want {
		if got[i].Label != label {
			t.Errorf("Rank()[%d] = %q, want %q", i, got[i].Label, label)
		}
	}
}

func TestPercent(t *testing.T) {
	cases := []struct {
		count, denom int
		want         string
	}{
		{3, 0, "0.0"},
		{1, 3, "33.3"},
		{2, 3, "66.7"},
		{49, 400, "12.3"}, // 12.25 rounds away from zero
		{1, 8, "12.5"},
		{4, 4, "100.0"},
	}
	for _, tc := range cases {
		if got := FormatPercent(Percent(tc.count, tc.denom)); got != tc.want {
			t.Errorf("Percent(%d, %d) = %s, want %s", tc.count, tc.denom, got, tc.want)
		}
	}
}

func TestFrequencyTableNeverDecreases(t *testing.T) {
	table := NewFrequencyTable()
	table.Inc("a")
	table.Add("a", -5)
	table.Add("a", 0)
	if got := table.Count("a"); got != 1 {
		t.Errorf("Count(a) = %d, want 1", got)
	}
	table.Add("b", 0)
	if table.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (zero adds must not create labels)", table.Len())
	}
}

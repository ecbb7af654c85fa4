package analyze

// FrequencyTable counts occurrences per label. Labels remember the order in
// which they were first counted so equal counts rank deterministically.
type FrequencyTable struct {
	counts map[string]int
	order  []string
}

func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{counts: map[string]int{}}
}

// FrequencyTableOf builds a table from label/count pairs given in order.
func FrequencyTableOf(pairs ...Entry) *FrequencyTable {
	t := NewFrequencyTable()
	for _, p := range pairs {
		t.Add(p.Label, p.Count)
	}
	return t
}

// Inc adds one occurrence of label.
func (t *FrequencyTable) Inc(label string) {
	t.Add(label, 1)
}

// Add adds n occurrences of label. Non-positive n is ignored so counts never decrease.
func (t *FrequencyTable) Add(label string, n int) {
	if n <= 0 {
		return
	}
	if _, ok := t.counts[label]; !ok {
		t.order = append(t.order, label)
	}
	t.counts[label] += n
}

func (t *FrequencyTable) Count(label string) int {
	if t == nil {
		return 0
	}
	return t.counts[label]
}

// Len returns the number of distinct labels.
func (t *FrequencyTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Entries returns label/count pairs in first-insertion order.
func (t *FrequencyTable) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, 0, len(t.order))
	for _, label := range t.order {
		out = append(out, Entry{Label: label, Count: t.counts[label]})
	}
	return out
}

// Entry is one label and its count.
type Entry struct {
	Label string
	Count int
}

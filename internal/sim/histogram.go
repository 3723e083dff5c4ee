// Package sim exercises a weighted selector with randomized trials and
// checks the observed outcome distribution against the configured weights.
package sim

// Histogram counts selection outcomes of a round of trials.
type Histogram struct {
	// Values maps a selected value to the number of trials that produced it.
	Values map[string]int64

	// None is the number of trials with no selection.
	None int64
}

func NewHistogram() *Histogram {
	return &Histogram{
		Values: make(map[string]int64),
	}
}

// Add records a single pick result.
func (h *Histogram) Add(value string, ok bool) {
	if !ok {
		h.None++
		return
	}
	h.Values[value]++
}

// Merge adds all counts from other into h.
func (h *Histogram) Merge(other *Histogram) {
	for v, cnt := range other.Values {
		h.Values[v] += cnt
	}
	h.None += other.None
}

// Total returns the number of recorded trials.
func (h *Histogram) Total() int64 {
	total := h.None
	for _, cnt := range h.Values {
		total += cnt
	}
	return total
}

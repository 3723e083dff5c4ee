package sim

import (
	"github.com/petuhovskiy/wrand"
)

// Expected returns the expected count per value for n trials, plus the
// expected count of the "no selection" outcome. Weights of duplicate
// values are merged. totalWeight must be the selector's total, including
// any "no selection" mass.
func Expected(items []wrand.Item[string], totalWeight float64, n int) (map[string]float64, float64) {
	exp := make(map[string]float64)
	if totalWeight <= 0 {
		return exp, 0
	}

	var itemSum float64
	for _, it := range items {
		exp[it.Value] += it.Weight
		itemSum += it.Weight
	}
	for v, w := range exp {
		exp[v] = w / totalWeight * float64(n)
	}

	var noneExp float64
	if noneWeight := totalWeight - itemSum; noneWeight > 0 {
		noneExp = noneWeight / totalWeight * float64(n)
	}
	return exp, noneExp
}

// ChiSquare computes the chi-square statistic of the observed histogram
// against the distribution implied by the weights. Zero-weight outcomes
// are skipped.
func ChiSquare(h *Histogram, items []wrand.Item[string], totalWeight float64) float64 {
	exp, noneExp := Expected(items, totalWeight, int(h.Total()))

	var chi float64
	for v, e := range exp {
		if e == 0 {
			continue
		}
		o := float64(h.Values[v])
		chi += (o - e) * (o - e) / e
	}
	if noneExp > 0 {
		o := float64(h.None)
		chi += (o - noneExp) * (o - noneExp) / noneExp
	}
	return chi
}

package sim

import (
	"math/rand"

	"github.com/petuhovskiy/wrand"
	"github.com/petuhovskiy/wrand/internal/bgjobs"
)

// RunTrials exercises the selector the given number of times, split across
// workers. Worker i draws from its own generator seeded with seed+i, so a
// fixed seed and worker count reproduces the exact same histogram.
func RunTrials(reg *bgjobs.Register, sel *wrand.Selector[string], trials, workers int, seed int64) *Histogram {
	if workers < 1 {
		workers = 1
	}

	per := trials / workers
	extra := trials % workers
	results := make(chan *Histogram, workers)

	for i := 0; i < workers; i++ {
		n := per
		if i < extra {
			n++
		}
		r := rand.New(rand.NewSource(seed + int64(i)))
		reg.Go(func() {
			results <- runWorker(sel, n, r)
		})
	}

	total := NewHistogram()
	for i := 0; i < workers; i++ {
		total.Merge(<-results)
	}
	return total
}

func runWorker(sel *wrand.Selector[string], n int, r *rand.Rand) *Histogram {
	h := NewHistogram()
	for i := 0; i < n; i++ {
		h.Add(sel.PickWith(r))
	}
	return h
}

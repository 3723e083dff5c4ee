// Package wrand selects among weighted choices, without bias.
//
// A Selector is built once with With/WithNone/WithNoneUpTo and then reused
// for many picks:
//
//	sel := wrand.New[string]().
//		With(1.0, "A").
//		With(1.5, "B").
//		WithNone(2.5)
//	v, ok := sel.Pick()
//	// ok is false half of the time, and "B" is 50% more likely than "A"
//
// The random source is supplied by the caller: either an explicit draw in
// [0, TotalWeight()) via Select, a *rand.Rand via PickWith, or the global
// math/rand source via Pick. The selector itself never seeds or owns a
// generator.
package wrand

import (
	"fmt"
	"math"
	"math/rand"
)

// Item pairs a weight with a value. A slice of items is convenient for
// literal construction via FromItems and for decoding weighted choices
// from JSON config.
type Item[T any] struct {
	Weight float64
	Value  T
}

// entry is one appended choice. bound is the cumulative upper bound: the
// sum of all weights appended up to and including this entry. Entries with
// none set carry "no selection" probability mass.
type entry[T any] struct {
	bound float64
	value T
	none  bool
}

// Selector picks a value from a set of weighted choices. Choices are
// appended once and the selector is then read-only; Select and PickWith
// are safe to call from multiple goroutines after construction completes.
//
// The zero value is an empty selector that always yields no value.
type Selector[T any] struct {
	entries []entry[T]
	total   float64
}

// New returns an empty selector, ready for chained With calls.
func New[T any]() *Selector[T] {
	return &Selector[T]{}
}

// FromItems builds a selector from weighted items, in order.
func FromItems[T any](items ...Item[T]) *Selector[T] {
	s := New[T]()
	for _, it := range items {
		s.With(it.Weight, it.Value)
	}
	return s
}

func (s *Selector[T]) push(weight float64, value T, none bool) {
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		panic(fmt.Sprintf("wrand: invalid weight %v", weight))
	}
	s.total += weight
	s.entries = append(s.entries, entry[T]{
		bound: s.total,
		value: value,
		none:  none,
	})
}

// With appends a choice and returns the receiver for chaining. The weight
// must be finite and non-negative; anything else panics, since accepting
// it would corrupt the cumulative bounds. A weight of 0 is legal and
// produces an entry that can never be picked.
func (s *Selector[T]) With(weight float64, value T) *Selector[T] {
	s.push(weight, value, false)
	return s
}

// WithNone appends probability mass for the "no selection" outcome.
func (s *Selector[T]) WithNone(weight float64) *Selector[T] {
	var zero T
	s.push(weight, zero, true)
	return s
}

// WithNoneUpTo tops up the "no selection" mass so that the total weight
// reaches the given value. Convenient when the concrete choices are
// already normalized:
//
//	sel := wrand.New[string]().
//		With(0.1, "A").
//		With(0.2, "B").
//		WithNoneUpTo(1.0)
//
// If the total weight is already at or above the given value, nothing is
// appended; negative weight is never produced.
func (s *Selector[T]) WithNoneUpTo(total float64) *Selector[T] {
	if math.IsNaN(total) || math.IsInf(total, 0) {
		panic(fmt.Sprintf("wrand: invalid total weight %v", total))
	}
	if total > s.total {
		return s.WithNone(total - s.total)
	}
	return s
}

// Select maps a draw to a choice: it returns the value of the first entry
// whose cumulative upper bound is strictly greater than the draw. The
// caller is expected to supply a draw uniform over [0, TotalWeight()).
//
// Comparisons are exact, with half-open interval semantics: a choice with
// bounds (a, b] owns draws in [a, b). Out-of-range draws (negative, NaN,
// or >= the total weight) and draws landing on "no selection" mass both
// yield (zero, false). An empty or all-zero-weight selector yields
// (zero, false) for every draw.
func (s *Selector[T]) Select(draw float64) (T, bool) {
	var zero T
	if s.total == 0 || draw < 0 || draw >= s.total {
		return zero, false
	}
	for _, e := range s.entries {
		if e.bound > draw {
			if e.none {
				return zero, false
			}
			return e.value, true
		}
	}
	return zero, false
}

// Pick selects using the global math/rand source. Seed it yourself, or use
// PickWith for a reproducible generator.
func (s *Selector[T]) Pick() (T, bool) {
	if s.total == 0 {
		var zero T
		return zero, false
	}
	return s.Select(rand.Float64() * s.total)
}

// PickWith selects using the given generator.
func (s *Selector[T]) PickWith(r *rand.Rand) (T, bool) {
	if s.total == 0 {
		var zero T
		return zero, false
	}
	return s.Select(r.Float64() * s.total)
}

// TotalWeight returns the sum of all appended weights, including "no
// selection" mass.
func (s *Selector[T]) TotalWeight() float64 {
	return s.total
}

// Len returns the number of appended entries, counting zero-weight and
// "no selection" entries.
func (s *Selector[T]) Len() int {
	return len(s.entries)
}

package models

import "time"

// Run is one completed round of selector trials.
type Run struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// The node that executed the run.
	Node string

	// Seed used for the worker generators.
	Seed int64

	Trials  int
	Workers int

	// TotalWeight of the selector the run exercised.
	TotalWeight float64

	// ChiSquare of observed outcome counts against expected ones.
	ChiSquare float64

	Outcomes []Outcome
}

// Outcome is the observed count of a single value within a run.
type Outcome struct {
	ID    uint `gorm:"primarykey"`
	RunID uint

	// Value that was selected. Empty for the "no selection" outcome.
	Value string

	// None marks the "no selection" outcome.
	None bool

	// Count of trials that produced this outcome.
	Count int64

	// Expected count for this outcome given the weights.
	Expected float64
}

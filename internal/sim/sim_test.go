package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petuhovskiy/wrand"
	"github.com/petuhovskiy/wrand/internal/bgjobs"
)

func Test_HistogramMerge(t *testing.T) {
	h1 := NewHistogram()
	h1.Add("a", true)
	h1.Add("a", true)
	h1.Add("", false)

	h2 := NewHistogram()
	h2.Add("a", true)
	h2.Add("b", true)

	h1.Merge(h2)

	assert.Equal(t, int64(3), h1.Values["a"])
	assert.Equal(t, int64(1), h1.Values["b"])
	assert.Equal(t, int64(1), h1.None)
	assert.Equal(t, int64(5), h1.Total())
}

func Test_Expected(t *testing.T) {
	items := []wrand.Item[string]{
		{Weight: 1, Value: "a"},
		{Weight: 3, Value: "b"},
	}

	// total weight 8 leaves half of the mass to "no selection"
	exp, noneExp := Expected(items, 8, 1000)

	assert.InDelta(t, 125, exp["a"], 1e-9)
	assert.InDelta(t, 375, exp["b"], 1e-9)
	assert.InDelta(t, 500, noneExp, 1e-9)
}

func Test_ExpectedMergesDuplicateValues(t *testing.T) {
	items := []wrand.Item[string]{
		{Weight: 1, Value: "a"},
		{Weight: 1, Value: "a"},
	}

	exp, noneExp := Expected(items, 2, 100)

	assert.InDelta(t, 100, exp["a"], 1e-9)
	assert.Zero(t, noneExp)
}

func Test_ExpectedZeroTotal(t *testing.T) {
	exp, noneExp := Expected(nil, 0, 1000)

	assert.Empty(t, exp)
	assert.Zero(t, noneExp)
}

func Test_ChiSquareExactMatch(t *testing.T) {
	items := []wrand.Item[string]{
		{Weight: 1, Value: "a"},
		{Weight: 3, Value: "b"},
	}

	h := NewHistogram()
	h.Values["a"] = 250
	h.Values["b"] = 750

	assert.InDelta(t, 0, ChiSquare(h, items, 4), 1e-9)
}

func Test_RunTrialsCountsAllTrials(t *testing.T) {
	sel := wrand.New[string]().With(1, "a")
	reg := bgjobs.NewRegister()

	// uneven split across workers must not lose trials
	h := RunTrials(reg, sel, 1001, 3, 1)
	assert.Equal(t, int64(1001), h.Total())
	assert.Equal(t, int64(1001), h.Values["a"])
}

func Test_RunTrialsReproducible(t *testing.T) {
	sel := wrand.New[string]().
		With(1, "a").
		With(2, "b").
		WithNone(1)
	reg := bgjobs.NewRegister()

	h1 := RunTrials(reg, sel, 10000, 4, 42)
	h2 := RunTrials(reg, sel, 10000, 4, 42)

	assert.Equal(t, h1.Values, h2.Values)
	assert.Equal(t, h1.None, h2.None)
}

func Test_RunTrialsDistribution(t *testing.T) {
	items := []wrand.Item[string]{
		{Weight: 1, Value: "a"},
		{Weight: 3, Value: "b"},
	}
	sel := wrand.FromItems(items...).WithNoneUpTo(8)
	reg := bgjobs.NewRegister()

	const trials = 100000
	h := RunTrials(reg, sel, trials, 4, 1)
	require.Equal(t, int64(trials), h.Total())

	assert.InDelta(t, 0.125, float64(h.Values["a"])/trials, 0.01)
	assert.InDelta(t, 0.375, float64(h.Values["b"])/trials, 0.01)
	assert.InDelta(t, 0.5, float64(h.None)/trials, 0.01)

	chi := ChiSquare(h, items, sel.TotalWeight())
	assert.Less(t, chi, 20.0)
}

func Test_ParsePeriod(t *testing.T) {
	p, err := ParsePeriod("")
	assert.NoError(t, err)
	assert.Nil(t, p)

	p, err = ParsePeriod("random(5,10)")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, uint(5), p.min)
	assert.Equal(t, uint(10), p.max)

	p, err = ParsePeriod("random(7,7)")
	require.NoError(t, err)
	assert.Equal(t, uint(7), p.min)
	assert.Equal(t, uint(7), p.max)

	_, err = ParsePeriod("random(10,5)")
	assert.Error(t, err)

	_, err = ParsePeriod("every 5s")
	assert.Error(t, err)
}

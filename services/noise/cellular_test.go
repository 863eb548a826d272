package noise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelforge/worldgen/internal/testutil"
	"github.com/voxelforge/worldgen/services/seed"
)

func TestNewCellularField_BatchSize(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name    string
		density float64
	}{
		{name: "sparse", density: 0.001},
		{name: "moderate", density: 0.005},
		{name: "dense", density: 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewCellularField("test", "biome", tt.density)
			require.NotNil(t, f)

			expected := int(math.Ceil(math.Sqrt(ExpectedPointsPerBatch/tt.density)/2)) * 2
			assert.Equal(t, expected, f.BatchSize())
			assert.Equal(t, 0, f.BatchSize()%2, "batch size must be even")
			assert.Greater(t, f.BatchSize(), 0)
		})
	}
}

func TestCellularField_CellPointsIdempotent(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	f := NewCellularField("test", "biome", 0.005)

	cells := [][2]int{{0, 0}, {-1, 3}, {7, -2}, {0, -1}}
	for _, c := range cells {
		first := f.CellPoints(c[0], c[1])
		second := f.CellPoints(c[0], c[1])
		assert.Equal(t, first, second, "cell (%d,%d) should yield identical point sets", c[0], c[1])
	}
}

func TestCellularField_CellPointsPureFunctionOfKey(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	// Two independent field instances must generate the same points for the
	// same cell, regardless of which cells were queried before.
	a := NewCellularField("test", "biome", 0.005)
	b := NewCellularField("test", "biome", 0.005)

	// Warm a with unrelated cells first to shift any hidden state.
	a.CellPoints(10, 10)
	a.CellPoints(-5, 2)

	assert.Equal(t, a.CellPoints(3, -4), b.CellPoints(3, -4))
	assert.Equal(t, a.CellPoints(0, 0), b.CellPoints(0, 0))
}

func TestCellularField_PointsNearCellCorner(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	f := NewCellularField("test", "biome", 0.005)
	half := f.BatchSize() / 2

	for cx := -2; cx <= 2; cx++ {
		for cy := -2; cy <= 2; cy++ {
			for _, p := range f.CellPoints(cx, cy) {
				assert.LessOrEqual(t, abs(p.X-cx*f.BatchSize()), half,
					"point x offset must stay within half a batch of the corner")
				assert.LessOrEqual(t, abs(p.Y-cy*f.BatchSize()), half,
					"point y offset must stay within half a batch of the corner")
			}
		}
	}
}

func TestCellularField_ValueNonNegative(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	f := NewCellularField("test", "biome", 0.005)
	for x := -100; x <= 100; x += 13 {
		for y := -100; y <= 100; y += 17 {
			assert.GreaterOrEqual(t, f.Value(x, y), 0.0, "at (%d,%d)", x, y)
		}
	}
}

func TestCellularField_PointIndexStableNearPoint(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	f := NewCellularField("test", "biome", 0.005)

	// Queries right on top of a feature point and one step away from it must
	// resolve to the same identity (the point is its own nearest neighbor,
	// and a unit step cannot flip it unless another point is adjacent).
	pts := f.CellPoints(0, 0)
	require.NotEmpty(t, pts, "Poisson(10) yielding zero points for this seed would be astronomically unlikely")

	p := pts[0]
	id := f.PointIndex(p.X, p.Y)
	assert.Equal(t, id, f.PointIndex(p.X, p.Y), "repeated queries must agree")

	// The identity must be a pure function of the coordinates.
	other := NewCellularField("test", "biome", 0.005)
	assert.Equal(t, id, other.PointIndex(p.X, p.Y))
}

func TestCellularField_DeterministicAcrossInstances(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	a := NewCellularField("test", "biome", 0.005)
	b := NewCellularField("test", "biome", 0.005)

	for x := -60; x <= 60; x += 9 {
		for y := -60; y <= 60; y += 7 {
			aid, av := a.Closest(x, y)
			bid, bv := b.Closest(x, y)
			assert.Equal(t, aid, bid, "identity at (%d,%d)", x, y)
			assert.Equal(t, av, bv, "distance at (%d,%d)", x, y)
		}
	}
}

func TestCellularField_QueryDoesNotMutateCachedCells(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	f := NewCellularField("test", "biome", 0.005)

	snapshot := append([]Point(nil), f.CellPoints(0, 0)...)

	// Sweep a wide area touching many other cells.
	for x := -300; x <= 300; x += 21 {
		for y := -300; y <= 300; y += 19 {
			f.Closest(x, y)
		}
	}

	assert.Equal(t, snapshot, f.CellPoints(0, 0), "previously cached cells must not change")
}

func TestPoissonCount_EmpiricalMean(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()
	testutil.SkipIfShort(t, "statistical sampling test")

	const trials = 20000
	var sum, sumSq float64
	for i := 0; i < trials; i++ {
		st := seed.Derive("poisson-test", i)
		k := float64(poissonCount(st, ExpectedPointsPerBatch))
		sum += k
		sumSq += k * k
	}

	mean := sum / trials
	variance := sumSq/trials - mean*mean

	// Poisson(10): mean and variance both 10. Allow generous slack for a
	// finite sample.
	assert.InDelta(t, 10.0, mean, 0.2, "empirical mean should approach the Poisson mean")
	assert.InDelta(t, 10.0, variance, 0.8, "empirical variance should approach the Poisson mean")
}

func TestCellularField_DegenerateNeighborhoodGuard(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	f := NewCellularField("test", "biome", 0.005)

	// Force degenerate neighborhoods directly: the distance computation must
	// return the sentinel rather than divide by zero.
	t.Run("empty neighborhood", func(t *testing.T) {
		f.mu.Lock()
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				f.cells[cellKey{100 + dx, 100 + dy}] = nil
			}
		}
		f.mu.Unlock()

		id, v := f.Closest(100*f.BatchSize(), 100*f.BatchSize())
		assert.Equal(t, uint64(0), id)
		assert.Equal(t, DegenerateDistance, v)
	})

	t.Run("single point neighborhood", func(t *testing.T) {
		f.mu.Lock()
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				f.cells[cellKey{200 + dx, 200 + dy}] = nil
			}
		}
		only := Point{X: 200 * f.BatchSize(), Y: 200 * f.BatchSize()}
		f.cells[cellKey{200, 200}] = []Point{only}
		f.mu.Unlock()

		id, v := f.Closest(only.X+1, only.Y)
		assert.Equal(t, pointIdentity(only), id)
		assert.Equal(t, DegenerateDistance, v)
		assert.False(t, math.IsNaN(v))
		assert.False(t, math.IsInf(v, 0))
	})
}

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		name     string
		a, b     int
		expected int
	}{
		{name: "exact positive", a: 64, b: 32, expected: 2},
		{name: "positive remainder", a: 33, b: 32, expected: 1},
		{name: "zero", a: 0, b: 32, expected: 0},
		{name: "small negative", a: -1, b: 32, expected: -1},
		{name: "exact negative", a: -32, b: 32, expected: -1},
		{name: "negative remainder", a: -33, b: 32, expected: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, floorDiv(tt.a, tt.b))
		})
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package noise

import (
	"math"
	"sync"

	"github.com/voxelforge/worldgen/services/seed"
)

const (
	// ExpectedPointsPerBatch is the Poisson mean for the number of feature
	// points generated per batch cell.
	ExpectedPointsPerBatch = 10

	// maxPoissonCount caps inverse-CDF sampling; Poisson(10) mass beyond 64
	// is far below float64 resolution.
	maxPoissonCount = 64
)

// DegenerateDistance is the sentinel returned when a query neighborhood holds
// fewer than two points and the normalized distance is undefined.
const DegenerateDistance = 1e9

// Point is a feature point on the integer plane.
type Point struct {
	X, Y int
}

type cellKey struct {
	X, Y int
}

// CellularField answers nearest-point identity and a distance-based scalar
// for any integer (x, y). The plane is partitioned into square batch cells;
// each cell's points are generated lazily from a stream keyed purely by
// (seed, cell coordinates) and cached, so recomputation is idempotent and the
// cache can be shared across goroutines behind its lock.
type CellularField struct {
	worldSeed string
	label     string
	density   float64
	batchSize int

	mu    sync.RWMutex
	cells map[cellKey][]Point
}

// NewCellularField creates a field with the given expected point density
// (points per unit area). The batch size is forced even so cell boundaries
// align identically for positive and negative coordinates.
func NewCellularField(worldSeed, label string, density float64) *CellularField {
	batch := int(math.Ceil(math.Sqrt(float64(ExpectedPointsPerBatch)/density)/2)) * 2
	return &CellularField{
		worldSeed: worldSeed,
		label:     label,
		density:   density,
		batchSize: batch,
		cells:     make(map[cellKey][]Point),
	}
}

// BatchSize returns the side length of one batch cell.
func (f *CellularField) BatchSize() int {
	return f.batchSize
}

// CellPoints returns the feature points of the batch cell (cx, cy),
// generating and caching them on first access. The returned slice is shared;
// callers must not modify it.
func (f *CellularField) CellPoints(cx, cy int) []Point {
	key := cellKey{cx, cy}

	f.mu.RLock()
	pts, ok := f.cells[key]
	f.mu.RUnlock()
	if ok {
		return pts
	}

	pts = f.generateCell(cx, cy)

	f.mu.Lock()
	// Another goroutine may have raced us here; both computed the same
	// points, so either entry is valid.
	if cached, ok := f.cells[key]; ok {
		pts = cached
	} else {
		f.cells[key] = pts
	}
	f.mu.Unlock()
	return pts
}

// generateCell derives the cell's stream and draws its points. Pure function
// of (worldSeed, label, cx, cy).
func (f *CellularField) generateCell(cx, cy int) []Point {
	st := seed.Derive(f.worldSeed, "cell", f.label, cx, cy)

	count := poissonCount(st, ExpectedPointsPerBatch)
	half := f.batchSize / 2

	pts := make([]Point, 0, count)
	for i := 0; i < count; i++ {
		ox := st.IntBetween(-half, half)
		oy := st.IntBetween(-half, half)
		pts = append(pts, Point{
			X: cx*f.batchSize + ox,
			Y: cy*f.batchSize + oy,
		})
	}
	return pts
}

// poissonCount draws from Poisson(mean) by inverse-CDF sampling: the uniform
// draw is scaled by e^mean so the cumulative sum of mean^i/i! terms can be
// compared without multiplying every term by e^-mean.
func poissonCount(st *seed.Stream, mean float64) int {
	u := st.Float64() * math.Exp(mean)

	term := 1.0 // mean^0 / 0!
	cum := term
	k := 0
	for cum <= u && k < maxPoissonCount {
		k++
		term *= mean / float64(k)
		cum += term
	}
	return k
}

// Closest returns the identity of the nearest feature point to (x, y) and
// the normalized distance minSqDist/sqrt(maxSqDist), where maxSqDist is the
// maximum pairwise squared distance among the 3x3-cell neighborhood's points.
// Neighborhoods with fewer than two points yield DegenerateDistance.
func (f *CellularField) Closest(x, y int) (uint64, float64) {
	cx := floorDiv(x, f.batchSize)
	cy := floorDiv(y, f.batchSize)

	var pts []Point
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			pts = append(pts, f.CellPoints(cx+dx, cy+dy)...)
		}
	}
	if len(pts) == 0 {
		return 0, DegenerateDistance
	}

	minSq := math.MaxFloat64
	var nearest Point
	for _, p := range pts {
		d := sqDist(p.X, p.Y, x, y)
		if d < minSq {
			minSq = d
			nearest = p
		}
	}

	if len(pts) < 2 {
		return pointIdentity(nearest), DegenerateDistance
	}

	var maxSq float64
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			d := sqDist(pts[i].X, pts[i].Y, pts[j].X, pts[j].Y)
			if d > maxSq {
				maxSq = d
			}
		}
	}
	if maxSq == 0 {
		return pointIdentity(nearest), DegenerateDistance
	}

	return pointIdentity(nearest), minSq / math.Sqrt(maxSq)
}

// Value returns the normalized nearest-point distance at (x, y).
func (f *CellularField) Value(x, y int) float64 {
	_, v := f.Closest(x, y)
	return v
}

// PointIndex returns the nearest-point identity at (x, y).
func (f *CellularField) PointIndex(x, y int) uint64 {
	id, _ := f.Closest(x, y)
	return id
}

// pointIdentity hashes a point's coordinates into a well-mixed identity.
// Pure function of the coordinates, so it is stable across cache rebuilds.
func pointIdentity(p Point) uint64 {
	h := uint64(int64(p.X))*0x9e3779b97f4a7c15 ^ uint64(int64(p.Y))*0xc2b2ae3d27d4eb4f
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return h
}

func sqDist(ax, ay, bx, by int) float64 {
	dx := float64(ax - bx)
	dy := float64(ay - by)
	return dx*dx + dy*dy
}

// floorDiv divides rounding toward negative infinity, keeping cell indexing
// consistent on both sides of the origin.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

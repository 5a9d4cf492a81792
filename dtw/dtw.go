// SPDX-License-Identifier: EPL-2.0

// Package dtw aligns the time axes of two spectrograms with dynamic time
// warping.
//
// The local cost between step i of A and step j of B is the sum of absolute
// channel differences of their rows. The cumulative cost is
//
//	D[i][j] = cost(i, j) + min(D[i-1][j], D[i][j-1], D[i-1][j-1])
//
// with D[0][0] = cost(0, 0) and the borders accumulated along their edge.
// The optimal path starts at (0, 0), ends at (len(A)-1, len(B)-1) and never
// moves backwards on either axis. Time and memory are O(len(A)*len(B)).
// With a Sakoe-Chiba band of width w only the cells within w steps of the
// diagonal are computed and stored, so both drop to O(len(A)*w).
package dtw

import (
	"fmt"
	"math"
	"slices"

	"github.com/ik5/zimtohrli/spectrogram"
)

// Point pairs step A of the first spectrogram with step B of the second.
type Point struct {
	A, B int
}

// Path is a monotone sequence of aligned steps.
type Path []Point

// Options tunes the alignment.
type Options struct {
	// Band limits how far, in steps, the path may stray from the straight
	// line joining both ends. Zero means unconstrained. The band is widened
	// when needed so the end point stays reachable.
	Band int
}

// Align finds the lowest-cost path between the steps of a and b. If either
// spectrogram has no steps the path is empty.
func Align(a, b *spectrogram.Spectrogram, opts Options) (Path, float64, error) {
	if a.Dims() != b.Dims() {
		return nil, 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, a.Dims(), b.Dims())
	}
	if opts.Band < 0 {
		return nil, 0, fmt.Errorf("%w: %d", ErrBand, opts.Band)
	}

	ta, tb := a.Steps(), b.Steps()
	if ta == 0 || tb == 0 {
		return nil, 0, nil
	}

	g := newGrid(ta, tb, opts.Band)
	for i := range ta {
		rowA := a.Row(i)
		lo, hi := g.lo[i], g.hi[i]
		cells := g.row(i)
		for j := lo; j <= hi; j++ {
			c := cost(rowA, b.Row(j))
			switch {
			case i == 0 && j == 0:
				cells[0] = c
			case i == 0:
				cells[j-lo] = c + cells[j-lo-1]
			case j == 0:
				cells[0] = c + g.at(i-1, 0)
			default:
				cells[j-lo] = c + min(g.at(i-1, j-1), g.at(i-1, j), g.at(i, j-1))
			}
		}
	}

	return g.backtrack(), g.at(ta-1, tb-1), nil
}

func cost(x, y []float32) float64 {
	var sum float64
	for c := range x {
		sum += math.Abs(float64(x[c]) - float64(y[c]))
	}
	return sum
}

// grid holds the cumulative costs of the cells inside the band. Row i
// covers columns lo[i] through hi[i] and starts at cells[offset[i]].
type grid struct {
	lo, hi []int
	offset []int
	cells  []float64
}

func newGrid(ta, tb, band int) *grid {
	g := &grid{
		lo:     make([]int, ta),
		hi:     make([]int, ta),
		offset: make([]int, ta+1),
	}

	for i := range ta {
		g.lo[i], g.hi[i] = bandRange(i, ta, tb, band)
		g.offset[i+1] = g.offset[i] + g.hi[i] - g.lo[i] + 1
	}
	g.cells = make([]float64, g.offset[ta])
	return g
}

func (g *grid) row(i int) []float64 {
	return g.cells[g.offset[i]:g.offset[i+1]]
}

// at returns the cumulative cost of (i, j), or +Inf outside the band.
func (g *grid) at(i, j int) float64 {
	if j < g.lo[i] || j > g.hi[i] {
		return math.Inf(1)
	}
	return g.cells[g.offset[i]+j-g.lo[i]]
}

// bandRange returns the first and last column of row i the path may visit.
// Both ends of the grid are always inside.
func bandRange(i, ta, tb, band int) (int, int) {
	if band == 0 || ta == 1 || tb == 1 {
		return 0, tb - 1
	}

	slope := float64(tb-1) / float64(ta-1)
	w := float64(band)
	w = max(w, math.Ceil(slope)+1, math.Ceil(1/slope)+1)

	center := float64(i) * slope
	lo := max(int(math.Ceil(center-w)), 0)
	hi := min(int(math.Floor(center+w)), tb-1)
	return lo, hi
}

// backtrack walks from the end to (0, 0), preferring the diagonal on ties.
func (g *grid) backtrack() Path {
	ta, tb := len(g.lo), g.hi[len(g.hi)-1]+1
	path := make(Path, 0, ta+tb)
	i, j := ta-1, tb-1
	path = append(path, Point{A: i, B: j})

	for i > 0 || j > 0 {
		switch {
		case i == 0:
			j--
		case j == 0:
			i--
		default:
			diag := g.at(i-1, j-1)
			up := g.at(i-1, j)
			left := g.at(i, j-1)

			switch {
			case diag <= up && diag <= left:
				i, j = i-1, j-1
			case up <= left:
				i--
			default:
				j--
			}
		}
		path = append(path, Point{A: i, B: j})
	}

	slices.Reverse(path)
	return path
}

// Valid reports whether p starts at (0, 0), ends at (ta-1, tb-1) and
// advances by at most one step on each axis per point without going back.
func (p Path) Valid(ta, tb int) bool {
	if len(p) == 0 {
		return ta == 0 || tb == 0
	}
	if p[0] != (Point{}) || p[len(p)-1] != (Point{A: ta - 1, B: tb - 1}) {
		return false
	}

	for k := 1; k < len(p); k++ {
		da, db := p[k].A-p[k-1].A, p[k].B-p[k-1].B
		if da < 0 || db < 0 || da > 1 || db > 1 || da+db == 0 {
			return false
		}
	}
	return true
}

// Apply builds the aligned pair: row k of each result is the row of a and b
// that the path pairs at position k. Both results have len(p) steps.
func (p Path) Apply(a, b *spectrogram.Spectrogram) (*spectrogram.Spectrogram, *spectrogram.Spectrogram, error) {
	if a.Dims() != b.Dims() {
		return nil, nil, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, a.Dims(), b.Dims())
	}

	dims := a.Dims()
	va := make([]float32, len(p)*dims)
	vb := make([]float32, len(p)*dims)
	for k, pt := range p {
		copy(va[k*dims:(k+1)*dims], a.Row(pt.A))
		copy(vb[k*dims:(k+1)*dims], b.Row(pt.B))
	}

	alignedA, err := spectrogram.FromValues(len(p), dims, va)
	if err != nil {
		return nil, nil, fmt.Errorf("aligning first spectrogram: %w", err)
	}
	alignedB, err := spectrogram.FromValues(len(p), dims, vb)
	if err != nil {
		return nil, nil, fmt.Errorf("aligning second spectrogram: %w", err)
	}

	return alignedA, alignedB, nil
}

// Package gridding interpolates scattered (x, y, z) samples onto a
// regular grid. It backs the upstream workflow of turning survey points
// into an observation relief or a comparison raster; the forward solver
// itself only ever consumes the resulting Grid2D.
package gridding

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/karoo-geo/voxfield/internal/grid"
)

type Point struct {
	X, Y, Z float64
}

type Method string

const (
	IDW     Method = "idw"
	Kriging Method = "kriging"
)

// Options tunes the interpolation. Zero values pick defaults: IDW power
// 2, variogram sill from the sample variance, range from the bounding
// box diagonal.
type Options struct {
	Method Method
	Power  float64 // IDW distance exponent

	// Exponential variogram parameters for kriging.
	Range  float64
	Sill   float64
	Nugget float64
}

// Grid interpolates the samples onto a regular grid of the given cell
// size covering their bounding box.
func Grid(name string, points []Point, cellSize float64, opts Options) (*grid.Grid2D, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("need at least 3 points to grid, got %d", len(points))
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("cell size must be positive, got %g", cellSize)
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	cols := int(math.Ceil((maxX-minX)/cellSize)) + 1
	rows := int(math.Ceil((maxY-minY)/cellSize)) + 1
	out := grid.New(name, "", cols, rows, minX, maxY, cellSize)

	switch opts.Method {
	case Kriging:
		return out, krige(out, points, opts)
	case IDW, "":
		idw(out, points, opts.Power)
		return out, nil
	default:
		return nil, fmt.Errorf("unknown gridding method %q", opts.Method)
	}
}

func idw(out *grid.Grid2D, points []Point, power float64) {
	if power <= 0 {
		power = 2
	}
	for r := 0; r < out.Rows; r++ {
		for c := 0; c < out.Cols; c++ {
			x, y := out.CellXY(c, r)

			num, den := 0.0, 0.0
			exact := false
			for _, p := range points {
				d := math.Hypot(p.X-x, p.Y-y)
				if d < 1e-9 {
					out.Set(c, r, p.Z)
					exact = true
					break
				}
				w := 1 / math.Pow(d, power)
				num += w * p.Z
				den += w
			}
			if !exact {
				out.Set(c, r, num/den)
			}
		}
	}
}

// krige performs ordinary kriging with an exponential variogram. The
// left-hand system depends only on the samples, so it is factorized
// once and reused for every cell.
func krige(out *grid.Grid2D, points []Point, opts Options) error {
	n := len(points)
	rng, sill, nugget := variogramDefaults(points, opts)

	gamma := func(h float64) float64 {
		if h == 0 {
			return 0
		}
		return nugget + sill*(1-math.Exp(-h/rng))
	}

	// Ordinary kriging system: variogram matrix bordered by the
	// unbiasedness constraint.
	a := mat.NewDense(n+1, n+1, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			h := math.Hypot(points[i].X-points[j].X, points[i].Y-points[j].Y)
			a.Set(i, j, gamma(h))
		}
		a.Set(i, n, 1)
		a.Set(n, i, 1)
	}

	var lu mat.LU
	lu.Factorize(a)

	rhs := mat.NewVecDense(n+1, nil)
	w := mat.NewVecDense(n+1, nil)

	for r := 0; r < out.Rows; r++ {
		for c := 0; c < out.Cols; c++ {
			x, y := out.CellXY(c, r)
			for i := 0; i < n; i++ {
				rhs.SetVec(i, gamma(math.Hypot(points[i].X-x, points[i].Y-y)))
			}
			rhs.SetVec(n, 1)

			if err := lu.SolveVecTo(w, false, rhs); err != nil {
				return fmt.Errorf("kriging system singular: %w", err)
			}

			v := 0.0
			for i := 0; i < n; i++ {
				v += w.AtVec(i) * points[i].Z
			}
			out.Set(c, r, v)
		}
	}
	return nil
}

func variogramDefaults(points []Point, opts Options) (rng, sill, nugget float64) {
	rng, sill, nugget = opts.Range, opts.Sill, opts.Nugget

	if rng <= 0 {
		minX, maxX := points[0].X, points[0].X
		minY, maxY := points[0].Y, points[0].Y
		for _, p := range points[1:] {
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
			minY = math.Min(minY, p.Y)
			maxY = math.Max(maxY, p.Y)
		}
		rng = math.Hypot(maxX-minX, maxY-minY) / 4
		if rng == 0 {
			rng = 1
		}
	}
	if sill <= 0 {
		mean := 0.0
		for _, p := range points {
			mean += p.Z
		}
		mean /= float64(len(points))
		for _, p := range points {
			sill += (p.Z - mean) * (p.Z - mean)
		}
		sill /= float64(len(points))
		if sill == 0 {
			sill = 1
		}
	}
	return rng, sill, nugget
}

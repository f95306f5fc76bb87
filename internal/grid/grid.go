// Package grid provides the 2D rasters consumed and produced by the
// forward solver: result grids with a geotransform, and the observation
// surface the fields are evaluated on.
package grid

import (
	"fmt"
	"math"
)

// DefaultNoData marks masked-out points in exported rasters.
const DefaultNoData = -9999.0

// Grid2D is a row-major raster with spatial reference. Row 0 is the
// northern edge; values carry the unit named in Unit (mGal, nT, m).
type Grid2D struct {
	Name     string
	Unit     string
	Cols     int
	Rows     int
	TopLeftX float64
	TopLeftY float64
	CellSize float64
	NoData   float64
	Data     []float64
}

func New(name, unit string, cols, rows int, tlx, tly, cellSize float64) *Grid2D {
	return &Grid2D{
		Name: name, Unit: unit,
		Cols: cols, Rows: rows,
		TopLeftX: tlx, TopLeftY: tly,
		CellSize: cellSize,
		NoData:   DefaultNoData,
		Data:     make([]float64, cols*rows),
	}
}

func (g *Grid2D) At(col, row int) float64     { return g.Data[row*g.Cols+col] }
func (g *Grid2D) Set(col, row int, v float64) { g.Data[row*g.Cols+col] = v }
func (g *Grid2D) Add(col, row int, v float64) { g.Data[row*g.Cols+col] += v }

// Row returns one west-to-east row of values, aliasing the grid data.
func (g *Grid2D) Row(row int) []float64 {
	return g.Data[row*g.Cols : (row+1)*g.Cols]
}

// CellXY returns the world coordinates of a cell center.
func (g *Grid2D) CellXY(col, row int) (x, y float64) {
	x = g.TopLeftX + (float64(col)+0.5)*g.CellSize
	y = g.TopLeftY - (float64(row)+0.5)*g.CellSize
	return x, y
}

func (g *Grid2D) Fill(v float64) {
	for i := range g.Data {
		g.Data[i] = v
	}
}

func (g *Grid2D) Clone() *Grid2D {
	c := *g
	c.Data = make([]float64, len(g.Data))
	copy(c.Data, g.Data)
	return &c
}

// Peak returns the cell with the largest absolute value, skipping
// no-data cells.
func (g *Grid2D) Peak() (col, row int, val float64) {
	best := math.Inf(-1)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			v := g.At(c, r)
			if v == g.NoData {
				continue
			}
			if a := math.Abs(v); a > best {
				best = a
				col, row, val = c, r, v
			}
		}
	}
	return col, row, val
}

// AddGrid accumulates another grid elementwise. Shapes must match.
func (g *Grid2D) AddGrid(o *Grid2D) error {
	if g.Cols != o.Cols || g.Rows != o.Rows {
		return fmt.Errorf("grid shape mismatch: %dx%d vs %dx%d", g.Cols, g.Rows, o.Cols, o.Rows)
	}
	for i, v := range o.Data {
		g.Data[i] += v
	}
	return nil
}

// MinMax returns the value range, skipping no-data cells.
func (g *Grid2D) MinMax() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range g.Data {
		if v == g.NoData {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

package forward

import (
	"context"

	"github.com/karoo-geo/voxfield/internal/grid"
	"github.com/karoo-geo/voxfield/internal/kernel"
	"github.com/karoo-geo/voxfield/internal/model"
)

// responseCache exploits the regular grid: when the observation surface
// is the model's own cell-center grid at constant height, a prism's
// response depends only on its (column, row) offset from the point and
// its layer. Gravity is cached once for unit density and scaled;
// magnetics needs one table per lithology because remanence changes the
// direction, not just the magnitude.
//
// Table cost is O(layers * (2*cols-1) * (2*rows-1)) kernel calls,
// roughly the cost of a handful of observation points, after which each
// voxel/point pair is a single multiply-add.
type responseCache struct {
	cols, rows int
	ocols      int // 2*cols - 1
	orows      int // 2*rows - 1

	grav []float64            // unit-density vertical gravity, nil if not requested
	mag  map[uint8][]float64  // total field per lithology, nil if not requested
}

func (c *responseCache) index(dCol, dRow, layer int) int {
	return (layer*c.orows+dRow+c.rows-1)*c.ocols + dCol + c.cols - 1
}

func buildCache(ctx context.Context, m *model.Model, height float64, mode Mode, mags []kernel.Magnetization) (*responseCache, error) {
	c := &responseCache{
		cols: m.Cols, rows: m.Rows,
		ocols: 2*m.Cols - 1, orows: 2*m.Rows - 1,
	}
	size := m.Layers * c.orows * c.ocols

	if mode.wantGravity() {
		c.grav = make([]float64, size)
	}
	if mode.wantMagnetic() {
		c.mag = make(map[uint8][]float64)
		for i := 1; i < len(mags); i++ {
			if !mags[i].IsZero() {
				c.mag[uint8(i)] = make([]float64, size)
			}
		}
	}

	dxy, dz := m.DXY, m.DZ
	for layer := 0; layer < m.Layers; layer++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		dz1 := height + float64(layer)*dz
		dz2 := dz1 + dz

		for dr := -(m.Rows - 1); dr <= m.Rows-1; dr++ {
			// dr is observation row minus voxel row; rows run south, so
			// a positive dr puts the voxel north of the point.
			dy1 := (float64(dr) - 0.5) * dxy
			dy2 := dy1 + dxy

			for dc := -(m.Cols - 1); dc <= m.Cols-1; dc++ {
				dx1 := (float64(dc) - 0.5) * dxy
				dx2 := dx1 + dxy

				i := c.index(dc, dr, layer)
				if c.grav != nil {
					c.grav[i] = kernel.Gravity(dx1, dx2, dy1, dy2, dz1, dz2, 1.0)
				}
				for lith, table := range c.mag {
					table[i] = kernel.TotalField(dx1, dx2, dy1, dy2, dz1, dz2, mags[lith])
				}
			}
		}
	}
	return c, nil
}

// accumRow sums cached responses of every voxel into one output row.
func (c *responseCache) accumRow(obs *grid.Observation, row int, voxels []voxel, densities []float64, res *Result) {
	for col := 0; col < obs.Cols; col++ {
		var gv, mv float64
		for i := range voxels {
			v := &voxels[i]
			dc := v.col - col
			dr := row - v.row
			idx := c.index(dc, dr, v.lay)

			if c.grav != nil {
				gv += densities[v.lith] * c.grav[idx]
			}
			if c.mag != nil {
				if table, ok := c.mag[v.lith]; ok {
					mv += table[idx]
				}
			}
		}
		if res.Gravity != nil {
			res.Gravity.Set(col, row, gv)
		}
		if res.Magnetic != nil {
			res.Magnetic.Set(col, row, mv)
		}
	}
}

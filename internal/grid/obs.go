package grid

import (
	"fmt"

	"github.com/karoo-geo/voxfield/internal/model"
)

// Observation is the regular surface the fields are evaluated on: the
// horizontal centers of a model's top layer at some height above the
// model top. Height belongs here, not on the model, so re-solving at a
// different sensor height needs no model rebuild.
type Observation struct {
	Cols, Rows int
	TopLeftX   float64
	TopLeftY   float64
	CellSize   float64

	modelTopZ float64
	height    float64
	relief    *Grid2D
}

// FromModel derives the observation surface from a model's horizontal
// extent at the given height above the model top.
func FromModel(m *model.Model, height float64) *Observation {
	return &Observation{
		Cols: m.Cols, Rows: m.Rows,
		TopLeftX: m.TopLeftX, TopLeftY: m.TopLeftY,
		CellSize:  m.DXY,
		modelTopZ: m.TopLeftZ,
		height:    height,
	}
}

// WithHeight returns a copy observing at a different constant height.
func (o *Observation) WithHeight(height float64) *Observation {
	c := *o
	c.height = height
	c.relief = nil
	return &c
}

// WithRelief returns a copy observing on a per-point elevation surface
// (world z, e.g. a gridded DTM). The relief shape must match.
func (o *Observation) WithRelief(relief *Grid2D) (*Observation, error) {
	if relief.Cols != o.Cols || relief.Rows != o.Rows {
		return nil, fmt.Errorf("relief shape %dx%d does not match observation %dx%d",
			relief.Cols, relief.Rows, o.Cols, o.Rows)
	}
	c := *o
	c.relief = relief
	return &c, nil
}

// Height returns the constant observation height above the model top.
func (o *Observation) Height() float64 { return o.height }

// AlignedTo reports whether the surface is the model's own top-layer
// center grid at constant height, which lets a solver reuse prism
// responses across relative offsets.
func (o *Observation) AlignedTo(m *model.Model) bool {
	return o.relief == nil &&
		o.Cols == m.Cols && o.Rows == m.Rows &&
		o.CellSize == m.DXY &&
		o.TopLeftX == m.TopLeftX && o.TopLeftY == m.TopLeftY &&
		o.modelTopZ == m.TopLeftZ
}

// NumPoints returns the number of observation points.
func (o *Observation) NumPoints() int { return o.Cols * o.Rows }

// Point returns the world coordinates of one observation point:
// x east, y north, z elevation.
func (o *Observation) Point(col, row int) (x, y, z float64) {
	x = o.TopLeftX + (float64(col)+0.5)*o.CellSize
	y = o.TopLeftY - (float64(row)+0.5)*o.CellSize
	if o.relief != nil {
		z = o.relief.At(col, row)
	} else {
		z = o.modelTopZ + o.height
	}
	return x, y, z
}

// NewResult allocates a result grid matching this surface.
func (o *Observation) NewResult(name, unit string) *Grid2D {
	return New(name, unit, o.Cols, o.Rows, o.TopLeftX, o.TopLeftY, o.CellSize)
}

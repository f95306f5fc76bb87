// Package model holds the voxel lithology grid and its property table.
// The grid is a plain index array: 0 is air, any other value refers to
// an entry of the lithology table. Coordinates are map units with x
// east, y north and z up; row 0 sits at the northern (top-left) edge
// and layer 0 at the model top.
package model

import "fmt"

// Air is the lithology index of empty cells.
const Air uint8 = 0

type Model struct {
	Cols, Rows, Layers int

	// Horizontal and vertical cell size in meters.
	DXY, DZ float64

	// World coordinates of the top-left-top corner.
	TopLeftX, TopLeftY, TopLeftZ float64

	// Default observation height above the model top.
	MHT float64

	// Inducing field: inclination and declination in degrees,
	// strength in nT.
	FieldInc, FieldDec, FieldNT float64

	liths []Lithology
	grid  []uint8
}

// DefaultFieldNT is used when a caller leaves the inducing-field
// strength unset.
const DefaultFieldNT = 30000.0

// QuickModel builds an all-air model of the requested shape with a
// populated lithology table. Table entries keep the order of liths:
// index i+1 in the grid refers to liths[i].
func QuickModel(cols, rows, layers int, dxy, dz, tlx, tly, tlz, mht, finc, fdec float64, liths []Lithology) (*Model, error) {
	if cols <= 0 || rows <= 0 || layers <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%dx%d", cols, rows, layers)
	}
	if dxy <= 0 || dz <= 0 {
		return nil, fmt.Errorf("cell sizes must be positive, got dxy=%g dz=%g", dxy, dz)
	}
	if len(liths) > 255 {
		return nil, fmt.Errorf("at most 255 lithologies supported, got %d", len(liths))
	}

	table := make([]Lithology, len(liths))
	for i, l := range liths {
		if err := l.validate(); err != nil {
			return nil, err
		}
		table[i] = l.canonical()
	}

	return &Model{
		Cols: cols, Rows: rows, Layers: layers,
		DXY: dxy, DZ: dz,
		TopLeftX: tlx, TopLeftY: tly, TopLeftZ: tlz,
		MHT:      mht,
		FieldInc: finc, FieldDec: fdec, FieldNT: DefaultFieldNT,
		liths: table,
		grid:  make([]uint8, cols*rows*layers),
	}, nil
}

func (m *Model) index(col, row, layer int) int {
	return (layer*m.Rows+row)*m.Cols + col
}

// At returns the lithology index of a cell.
func (m *Model) At(col, row, layer int) uint8 {
	return m.grid[m.index(col, row, layer)]
}

// Set writes a lithology index into a cell. The index is not checked
// here; Validate catches unknown indices before a solve.
func (m *Model) Set(col, row, layer int, idx uint8) {
	m.grid[m.index(col, row, layer)] = idx
}

// Lithology returns the property entry for a grid index.
func (m *Model) Lithology(idx uint8) (Lithology, bool) {
	if idx == Air || int(idx) > len(m.liths) {
		return Lithology{}, false
	}
	return m.liths[idx-1], true
}

// NumLithologies returns the size of the property table.
func (m *Model) NumLithologies() int { return len(m.liths) }

// Validate checks that every non-air index present in the grid has a
// property entry. It reports the first offending index.
func (m *Model) Validate() error {
	var seen [256]bool
	for _, v := range m.grid {
		seen[v] = true
	}
	for idx := 1; idx < 256; idx++ {
		if seen[idx] && idx > len(m.liths) {
			return fmt.Errorf("lithology index %d used in grid but has no property entry (table has %d)", idx, len(m.liths))
		}
	}
	return nil
}

// Occupied counts non-air cells.
func (m *Model) Occupied() int {
	n := 0
	for _, v := range m.grid {
		if v != Air {
			n++
		}
	}
	return n
}

// CellCenter returns the world coordinates of a cell center
// (x east, y north, z elevation).
func (m *Model) CellCenter(col, row, layer int) (x, y, z float64) {
	x = m.TopLeftX + (float64(col)+0.5)*m.DXY
	y = m.TopLeftY - (float64(row)+0.5)*m.DXY
	z = m.TopLeftZ - (float64(layer)+0.5)*m.DZ
	return x, y, z
}

// VoxelBounds returns the west/east, south/north and bottom/top world
// extents of a cell.
func (m *Model) VoxelBounds(col, row, layer int) (x1, x2, y1, y2, z1, z2 float64) {
	x1 = m.TopLeftX + float64(col)*m.DXY
	x2 = x1 + m.DXY
	y2 = m.TopLeftY - float64(row)*m.DXY
	y1 = y2 - m.DXY
	z2 = m.TopLeftZ - float64(layer)*m.DZ
	z1 = z2 - m.DZ
	return x1, x2, y1, y2, z1, z2
}

// FillWhere writes idx into every cell whose center satisfies the
// predicate, and returns the number of cells written. This is the one
// supported way to carve bodies; it stays out of the solver hot path.
func (m *Model) FillWhere(idx uint8, pred func(x, y, z float64) bool) int {
	n := 0
	for layer := 0; layer < m.Layers; layer++ {
		for row := 0; row < m.Rows; row++ {
			for col := 0; col < m.Cols; col++ {
				x, y, z := m.CellCenter(col, row, layer)
				if pred(x, y, z) {
					m.grid[m.index(col, row, layer)] = idx
					n++
				}
			}
		}
	}
	return n
}

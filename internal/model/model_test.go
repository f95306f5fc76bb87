package model

import (
	"strings"
	"testing"
)

func generic() []Lithology {
	return []Lithology{{
		Name:           "Generic",
		Density:        0.3,
		Susceptibility: 0.01,
	}}
}

func TestQuickModelShape(t *testing.T) {
	m, err := QuickModel(10, 12, 5, 50, 25, 0, 600, 0, 100, 60, 0, generic())
	if err != nil {
		t.Fatalf("quick model failed: %v", err)
	}

	if m.Cols != 10 || m.Rows != 12 || m.Layers != 5 {
		t.Errorf("shape mismatch: got %dx%dx%d", m.Cols, m.Rows, m.Layers)
	}
	if m.Occupied() != 0 {
		t.Errorf("fresh model must be all air, got %d occupied", m.Occupied())
	}
	if m.FieldNT != DefaultFieldNT {
		t.Errorf("expected default field strength %g, got %g", DefaultFieldNT, m.FieldNT)
	}
}

func TestQuickModelRejectsBadInput(t *testing.T) {
	tests := []struct {
		name               string
		cols, rows, layers int
		dxy, dz            float64
		liths              []Lithology
	}{
		{"zero cols", 0, 10, 5, 50, 50, generic()},
		{"negative rows", 10, -1, 5, 50, 50, generic()},
		{"zero dxy", 10, 10, 5, 0, 50, generic()},
		{"negative dz", 10, 10, 5, 50, -50, generic()},
		{"negative susceptibility", 10, 10, 5, 50, 50,
			[]Lithology{{Name: "Bad", Susceptibility: -0.1}}},
		{"negative remanence", 10, 10, 5, 50, 50,
			[]Lithology{{Name: "Bad", RemStrength: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := QuickModel(tt.cols, tt.rows, tt.layers, tt.dxy, tt.dz, 0, 0, 0, 100, 60, 0, tt.liths)
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestAngleWrapping(t *testing.T) {
	liths := []Lithology{{Name: "Wrapped", RemInc: 270, RemDec: -540}}
	m, err := QuickModel(2, 2, 2, 50, 50, 0, 100, 0, 100, 60, 0, liths)
	if err != nil {
		t.Fatalf("quick model failed: %v", err)
	}

	l, ok := m.Lithology(1)
	if !ok {
		t.Fatal("lithology 1 missing")
	}
	if l.RemInc != -90 {
		t.Errorf("inclination 270 should wrap to -90, got %g", l.RemInc)
	}
	if l.RemDec != -180 {
		t.Errorf("declination -540 should wrap to -180, got %g", l.RemDec)
	}
}

func TestValidateReportsUnknownIndex(t *testing.T) {
	m, err := QuickModel(4, 4, 2, 50, 50, 0, 200, 0, 100, 60, 0, generic())
	if err != nil {
		t.Fatalf("quick model failed: %v", err)
	}

	m.Set(1, 1, 0, 1)
	if err := m.Validate(); err != nil {
		t.Fatalf("valid index flagged: %v", err)
	}

	m.Set(2, 2, 1, 7)
	err = m.Validate()
	if err == nil {
		t.Fatal("expected error for unknown lithology index")
	}
	if !strings.Contains(err.Error(), "7") {
		t.Errorf("error should name the offending index, got %q", err)
	}
}

func TestCellGeometry(t *testing.T) {
	m, err := QuickModel(10, 10, 5, 50, 25, 1000, 2000, 300, 100, 60, 0, generic())
	if err != nil {
		t.Fatalf("quick model failed: %v", err)
	}

	x, y, z := m.CellCenter(0, 0, 0)
	if x != 1025 || y != 1975 || z != 287.5 {
		t.Errorf("cell (0,0,0) center: got (%g, %g, %g)", x, y, z)
	}

	x1, x2, y1, y2, z1, z2 := m.VoxelBounds(1, 2, 3)
	if x1 != 1050 || x2 != 1100 {
		t.Errorf("x bounds: got [%g, %g]", x1, x2)
	}
	if y1 != 1850 || y2 != 1900 {
		t.Errorf("y bounds: got [%g, %g]", y1, y2)
	}
	if z1 != 200 || z2 != 225 {
		t.Errorf("z bounds: got [%g, %g]", z1, z2)
	}
}

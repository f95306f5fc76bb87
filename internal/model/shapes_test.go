package model

import "testing"

func TestFillWhereBox(t *testing.T) {
	m, err := QuickModel(10, 10, 5, 50, 50, 0, 500, 0, 100, 60, 0, generic())
	if err != nil {
		t.Fatalf("quick model failed: %v", err)
	}

	// Covers cell centers of columns 2..3, rows 2..3, layer 1.
	n := m.FillWhere(1, Box(100, 200, 300, 400, -100, -50))
	if n != 4 {
		t.Errorf("expected 4 cells filled, got %d", n)
	}
	if m.Occupied() != 4 {
		t.Errorf("occupied count mismatch: %d", m.Occupied())
	}
	if got := m.At(2, 2, 1); got != 1 {
		t.Errorf("cell (2,2,1): expected lith 1, got %d", got)
	}
	if got := m.At(0, 0, 0); got != Air {
		t.Errorf("cell outside box should stay air, got %d", got)
	}
}

func TestFillWhereSphere(t *testing.T) {
	m, err := QuickModel(10, 10, 10, 50, 50, 0, 500, 0, 100, 60, 0, generic())
	if err != nil {
		t.Fatalf("quick model failed: %v", err)
	}

	// Radius under half a cell: exactly the one center it sits on.
	cx, cy, cz := m.CellCenter(5, 5, 5)
	if n := m.FillWhere(1, Sphere(cx, cy, cz, 20)); n != 1 {
		t.Errorf("tiny sphere should fill 1 cell, got %d", n)
	}

	// A radius spanning one cell in each direction fills a cross.
	if n := m.FillWhere(1, Sphere(cx, cy, cz, 55)); n != 7 {
		t.Errorf("expected 7-cell cross, got %d", n)
	}
}

func TestFillWhereDyke(t *testing.T) {
	m, err := QuickModel(10, 10, 4, 50, 50, 0, 500, 0, 100, 60, 0, generic())
	if err != nil {
		t.Fatalf("quick model failed: %v", err)
	}

	// North-striking dyke through x=275 catches the column of centers
	// at x=275 over the full depth range.
	n := m.FillWhere(1, Dyke(275, 0, 0, 20, 0, -200))
	if n != m.Rows*m.Layers {
		t.Errorf("expected %d cells, got %d", m.Rows*m.Layers, n)
	}
	if got := m.At(5, 0, 0); got != 1 {
		t.Errorf("dyke column not filled at (5,0,0), got %d", got)
	}
	if got := m.At(4, 0, 0); got != Air {
		t.Errorf("neighbor column should stay air, got %d", got)
	}
}

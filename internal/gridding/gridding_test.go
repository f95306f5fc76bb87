package gridding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridRejectsBadInput(t *testing.T) {
	pts := []Point{{0, 0, 1}, {100, 0, 2}, {0, 100, 3}}

	_, err := Grid("g", pts[:2], 50, Options{})
	assert.Error(t, err, "too few points")

	_, err = Grid("g", pts, 0, Options{})
	assert.Error(t, err, "zero cell size")

	_, err = Grid("g", pts, 50, Options{Method: "spline"})
	assert.Error(t, err, "unknown method")
}

func TestGridGeometryCoversBoundingBox(t *testing.T) {
	pts := []Point{{0, 0, 1}, {200, 0, 2}, {0, 100, 3}, {200, 100, 4}}
	g, err := Grid("surface", pts, 50, Options{Method: IDW})
	require.NoError(t, err)

	assert.Equal(t, 5, g.Cols)
	assert.Equal(t, 3, g.Rows)
	assert.Equal(t, 0.0, g.TopLeftX)
	assert.Equal(t, 100.0, g.TopLeftY)
}

func TestIDWConstantField(t *testing.T) {
	pts := []Point{{0, 0, 7}, {200, 0, 7}, {0, 200, 7}, {200, 200, 7}, {100, 100, 7}}
	g, err := Grid("c", pts, 50, Options{Method: IDW})
	require.NoError(t, err)

	for _, v := range g.Data {
		assert.InDelta(t, 7.0, v, 1e-9)
	}
}

func TestIDWExactAtSample(t *testing.T) {
	// Sample placed exactly on a cell center.
	pts := []Point{{25, -25, 42}, {200, 0, 1}, {0, 200, 2}, {200, 200, 3}}
	g, err := Grid("e", pts, 50, Options{Method: IDW})
	require.NoError(t, err)

	// Bounding box is [0,200]x[-25,200], so rows run 175..-75 and the
	// sample lands exactly on the center of cell (0, 4).
	require.Equal(t, 6, g.Rows)
	assert.InDelta(t, 42.0, g.At(0, 4), 1e-9)
}

func TestKrigingConstantField(t *testing.T) {
	pts := []Point{{0, 0, 3}, {200, 0, 3}, {0, 200, 3}, {200, 200, 3}, {60, 140, 3}}
	g, err := Grid("k", pts, 50, Options{Method: Kriging})
	require.NoError(t, err)

	// Ordinary kriging weights sum to one, so a constant input must
	// reproduce the constant everywhere.
	for _, v := range g.Data {
		assert.InDelta(t, 3.0, v, 1e-6)
	}
}

func TestKrigingHonorsTrend(t *testing.T) {
	// Samples on the plane z = x/100.
	var pts []Point
	for x := 0.0; x <= 400; x += 100 {
		for y := 0.0; y <= 400; y += 100 {
			pts = append(pts, Point{x, y, x / 100})
		}
	}
	g, err := Grid("t", pts, 100, Options{Method: Kriging, Nugget: 0})
	require.NoError(t, err)

	// West edge must sit below the east edge.
	west := g.At(0, 2)
	east := g.At(g.Cols-1, 2)
	assert.Less(t, west, east)
}

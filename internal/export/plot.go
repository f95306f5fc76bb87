package export

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/karoo-geo/voxfield/internal/grid"
)

// gridXYZ adapts a Grid2D to the plotter.GridXYZ interface. Heatmap
// rows must increase northward, so the row axis is flipped.
type gridXYZ struct {
	g *grid.Grid2D
}

func (d gridXYZ) Dims() (c, r int) { return d.g.Cols, d.g.Rows }

func (d gridXYZ) X(c int) float64 {
	x, _ := d.g.CellXY(c, 0)
	return x
}

func (d gridXYZ) Y(r int) float64 {
	_, y := d.g.CellXY(0, d.g.Rows-1-r)
	return y
}

func (d gridXYZ) Z(c, r int) float64 {
	return d.g.At(c, d.g.Rows-1-r)
}

// WritePNG renders the grid as a heatmap with its unit in the title.
func WritePNG(path string, g *grid.Grid2D) error {
	h := plotter.NewHeatMap(gridXYZ{g}, palette.Heat(16, 1))

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%s)", g.Name, g.Unit)
	p.X.Label.Text = "Easting (m)"
	p.Y.Label.Text = "Northing (m)"
	p.Add(h)

	return p.Save(7*vg.Inch, 6*vg.Inch, path)
}

// Package export writes computed grids to files an external GIS stack
// can consume: ESRI ASCII rasters, xyz CSV, and a PNG heatmap for quick
// inspection. File-format breadth (GeoTIFF and friends) is left to
// GDAL-side tooling; the ASCII grid carries the full geotransform and
// no-data contract.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/karoo-geo/voxfield/internal/grid"
)

// WriteASCIIGrid writes an ESRI ASCII raster (.asc) with the grid's
// geotransform and no-data sentinel.
func WriteASCIIGrid(path string, g *grid.Grid2D) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	yll := g.TopLeftY - float64(g.Rows)*g.CellSize

	fmt.Fprintf(w, "ncols %d\n", g.Cols)
	fmt.Fprintf(w, "nrows %d\n", g.Rows)
	fmt.Fprintf(w, "xllcorner %g\n", g.TopLeftX)
	fmt.Fprintf(w, "yllcorner %g\n", yll)
	fmt.Fprintf(w, "cellsize %g\n", g.CellSize)
	fmt.Fprintf(w, "NODATA_value %g\n", g.NoData)

	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if c > 0 {
				w.WriteByte(' ')
			}
			w.WriteString(strconv.FormatFloat(g.At(c, r), 'g', -1, 64))
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}

// WriteCSV writes one x,y,value row per cell, skipping no-data cells.
func WriteCSV(path string, g *grid.Grid2D) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"x", "y", g.Name}
	if err := w.Write(header); err != nil {
		return err
	}

	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			v := g.At(c, r)
			if v == g.NoData {
				continue
			}
			x, y := g.CellXY(c, r)
			row := []string{
				strconv.FormatFloat(x, 'f', 3, 64),
				strconv.FormatFloat(y, 'f', 3, 64),
				strconv.FormatFloat(v, 'g', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

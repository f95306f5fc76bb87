package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/karoo-geo/voxfield/internal/config"
	"github.com/karoo-geo/voxfield/internal/export"
	"github.com/karoo-geo/voxfield/internal/forward"
	"github.com/karoo-geo/voxfield/internal/grid"
	"github.com/karoo-geo/voxfield/internal/gridding"
	"github.com/karoo-geo/voxfield/internal/profiler"
	"github.com/karoo-geo/voxfield/internal/storage"
	"github.com/karoo-geo/voxfield/internal/tui"
)

var (
	dataDir string
	preset  string
	mode    string
	height  float64
	workers int
	noCache bool
	live    bool
	pngOut  bool
	csvOut  bool
	// grid command
	cellSize float64
	method   string
	gridOut  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "voxfield",
		Short: "voxel gravity and magnetic forward modelling",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".voxfield", "run data directory")

	forwardCmd := &cobra.Command{
		Use:   "forward [scenario.yaml]",
		Short: "solve a scenario and store the result grids",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runForward,
	}
	forwardCmd.Flags().StringVar(&preset, "preset", "", "use a preset scenario instead of a file")
	forwardCmd.Flags().StringVar(&mode, "mode", "both", "gravity, magnetic or both")
	forwardCmd.Flags().Float64Var(&height, "height", 0, "override observation height (m above model top)")
	forwardCmd.Flags().IntVar(&workers, "workers", 0, "accumulation goroutines (default NumCPU)")
	forwardCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the unit-response cache")
	forwardCmd.Flags().BoolVar(&live, "live", false, "show live progress")
	forwardCmd.Flags().BoolVar(&pngOut, "png", false, "also export heatmap png per grid")
	forwardCmd.Flags().BoolVar(&csvOut, "csv", false, "also export xyz csv per grid")

	profileCmd := &cobra.Command{
		Use:   "profile [scenario.yaml]",
		Short: "solve and print center-row anomaly profiles",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runProfile,
	}
	profileCmd.Flags().StringVar(&preset, "preset", "", "use a preset scenario instead of a file")
	profileCmd.Flags().Float64Var(&height, "height", 0, "override observation height (m above model top)")

	gridCmd := &cobra.Command{
		Use:   "grid [points.csv]",
		Short: "interpolate scattered x,y,z points onto a regular grid",
		Args:  cobra.ExactArgs(1),
		RunE:  runGrid,
	}
	gridCmd.Flags().Float64Var(&cellSize, "cell", 50, "target cell size")
	gridCmd.Flags().StringVar(&method, "method", "idw", "idw or kriging")
	gridCmd.Flags().StringVar(&gridOut, "out", "gridded.asc", "output raster path")

	initCmd := &cobra.Command{
		Use:   "init [scenario.yaml]",
		Short: "write a starter scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.Default())
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				s := config.GetPreset(name)
				fmt.Printf("%-18s %dx%dx%d cells, %d lithologies\n",
					name, s.Grid.Cols, s.Grid.Rows, s.Grid.Layers, len(s.Lithologies))
			}
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	rootCmd.AddCommand(forwardCmd, profileCmd, gridCmd, initCmd, presetsCmd, listCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadScenario(args []string) (*config.Scenario, error) {
	if preset != "" {
		s := config.GetPreset(preset)
		if s == nil {
			return nil, fmt.Errorf("unknown preset %q (try: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		return s, nil
	}
	if len(args) == 1 {
		return config.Load(args[0])
	}
	return config.Default(), nil
}

func parseMode(s string) (forward.Mode, error) {
	switch s {
	case "gravity":
		return forward.Gravity, nil
	case "magnetic":
		return forward.Magnetic, nil
	case "both":
		return forward.Both, nil
	default:
		return 0, fmt.Errorf("unknown mode %q: want gravity, magnetic or both", s)
	}
}

func runForward(cmd *cobra.Command, args []string) error {
	scen, err := loadScenario(args)
	if err != nil {
		return err
	}
	fm, err := parseMode(mode)
	if err != nil {
		return err
	}

	prof := profiler.New()
	m, err := scen.BuildModel()
	if err != nil {
		return err
	}
	prof.Lap("build model")

	obsHeight := scen.Grid.ObsHeight
	if cmd.Flags().Changed("height") {
		obsHeight = height
	}
	obs := grid.FromModel(m, obsHeight)

	opts := []forward.Option{forward.WithCache(!noCache)}
	if workers > 0 {
		opts = append(opts, forward.WithWorkers(workers))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var res *forward.Result
	if live {
		err = tui.RunSolve(fmt.Sprintf("voxfield forward: %s (%s)", scen.Name, fm), cancel,
			func(report func(done, total int)) error {
				solver := forward.New(append(opts, forward.WithProgress(report))...)
				var serr error
				res, serr = solver.Compute(ctx, m, obs, fm)
				return serr
			})
	} else {
		res, err = forward.New(opts...).Compute(ctx, m, obs, fm)
	}
	if err != nil {
		return err
	}
	solveTime := prof.Lap("solve")

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(scen.Name, fm.String(), obsHeight, res,
		map[string]float64{"solve_seconds": solveTime.Seconds()})
	if err != nil {
		return err
	}

	outputs := map[string]*grid.Grid2D{"gravity": res.Gravity, "magnetics": res.Magnetic}
	for base, g := range outputs {
		if g == nil {
			continue
		}
		if pngOut {
			if err := export.WritePNG(fmt.Sprintf("%s_%s.png", runID, base), g); err != nil {
				return err
			}
		}
		if csvOut {
			if err := export.WriteCSV(fmt.Sprintf("%s_%s.csv", runID, base), g); err != nil {
				return err
			}
		}
	}
	prof.Lap("export")

	fmt.Printf("run %s: %d voxels onto %d points\n", runID, res.Voxels, res.Points)
	if res.Gravity != nil {
		c, r, v := res.Gravity.Peak()
		fmt.Printf("  gravity peak  %+.4f mGal at cell (%d, %d)\n", v, c, r)
	}
	if res.Magnetic != nil {
		c, r, v := res.Magnetic.Peak()
		fmt.Printf("  magnetic peak %+.2f nT at cell (%d, %d)\n", v, c, r)
	}
	prof.Report(os.Stdout)
	return nil
}

func runProfile(cmd *cobra.Command, args []string) error {
	scen, err := loadScenario(args)
	if err != nil {
		return err
	}
	m, err := scen.BuildModel()
	if err != nil {
		return err
	}

	obsHeight := scen.Grid.ObsHeight
	if cmd.Flags().Changed("height") {
		obsHeight = height
	}
	obs := grid.FromModel(m, obsHeight)

	res, err := forward.New().Compute(context.Background(), m, obs, forward.Both)
	if err != nil {
		return err
	}

	row := res.Gravity.Rows / 2
	fmt.Println(asciigraph.Plot(res.Gravity.Row(row),
		asciigraph.Height(10), asciigraph.Caption(fmt.Sprintf("gravity (mGal), row %d", row))))
	fmt.Println()
	fmt.Println(asciigraph.Plot(res.Magnetic.Row(row),
		asciigraph.Height(10), asciigraph.Caption(fmt.Sprintf("magnetics (nT), row %d", row))))
	return nil
}

func runGrid(cmd *cobra.Command, args []string) error {
	points, err := readPoints(args[0])
	if err != nil {
		return err
	}

	opts := gridding.Options{Method: gridding.Method(method)}
	g, err := gridding.Grid("gridded", points, cellSize, opts)
	if err != nil {
		return err
	}
	if err := export.WriteASCIIGrid(gridOut, g); err != nil {
		return err
	}

	lo, hi := g.MinMax()
	fmt.Printf("gridded %d points onto %dx%d cells (%g..%g) -> %s\n",
		len(points), g.Cols, g.Rows, lo, hi, gridOut)
	return nil
}

// readPoints parses x,y,z rows, skipping a header line if present.
func readPoints(path string) ([]gridding.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	points := make([]gridding.Point, 0, len(records))
	for i, rec := range records {
		if len(rec) < 3 {
			continue
		}
		x, err1 := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		y, err2 := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		z, err3 := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err1 != nil || err2 != nil || err3 != nil {
			if i == 0 {
				continue // header
			}
			return nil, fmt.Errorf("%s: bad row %d: %v", path, i+1, rec)
		}
		points = append(points, gridding.Point{X: x, Y: y, Z: z})
	}
	return points, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tMODE\tGRID\tVOXELS\tPEAK G\tPEAK M")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%.4f\t%.2f\n",
			r.ID, r.Scenario, r.Mode, r.Cols, r.Rows, r.Voxels, r.PeakGravity, r.PeakMagnetic)
	}
	return w.Flush()
}

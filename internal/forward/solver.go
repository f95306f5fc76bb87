// Package forward accumulates per-prism kernel contributions from every
// occupied voxel of a model onto an observation surface. The inner loop
// is embarrassingly parallel; workers own disjoint output rows, so no
// locking happens during accumulation.
package forward

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/karoo-geo/voxfield/internal/grid"
	"github.com/karoo-geo/voxfield/internal/kernel"
	"github.com/karoo-geo/voxfield/internal/model"
)

type Mode int

const (
	Gravity Mode = iota
	Magnetic
	Both
)

func (m Mode) String() string {
	switch m {
	case Gravity:
		return "gravity"
	case Magnetic:
		return "magnetic"
	case Both:
		return "both"
	default:
		return "unknown"
	}
}

func (m Mode) wantGravity() bool  { return m == Gravity || m == Both }
func (m Mode) wantMagnetic() bool { return m == Magnetic || m == Both }

// Result holds the computed field grids. Only the grids matching the
// requested mode are non-nil. The caller owns the grids after return.
type Result struct {
	Gravity  *grid.Grid2D // mGal
	Magnetic *grid.Grid2D // nT
	Voxels   int          // occupied voxels accumulated
	Points   int          // observation points evaluated
}

type Option func(*Solver)

// WithWorkers sets the number of accumulation goroutines.
func WithWorkers(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithProgress installs a progress callback invoked serially from a
// single goroutine with (points done, points total).
func WithProgress(fn func(done, total int)) Option {
	return func(s *Solver) { s.progress = fn }
}

// WithCache toggles the regular-grid unit-response cache. It only
// applies when the observation surface is aligned with the model grid
// at constant height; otherwise the solver falls back to direct
// evaluation.
func WithCache(enabled bool) Option {
	return func(s *Solver) { s.useCache = enabled }
}

type Solver struct {
	workers  int
	progress func(done, total int)
	useCache bool
}

func New(opts ...Option) *Solver {
	s := &Solver{workers: runtime.NumCPU(), useCache: true}
	for _, o := range opts {
		o(s)
	}
	return s
}

// voxel is one occupied cell with its world bounds resolved, so the
// hot loop never touches grid geometry.
type voxel struct {
	x1, x2, y1, y2 float64 // west/east, south/north
	zBot, zTop     float64 // elevation of bottom and top faces
	col, row, lay  int
	lith           uint8
}

// Compute accumulates the requested fields over obs. Configuration
// errors surface before any accumulation; a cancelled context returns
// ctx.Err() with no grids.
func (s *Solver) Compute(ctx context.Context, m *model.Model, obs *grid.Observation, mode Mode) (*Result, error) {
	if m == nil || obs == nil {
		return nil, fmt.Errorf("model and observation surface are required")
	}
	if mode != Gravity && mode != Magnetic && mode != Both {
		return nil, fmt.Errorf("unknown mode %d", mode)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	densities, mags := resolveProperties(m)
	voxels := collectVoxels(m)

	res := &Result{Voxels: len(voxels), Points: obs.NumPoints()}
	if mode.wantGravity() {
		res.Gravity = obs.NewResult("Calculated Gravity", "mGal")
	}
	if mode.wantMagnetic() {
		res.Magnetic = obs.NewResult("Calculated Magnetics", "nT")
	}
	if len(voxels) == 0 {
		s.report(res.Points, res.Points)
		return res, nil
	}

	var cache *responseCache
	if s.useCache && obs.AlignedTo(m) {
		var err error
		cache, err = buildCache(ctx, m, obs.Height(), mode, mags)
		if err != nil {
			return nil, err
		}
	}

	if err := s.accumulate(ctx, obs, mode, voxels, densities, mags, cache, res); err != nil {
		return nil, err
	}
	return res, nil
}

// resolveProperties maps grid indices to density contrasts and effective
// magnetizations once, so string names and angles never appear in the
// accumulation loop.
func resolveProperties(m *model.Model) ([]float64, []kernel.Magnetization) {
	n := m.NumLithologies()
	densities := make([]float64, n+1)
	mags := make([]kernel.Magnetization, n+1)
	for i := 1; i <= n; i++ {
		l, _ := m.Lithology(uint8(i))
		densities[i] = l.Density
		mags[i] = kernel.NewMagnetization(l.Susceptibility, m.FieldInc, m.FieldDec, m.FieldNT,
			l.RemInc, l.RemDec, l.RemStrength)
	}
	return densities, mags
}

func collectVoxels(m *model.Model) []voxel {
	voxels := make([]voxel, 0, 256)
	for lay := 0; lay < m.Layers; lay++ {
		for row := 0; row < m.Rows; row++ {
			for col := 0; col < m.Cols; col++ {
				idx := m.At(col, row, lay)
				if idx == model.Air {
					continue
				}
				x1, x2, y1, y2, z1, z2 := m.VoxelBounds(col, row, lay)
				voxels = append(voxels, voxel{
					x1: x1, x2: x2, y1: y1, y2: y2,
					zBot: z1, zTop: z2,
					col: col, row: row, lay: lay,
					lith: idx,
				})
			}
		}
	}
	return voxels
}

func (s *Solver) accumulate(ctx context.Context, obs *grid.Observation, mode Mode,
	voxels []voxel, densities []float64, mags []kernel.Magnetization,
	cache *responseCache, res *Result) error {

	workers := s.workers
	if workers > obs.Rows {
		workers = obs.Rows
	}
	if workers < 1 {
		workers = 1
	}

	rowCh := make(chan int)
	go func() {
		defer close(rowCh)
		for r := 0; r < obs.Rows; r++ {
			select {
			case rowCh <- r:
			case <-ctx.Done():
				return
			}
		}
	}()

	var progCh chan int
	var progWG sync.WaitGroup
	if s.progress != nil {
		progCh = make(chan int, workers)
		progWG.Add(1)
		go func() {
			defer progWG.Done()
			done := 0
			for n := range progCh {
				done += n
				s.progress(done, res.Points)
			}
		}()
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := range rowCh {
				if ctx.Err() != nil {
					return
				}
				if cache != nil {
					cache.accumRow(obs, row, voxels, densities, res)
				} else {
					accumRowDirect(obs, row, mode, voxels, densities, mags, res)
				}
				if progCh != nil {
					progCh <- obs.Cols
				}
			}
		}()
	}
	wg.Wait()
	if progCh != nil {
		close(progCh)
		progWG.Wait()
	}

	return ctx.Err()
}

// accumRowDirect sums kernel contributions of every voxel into one
// output row.
func accumRowDirect(obs *grid.Observation, row int, mode Mode,
	voxels []voxel, densities []float64, mags []kernel.Magnetization, res *Result) {

	wantG := mode.wantGravity()
	wantM := mode.wantMagnetic()

	for col := 0; col < obs.Cols; col++ {
		ox, oy, oz := obs.Point(col, row)

		var gv, mv float64
		for i := range voxels {
			v := &voxels[i]
			dx1, dx2 := v.x1-ox, v.x2-ox
			dy1, dy2 := v.y1-oy, v.y2-oy
			// Kernel z is depth below the observer.
			dz1, dz2 := oz-v.zTop, oz-v.zBot

			if wantG {
				if d := densities[v.lith]; d != 0 {
					gv += kernel.Gravity(dx1, dx2, dy1, dy2, dz1, dz2, d)
				}
			}
			if wantM {
				if mg := mags[v.lith]; !mg.IsZero() {
					mv += kernel.TotalField(dx1, dx2, dy1, dy2, dz1, dz2, mg)
				}
			}
		}

		if wantG {
			res.Gravity.Set(col, row, gv)
		}
		if wantM {
			res.Magnetic.Set(col, row, mv)
		}
	}
}

func (s *Solver) report(done, total int) {
	if s.progress != nil {
		s.progress(done, total)
	}
}

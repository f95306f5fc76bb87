// Package config loads and validates yaml scenario files: the voxel
// grid shape, the inducing field, the lithology table and the bodies to
// carve into the grid.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/karoo-geo/voxfield/internal/model"
)

const (
	DefaultCellXY    = 50.0
	DefaultCellZ     = 50.0
	DefaultObsHeight = 100.0
	DefaultFieldInc  = -65.0
	DefaultFieldDec  = -22.0
	DefaultFieldNT   = 30000.0
)

type Scenario struct {
	Name        string       `yaml:"name"`
	Grid        GridConfig   `yaml:"grid"`
	Field       FieldConfig  `yaml:"field"`
	Lithologies []LithConfig `yaml:"lithologies"`
	Bodies      []BodyConfig `yaml:"bodies"`
}

type GridConfig struct {
	Cols      int     `yaml:"cols"`
	Rows      int     `yaml:"rows"`
	Layers    int     `yaml:"layers"`
	CellXY    float64 `yaml:"cell_xy"`
	CellZ     float64 `yaml:"cell_z"`
	OriginX   float64 `yaml:"origin_x"`
	OriginY   float64 `yaml:"origin_y"`
	OriginZ   float64 `yaml:"origin_z"`
	ObsHeight float64 `yaml:"obs_height"`
}

type FieldConfig struct {
	Inclination float64 `yaml:"inclination"`
	Declination float64 `yaml:"declination"`
	StrengthNT  float64 `yaml:"strength_nt"`
}

type LithConfig struct {
	Name           string  `yaml:"name"`
	Density        float64 `yaml:"density"`
	Susceptibility float64 `yaml:"susceptibility"`
	RemInc         float64 `yaml:"rem_inc"`
	RemDec         float64 `yaml:"rem_dec"`
	RemStrength    float64 `yaml:"rem_strength"`
}

// BodyConfig carves one body into the grid. Shape selects which of the
// coordinate fields apply: box uses x1..z2, sphere uses x/y/z/radius,
// dyke uses x/y/azimuth/half_width/z1/z2.
type BodyConfig struct {
	Lithology string  `yaml:"lithology"`
	Shape     string  `yaml:"shape"`
	X1        float64 `yaml:"x1,omitempty"`
	X2        float64 `yaml:"x2,omitempty"`
	Y1        float64 `yaml:"y1,omitempty"`
	Y2        float64 `yaml:"y2,omitempty"`
	Z1        float64 `yaml:"z1,omitempty"`
	Z2        float64 `yaml:"z2,omitempty"`
	X         float64 `yaml:"x,omitempty"`
	Y         float64 `yaml:"y,omitempty"`
	Z         float64 `yaml:"z,omitempty"`
	Radius    float64 `yaml:"radius,omitempty"`
	Azimuth   float64 `yaml:"azimuth,omitempty"`
	HalfWidth float64 `yaml:"half_width,omitempty"`
}

func Default() *Scenario {
	return &Scenario{
		Name: "single-cube",
		Grid: GridConfig{
			Cols: 40, Rows: 40, Layers: 10,
			CellXY: DefaultCellXY, CellZ: DefaultCellZ,
			OriginY:   2000,
			ObsHeight: DefaultObsHeight,
		},
		Field: FieldConfig{
			Inclination: DefaultFieldInc,
			Declination: DefaultFieldDec,
			StrengthNT:  DefaultFieldNT,
		},
		Lithologies: []LithConfig{
			{Name: "Generic", Density: 0.3, Susceptibility: 0.01},
		},
		Bodies: []BodyConfig{
			{Lithology: "Generic", Shape: "box",
				X1: 900, X2: 1100, Y1: 900, Y2: 1100, Z1: -300, Z2: -100},
		},
	}
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := Default()
	s.Lithologies = nil
	s.Bodies = nil
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

func Save(path string, s *Scenario) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (s *Scenario) Validate() error {
	g := s.Grid
	if g.Cols <= 0 || g.Rows <= 0 || g.Layers <= 0 {
		return fmt.Errorf("grid dimensions must be positive, got %dx%dx%d", g.Cols, g.Rows, g.Layers)
	}
	if g.CellXY <= 0 || g.CellZ <= 0 {
		return fmt.Errorf("cell sizes must be positive, got cell_xy=%g cell_z=%g", g.CellXY, g.CellZ)
	}
	if s.Field.StrengthNT <= 0 {
		return fmt.Errorf("field strength must be positive, got %g nT", s.Field.StrengthNT)
	}

	names := make(map[string]bool, len(s.Lithologies))
	for _, l := range s.Lithologies {
		if l.Name == "" {
			return fmt.Errorf("lithology with empty name")
		}
		if names[l.Name] {
			return fmt.Errorf("duplicate lithology %q", l.Name)
		}
		names[l.Name] = true
	}

	for i, b := range s.Bodies {
		if !names[b.Lithology] {
			return fmt.Errorf("body %d references unknown lithology %q", i, b.Lithology)
		}
		switch b.Shape {
		case "box", "sphere", "dyke":
		default:
			return fmt.Errorf("body %d: unknown shape %q", i, b.Shape)
		}
	}
	return nil
}

// BuildModel constructs the voxel model and carves the configured
// bodies. Later bodies overwrite earlier ones where they overlap.
func (s *Scenario) BuildModel() (*model.Model, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	liths := make([]model.Lithology, len(s.Lithologies))
	index := make(map[string]uint8, len(s.Lithologies))
	for i, l := range s.Lithologies {
		liths[i] = model.Lithology{
			Name:           l.Name,
			Density:        l.Density,
			Susceptibility: l.Susceptibility,
			RemInc:         l.RemInc,
			RemDec:         l.RemDec,
			RemStrength:    l.RemStrength,
		}
		index[l.Name] = uint8(i + 1)
	}

	g := s.Grid
	m, err := model.QuickModel(g.Cols, g.Rows, g.Layers, g.CellXY, g.CellZ,
		g.OriginX, g.OriginY, g.OriginZ, g.ObsHeight,
		s.Field.Inclination, s.Field.Declination, liths)
	if err != nil {
		return nil, err
	}
	m.FieldNT = s.Field.StrengthNT

	for _, b := range s.Bodies {
		idx := index[b.Lithology]
		switch b.Shape {
		case "box":
			m.FillWhere(idx, model.Box(b.X1, b.X2, b.Y1, b.Y2, b.Z1, b.Z2))
		case "sphere":
			m.FillWhere(idx, model.Sphere(b.X, b.Y, b.Z, b.Radius))
		case "dyke":
			m.FillWhere(idx, model.Dyke(b.X, b.Y, b.Azimuth, b.HalfWidth, b.Z2, b.Z1))
		}
	}
	return m, nil
}

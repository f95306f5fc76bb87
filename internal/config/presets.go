package config

import "sort"

// Presets are ready-made scenarios for the CLI demo commands.
var Presets = map[string]*Scenario{
	"single-cube": Default(),

	"dyke": {
		Name: "dyke",
		Grid: GridConfig{
			Cols: 60, Rows: 40, Layers: 12,
			CellXY: 50, CellZ: 50,
			OriginY: 2000, ObsHeight: 80,
		},
		Field: FieldConfig{Inclination: -65, Declination: -22, StrengthNT: 28000},
		Lithologies: []LithConfig{
			{Name: "Dolerite", Density: 0.45, Susceptibility: 0.025},
		},
		Bodies: []BodyConfig{
			{Lithology: "Dolerite", Shape: "dyke",
				X: 1500, Y: 1000, Azimuth: 30, HalfWidth: 60, Z1: -600, Z2: -100},
		},
	},

	"remanent-sphere": {
		Name: "remanent-sphere",
		Grid: GridConfig{
			Cols: 50, Rows: 50, Layers: 14,
			CellXY: 40, CellZ: 40,
			OriginY: 2000, ObsHeight: 120,
		},
		Field: FieldConfig{Inclination: 60, Declination: 0, StrengthNT: 50000},
		Lithologies: []LithConfig{
			{Name: "Magnetite Body", Density: 1.2, Susceptibility: 0.08,
				RemInc: -40, RemDec: 110, RemStrength: 2.5},
			{Name: "Host", Density: 0.1, Susceptibility: 0.001},
		},
		Bodies: []BodyConfig{
			{Lithology: "Host", Shape: "box",
				X1: 600, X2: 1400, Y1: 600, Y2: 1400, Z1: -560, Z2: -200},
			{Lithology: "Magnetite Body", Shape: "sphere",
				X: 1000, Y: 1000, Z: -300, Radius: 150},
		},
	},
}

// GetPreset returns a preset scenario, or nil if unknown.
func GetPreset(name string) *Scenario {
	return Presets[name]
}

// ListPresets returns the available preset names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for n := range Presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

package model

import "fmt"

// Lithology is a named material with the physical properties needed for
// forward modelling. Density is a contrast against the background in
// g/cm3, susceptibility is SI, remanent strength is A/m.
type Lithology struct {
	Name           string
	Density        float64
	Susceptibility float64
	RemInc         float64
	RemDec         float64
	RemStrength    float64
}

func (l Lithology) validate() error {
	if l.Susceptibility < 0 {
		return fmt.Errorf("lithology %q: susceptibility must be non-negative, got %g", l.Name, l.Susceptibility)
	}
	if l.RemStrength < 0 {
		return fmt.Errorf("lithology %q: remanent strength must be non-negative, got %g", l.Name, l.RemStrength)
	}
	return nil
}

// canonical wraps the remanence angles into [-180, 180).
func (l Lithology) canonical() Lithology {
	l.RemInc = wrapDegrees(l.RemInc)
	l.RemDec = wrapDegrees(l.RemDec)
	return l
}

func wrapDegrees(d float64) float64 {
	for d >= 180 {
		d -= 360
	}
	for d < -180 {
		d += 360
	}
	return d
}

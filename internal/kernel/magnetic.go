package kernel

import "math"

// nT2AM converts an inducing-field strength in nT to an induced
// magnetization in A/m per unit SI susceptibility (1/(400*pi)).
const nT2AM = 1.0 / (400 * math.Pi)

// fieldScale is Cm * t2nt: mu0/(4*pi) in tesla-meter-per-ampere times
// 1e9 nT/T, applied to the Bhattacharyya sum with magnetization in A/m.
const fieldScale = 100.0

// Magnetization is the effective magnetization of one lithology together
// with the inducing-field direction, resolved once per lithology so the
// per-prism evaluation never touches angles.
type Magnetization struct {
	// Effective magnetization vector in A/m (east, north, down):
	// induced plus remanent.
	Mx, My, Mz float64
	// Inducing-field direction cosines (east, north, down).
	Fx, Fy, Fz float64
}

// DirCos returns east, north, down direction cosines for an inclination
// (degrees, positive down) and declination (degrees, clockwise from north).
func DirCos(incDeg, decDeg float64) (e, n, d float64) {
	inc := incDeg * math.Pi / 180
	dec := decDeg * math.Pi / 180
	ci := math.Cos(inc)
	return ci * math.Sin(dec), ci * math.Cos(dec), math.Sin(inc)
}

// NewMagnetization resolves the vector sum of induced magnetization
// (susceptibility times the inducing field) and remanent magnetization
// (remStrength A/m along its own direction).
func NewMagnetization(susc, fieldInc, fieldDec, fieldNT, remInc, remDec, remStrength float64) Magnetization {
	fe, fn, fd := DirCos(fieldInc, fieldDec)
	induced := susc * fieldNT * nT2AM

	m := Magnetization{
		Mx: induced * fe,
		My: induced * fn,
		Mz: induced * fd,
		Fx: fe, Fy: fn, Fz: fd,
	}
	if remStrength != 0 {
		re, rn, rd := DirCos(remInc, remDec)
		m.Mx += remStrength * re
		m.My += remStrength * rn
		m.Mz += remStrength * rd
	}
	return m
}

// Strength returns the magnitude of the effective magnetization in A/m.
func (m Magnetization) Strength() float64 {
	return math.Sqrt(m.Mx*m.Mx + m.My*m.My + m.Mz*m.Mz)
}

// IsZero reports whether the prism would produce no magnetic anomaly.
func (m Magnetization) IsZero() bool {
	return m.Mx == 0 && m.My == 0 && m.Mz == 0
}

// TotalField returns the total-field magnetic anomaly in nT of the prism
// spanning [x1,x2]x[y1,y2]x[z1,z2] relative to the observation point.
// The finite prism is the difference of two prisms extending to infinite
// depth, one topped at z1 and one at z2.
func TotalField(x1, x2, y1, y2, z1, z2 float64, m Magnetization) float64 {
	if x1 == x2 || y1 == y2 || z1 == z2 || m.IsZero() {
		return 0
	}

	ms := m.Strength()
	// Unit magnetization direction cosines.
	ma, mb, mc := m.Mx/ms, m.My/ms, m.Mz/ms
	fa, fb, fc := m.Fx, m.Fy, m.Fz

	fm1 := ma*fb + mb*fa
	fm2 := ma*fc + mc*fa
	fm3 := mb*fc + mc*fb
	fm4 := ma * fa
	fm5 := mb * fb
	fm6 := mc * fc

	top := semiInfinite(x1, x2, y1, y2, z1, fm1, fm2, fm3, fm4, fm5, fm6)
	bot := semiInfinite(x1, x2, y1, y2, z2, fm1, fm2, fm3, fm4, fm5, fm6)

	return fieldScale * ms * (top - bot)
}

// semiInfinite evaluates Bhattacharyya's anomaly sum for a prism with
// top at depth h extending to infinite depth.
func semiInfinite(a1, a2, b1, b2, h, fm1, fm2, fm3, fm4, fm5, fm6 float64) float64 {
	as := [2]float64{a1, a2}
	bs := [2]float64{b1, b2}

	t := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			sign := 1.0
			if i != j {
				sign = -1.0
			}
			a, b := as[i], bs[j]
			r0 := math.Sqrt(a*a + b*b + h*h)
			ab := a * b

			tlog := 0.0
			// Each log argument is zero only on a prism edge or corner,
			// where the term's limiting value is zero.
			if num, den := r0-a, r0+a; num > 0 && den > 0 {
				tlog += fm3 * 0.5 * math.Log(num/den)
			}
			if num, den := r0-b, r0+b; num > 0 && den > 0 {
				tlog += fm2 * 0.5 * math.Log(num/den)
			}
			if v := r0 + h; v > 0 {
				tlog -= fm1 * math.Log(v)
			}

			tatan := -fm4*math.Atan2(ab, a*a+r0*h+h*h) -
				fm5*math.Atan2(ab, r0*r0+r0*h-a*a) +
				fm6*math.Atan2(ab, r0*h)

			t += sign * (tlog + tatan)
		}
	}
	return t
}

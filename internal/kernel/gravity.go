package kernel

import "math"

// gravScale converts the Nagy corner sum (meters) times a density
// contrast in g/cm3 to mGal: G * 1e3 (g/cm3 -> kg/m3) * 1e5 (m/s2 -> mGal).
const gravScale = 6.6743e-3

// Gravity returns the vertical gravity contribution in mGal of the prism
// spanning [x1,x2]x[y1,y2]x[z1,z2] relative to the observation point,
// for a density contrast in g/cm3. Degenerate prisms contribute zero.
func Gravity(x1, x2, y1, y2, z1, z2, density float64) float64 {
	if density == 0 || x1 == x2 || y1 == y2 || z1 == z2 {
		return 0
	}

	xs := [2]float64{x1, x2}
	ys := [2]float64{y1, y2}
	zs := [2]float64{z1, z2}

	sum := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				x, y, z := xs[i], ys[j], zs[k]
				r := math.Sqrt(x*x + y*y + z*z)

				term := z * math.Atan2(x*y, z*r)
				// Log arguments vanish only when the observation point
				// sits on the prism edge; the full term's limit is zero.
				if v := y + r; v > 0 {
					term -= x * math.Log(v)
				}
				if v := x + r; v > 0 {
					term -= y * math.Log(v)
				}

				if (i+j+k)%2 == 0 {
					sum -= term
				} else {
					sum += term
				}
			}
		}
	}

	return gravScale * density * sum
}

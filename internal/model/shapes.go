package model

import "math"

// Geometric predicates for FillWhere. All take world coordinates.

// Box matches cell centers inside an axis-aligned box. Bounds may be
// given in any order.
func Box(x1, x2, y1, y2, z1, z2 float64) func(x, y, z float64) bool {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	if z1 > z2 {
		z1, z2 = z2, z1
	}
	return func(x, y, z float64) bool {
		return x >= x1 && x <= x2 && y >= y1 && y <= y2 && z >= z1 && z <= z2
	}
}

// Sphere matches cell centers within radius r of (cx, cy, cz).
func Sphere(cx, cy, cz, r float64) func(x, y, z float64) bool {
	r2 := r * r
	return func(x, y, z float64) bool {
		dx, dy, dz := x-cx, y-cy, z-cz
		return dx*dx+dy*dy+dz*dz <= r2
	}
}

// Dyke matches a vertical slab of the given half-width running along
// the line through (x0, y0) with strike azimuth in degrees (clockwise
// from north), between the two elevations.
func Dyke(x0, y0, azimuthDeg, halfWidth, zTop, zBot float64) func(x, y, z float64) bool {
	if zBot > zTop {
		zTop, zBot = zBot, zTop
	}
	// Unit normal to the strike direction.
	nx, ny, _ := strikeNormal(azimuthDeg)
	return func(x, y, z float64) bool {
		if z > zTop || z < zBot {
			return false
		}
		d := (x-x0)*nx + (y-y0)*ny
		return d >= -halfWidth && d <= halfWidth
	}
}

// strikeNormal returns the horizontal unit normal to a strike azimuth
// given in degrees clockwise from north.
func strikeNormal(azimuthDeg float64) (nx, ny, _ float64) {
	a := azimuthDeg * math.Pi / 180
	return math.Cos(a), -math.Sin(a), 0
}

package ephem

import (
	"math"

	"github.com/soniakeys/unit"
)

// Vec3 is a 3D vector; ecliptic-of-date axes, AU, unless noted.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

// Spherical returns longitude in [0, 360) and latitude in degrees.
func (v Vec3) Spherical() (lonDeg, latDeg float64) {
	lonDeg = normalize360(unit.Angle(math.Atan2(v.Y, v.X)).Deg())
	latDeg = unit.Angle(math.Atan2(v.Z, math.Hypot(v.X, v.Y))).Deg()
	return lonDeg, latDeg
}

func fromSpherical(lonDeg, latDeg, r float64) Vec3 {
	sLon, cLon := math.Sincos(unit.AngleFromDeg(lonDeg).Rad())
	sLat, cLat := math.Sincos(unit.AngleFromDeg(latDeg).Rad())
	return Vec3{
		X: r * cLat * cLon,
		Y: r * cLat * sLon,
		Z: r * sLat,
	}
}

// AngleBetween returns the angle between two vectors in degrees.
func AngleBetween(a, b Vec3) float64 {
	return unit.Angle(math.Atan2(a.Cross(b).Norm(), a.Dot(b))).Deg()
}

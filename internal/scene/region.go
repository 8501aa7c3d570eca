package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/Faultbox/midgard-globe/internal/catalog"
	"github.com/Faultbox/midgard-globe/pkg/angular"
)

// Region is an entity's patch of the globe surface.
type Region struct {
	ID  string
	Cap s2.Cap
}

// Axis is the region center in globe-local coordinates.
func (r Region) Axis() mgl32.Vec3 {
	return LocalDirection(r.Cap.Center())
}

// Angle is the angular radius in radians.
func (r Region) Angle() float32 {
	return float32(r.Cap.Radius().Radians())
}

// LocalDirection maps a point on the unit sphere to globe-local space:
// latitude 0, longitude 0 faces +Z (the camera), the north pole is +Y and
// longitude 90°E is +X.
func LocalDirection(p s2.Point) mgl32.Vec3 {
	return mgl32.Vec3{float32(p.Y), float32(p.Z), float32(p.X)}
}

// PointAt returns the unit-sphere point at latitude and longitude in degrees.
func PointAt(lat, lon float64) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
}

// FacingAngles returns the orientation that turns the point at lat, lon
// (degrees) toward the camera, ignoring the small yaw the tilt axis adds.
func FacingAngles(lat, lon float64) angular.Angles {
	return angular.Angles{
		X: lat * math.Pi / 180,
		Y: -lon * math.Pi / 180,
	}
}

// Regions returns the regions of the entities that have one, in table order.
func Regions(entities []catalog.Entity) []Region {
	var out []Region
	for _, e := range entities {
		if e.Region == nil {
			continue
		}
		out = append(out, regionOf(e))
	}
	return out
}

func regionOf(e catalog.Entity) Region {
	center := PointAt(e.Region.Lat, e.Region.Lon)
	return Region{
		ID:  e.ID,
		Cap: s2.CapFromCenterAngle(center, s1.Angle(e.Region.Radius)*s1.Degree),
	}
}

// Locate returns the region containing the point at lat, lon (degrees). When
// regions overlap the smallest wins.
func Locate(regions []Region, lat, lon float64) (string, bool) {
	p := PointAt(lat, lon)
	best := -1
	for i, r := range regions {
		if !r.Cap.ContainsPoint(p) {
			continue
		}
		if best < 0 || r.Cap.Radius() < regions[best].Cap.Radius() {
			best = i
		}
	}
	if best < 0 {
		return "", false
	}
	return regions[best].ID, true
}

// Overlaps lists pairs of regions whose caps intersect.
func Overlaps(regions []Region) [][2]string {
	var out [][2]string
	for i := range regions {
		for j := i + 1; j < len(regions); j++ {
			if regions[i].Cap.Intersects(regions[j].Cap) {
				out = append(out, [2]string{regions[i].ID, regions[j].ID})
			}
		}
	}
	return out
}

// Package geo holds the planar geometry used by the search geofence and the
// district importer. Coordinates are projected (EPSG:5179), so distances are
// in meters.
package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// SRID of every stored geometry.
const SRID = 5179

// Geofence is the union of a set of district boundaries expanded outward by
// Radius. A point is inside when it lies in one of the polygons or within
// Radius of a polygon boundary, which is the same set as
// ST_Buffer(ST_Union(areas), radius).
type Geofence struct {
	Areas  orb.MultiPolygon
	Radius float64

	bound orb.Bound
}

func NewGeofence(areas []orb.MultiPolygon, radius float64) Geofence {
	if radius < 0 {
		radius = 0
	}

	g := Geofence{Radius: radius}
	for _, mp := range areas {
		for _, poly := range mp {
			if len(poly) == 0 {
				continue
			}
			g.Areas = append(g.Areas, poly)
		}
	}
	if len(g.Areas) > 0 {
		g.bound = g.Areas.Bound().Pad(radius)
	}
	return g
}

// IsEmpty reports whether the fence encloses nothing. An empty fence matches
// no point.
func (g Geofence) IsEmpty() bool {
	return len(g.Areas) == 0
}

func (g Geofence) Bound() orb.Bound {
	return g.bound
}

func (g Geofence) Contains(p orb.Point) bool {
	if g.IsEmpty() {
		return false
	}
	if !g.bound.Contains(p) {
		return false
	}

	for _, poly := range g.Areas {
		if planar.PolygonContains(poly, p) {
			return true
		}
	}
	if g.Radius == 0 {
		return false
	}
	for _, poly := range g.Areas {
		if planar.DistanceFrom(poly, p) <= g.Radius {
			return true
		}
	}
	return false
}

// Distance returns how far p lies outside areas: 0 when inside one of the
// polygons and -1 when areas is empty.
func Distance(areas orb.MultiPolygon, p orb.Point) float64 {
	if len(areas) == 0 {
		return -1
	}
	best := -1.0
	for _, poly := range areas {
		if planar.PolygonContains(poly, p) {
			return 0
		}
		d := planar.DistanceFrom(poly, p)
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

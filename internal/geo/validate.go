package geo

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

var ErrInvalidGeometry = errors.New("invalid geometry")

// ToMultiPolygon accepts a Polygon or MultiPolygon, the two shapes a district
// boundary can take in source data.
func ToMultiPolygon(g orb.Geometry) (orb.MultiPolygon, error) {
	switch v := g.(type) {
	case orb.MultiPolygon:
		return v, nil
	case orb.Polygon:
		return orb.MultiPolygon{v}, nil
	case nil:
		return nil, fmt.Errorf("%w: missing geometry", ErrInvalidGeometry)
	default:
		return nil, fmt.Errorf("%w: unsupported type %s", ErrInvalidGeometry, g.GeoJSONType())
	}
}

// ValidateMultiPolygon checks the structural rules stored boundaries must
// satisfy: every ring closed with at least four points, non-zero area, and
// no ring crossing itself.
func ValidateMultiPolygon(mp orb.MultiPolygon) error {
	if len(mp) == 0 {
		return fmt.Errorf("%w: empty multipolygon", ErrInvalidGeometry)
	}
	for pi, poly := range mp {
		if len(poly) == 0 {
			return fmt.Errorf("%w: polygon %d has no rings", ErrInvalidGeometry, pi)
		}
		for ri, ring := range poly {
			if err := validateRing(ring); err != nil {
				return fmt.Errorf("%w: polygon %d ring %d: %v", ErrInvalidGeometry, pi, ri, err)
			}
		}
	}
	return nil
}

func validateRing(ring orb.Ring) error {
	if len(ring) < 4 {
		return errors.New("fewer than 4 points")
	}
	if !ring.Closed() {
		return errors.New("not closed")
	}
	if planar.Area(ring) == 0 {
		return errors.New("zero area")
	}

	n := len(ring) - 1
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			// adjacent segments share an endpoint, including the closing pair
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			if segmentsIntersect(ring[i], ring[i+1], ring[j], ring[j+1]) {
				return fmt.Errorf("self-intersection at segments %d and %d", i, j)
			}
		}
	}
	return nil
}

func segmentsIntersect(a, b, c, d orb.Point) bool {
	o1 := orientation(a, b, c)
	o2 := orientation(a, b, d)
	o3 := orientation(c, d, a)
	o4 := orientation(c, d, b)

	if o1 != o2 && o3 != o4 {
		return true
	}

	switch {
	case o1 == 0 && onSegment(a, c, b):
		return true
	case o2 == 0 && onSegment(a, d, b):
		return true
	case o3 == 0 && onSegment(c, a, d):
		return true
	case o4 == 0 && onSegment(c, b, d):
		return true
	}
	return false
}

func orientation(p, q, r orb.Point) int {
	v := (q[1]-p[1])*(r[0]-q[0]) - (q[0]-p[0])*(r[1]-q[1])
	switch {
	case v > 0:
		return 1
	case v < 0:
		return 2
	default:
		return 0
	}
}

// onSegment reports whether q lies on segment pr, given the three are collinear.
func onSegment(p, q, r orb.Point) bool {
	return q[0] <= max(p[0], r[0]) && q[0] >= min(p[0], r[0]) &&
		q[1] <= max(p[1], r[1]) && q[1] >= min(p[1], r[1])
}

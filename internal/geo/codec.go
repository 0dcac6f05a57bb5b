package geo

import (
	"fmt"
	"math/rand"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/paulmach/orb/planar"
)

// Geometries cross the database boundary as WKB: written with
// ST_SetSRID(ST_GeomFromWKB($n), 5179) and read back with ST_AsBinary.

func MarshalWKB(g orb.Geometry) ([]byte, error) {
	return wkb.Marshal(g)
}

func UnmarshalMultiPolygon(b []byte) (orb.MultiPolygon, error) {
	g, err := wkb.Unmarshal(b)
	if err != nil {
		return nil, err
	}
	return ToMultiPolygon(g)
}

func UnmarshalPoint(b []byte) (orb.Point, error) {
	g, err := wkb.Unmarshal(b)
	if err != nil {
		return orb.Point{}, err
	}
	p, ok := g.(orb.Point)
	if !ok {
		return orb.Point{}, fmt.Errorf("%w: expected point, got %s", ErrInvalidGeometry, g.GeoJSONType())
	}
	return p, nil
}

// RepresentativePoint returns a point guaranteed to lie inside mp. It tries
// the centroid of the largest polygon first and falls back to sampling its
// bounding box.
func RepresentativePoint(mp orb.MultiPolygon, rnd *rand.Rand) (orb.Point, bool) {
	var (
		largest orb.Polygon
		area    float64
	)
	for _, poly := range mp {
		if a := planar.Area(poly); a > area {
			largest, area = poly, a
		}
	}
	if largest == nil {
		return orb.Point{}, false
	}

	if c, _ := planar.CentroidArea(largest); planar.PolygonContains(largest, c) {
		return c, true
	}

	if rnd == nil {
		rnd = rand.New(rand.NewSource(1))
	}
	b := largest.Bound()
	for i := 0; i < 256; i++ {
		p := orb.Point{
			b.Min[0] + rnd.Float64()*(b.Max[0]-b.Min[0]),
			b.Min[1] + rnd.Float64()*(b.Max[1]-b.Min[1]),
		}
		if planar.PolygonContains(largest, p) {
			return p, true
		}
	}
	return orb.Point{}, false
}

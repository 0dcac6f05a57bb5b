package geo

import (
	"fmt"
	"strconv"
	"strings"

	"jobboard/internal/domain/region"

	"github.com/paulmach/orb/geojson"
)

// PropertyKeys names the feature properties holding district codes and names.
type PropertyKeys struct {
	CityNo       string `yaml:"city_no"`
	CityName     string `yaml:"city_name"`
	DistrictNo   string `yaml:"district_no"`
	DistrictName string `yaml:"district_name"`
	TownNo       string `yaml:"town_no"`
	TownName     string `yaml:"town_name"`
}

// DefaultPropertyKeys matches the administrative boundary export the import
// job is normally fed.
var DefaultPropertyKeys = PropertyKeys{
	CityNo:       "CITY_NO",
	CityName:     "CITY_NAME",
	DistrictNo:   "DIST_NO",
	DistrictName: "DIST_NAME",
	TownNo:       "EMD_NO",
	TownName:     "EMD_NAME",
}

// DecodeDistricts parses a GeoJSON FeatureCollection whose geometries are
// already in EPSG:5179. Every feature must carry all six properties and a
// valid (multi)polygon; the first offending feature aborts the decode.
func DecodeDistricts(data []byte, keys PropertyKeys) ([]region.District, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	out := make([]region.District, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f == nil {
			continue
		}

		d := region.District{}
		var missing []string
		get := func(key string) string {
			v := propString(f.Properties, key)
			if v == "" {
				missing = append(missing, key)
			}
			return v
		}
		d.CityNo = get(keys.CityNo)
		d.CityName = get(keys.CityName)
		d.DistrictNo = get(keys.DistrictNo)
		d.DistrictName = get(keys.DistrictName)
		d.TownNo = get(keys.TownNo)
		d.TownName = get(keys.TownName)
		if len(missing) > 0 {
			return nil, fmt.Errorf("feature %d: missing properties: %s", i, strings.Join(missing, ", "))
		}

		mp, err := ToMultiPolygon(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("feature %d (town %s): %w", i, d.TownNo, err)
		}
		if err := ValidateMultiPolygon(mp); err != nil {
			return nil, fmt.Errorf("feature %d (town %s): %w", i, d.TownNo, err)
		}
		d.Geometry = mp

		out = append(out, d)
	}
	return out, nil
}

// propString reads a property as text. Shapefile conversions often emit
// numeric codes, so numbers are formatted without a fraction.
func propString(p geojson.Properties, key string) string {
	if p == nil || key == "" {
		return ""
	}
	switch v := p[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

package region

import "github.com/paulmach/orb"

// District is one town (읍면동) boundary with the codes and names of its
// parents. TownNo is unique across all districts.
type District struct {
	ID           int64
	CityNo       string
	CityName     string
	DistrictNo   string
	DistrictName string
	TownNo       string
	TownName     string
	Geometry     orb.MultiPolygon
}

// Row is the geometry-free projection used to build the region tree.
type Row struct {
	CityNo       string
	CityName     string
	DistrictNo   string
	DistrictName string
	TownNo       string
	TownName     string
}

func (d District) Row() Row {
	return Row{
		CityNo:       d.CityNo,
		CityName:     d.CityName,
		DistrictNo:   d.DistrictNo,
		DistrictName: d.DistrictName,
		TownNo:       d.TownNo,
		TownName:     d.TownName,
	}
}

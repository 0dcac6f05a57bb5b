// Package hierarchy builds the region and job-category trees used to populate
// search filters and keeps them in the cache.
package hierarchy

import "jobboard/internal/domain/region"

type Town struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type District struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Towns []Town `json:"towns"`
}

type City struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Districts []District `json:"districts"`
}

// RegionTree is city → district → town in first-seen order.
type RegionTree []City

type JobSubcategory struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type JobCategory struct {
	ID       string           `json:"id" yaml:"id"`
	Name     string           `json:"name" yaml:"name"`
	Children []JobSubcategory `json:"children" yaml:"children"`
}

type JobTree []JobCategory

type districtNode struct {
	District
	towns map[string]struct{}
}

type cityNode struct {
	City
	order     []*districtNode
	districts map[string]*districtNode
}

// BuildRegionTree groups rows by city code, then district code, in the order
// codes are first seen. A town code appearing twice under the same district
// is kept once.
func BuildRegionTree(rows []region.Row) RegionTree {
	var order []*cityNode
	cities := map[string]*cityNode{}

	for _, r := range rows {
		c, ok := cities[r.CityNo]
		if !ok {
			c = &cityNode{
				City:      City{ID: r.CityNo, Name: r.CityName},
				districts: map[string]*districtNode{},
			}
			cities[r.CityNo] = c
			order = append(order, c)
		}

		d, ok := c.districts[r.DistrictNo]
		if !ok {
			d = &districtNode{
				District: District{ID: r.DistrictNo, Name: r.DistrictName, Towns: []Town{}},
				towns:    map[string]struct{}{},
			}
			c.districts[r.DistrictNo] = d
			c.order = append(c.order, d)
		}

		if _, dup := d.towns[r.TownNo]; dup {
			continue
		}
		d.towns[r.TownNo] = struct{}{}
		d.Towns = append(d.Towns, Town{ID: r.TownNo, Name: r.TownName})
	}

	tree := make(RegionTree, 0, len(order))
	for _, c := range order {
		city := c.City
		city.Districts = make([]District, 0, len(c.order))
		for _, d := range c.order {
			city.Districts = append(city.Districts, d.District)
		}
		tree = append(tree, city)
	}
	return tree
}

// TownCount is the number of town leaves in t.
func (t RegionTree) TownCount() int {
	n := 0
	for _, c := range t {
		for _, d := range c.Districts {
			n += len(d.Towns)
		}
	}
	return n
}

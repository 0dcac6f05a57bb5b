package search

import "jobboard/internal/domain/region"

// RegionFilter selects Districts by code. With MatchAll unset a District is
// selected when any supplied dimension matches it; with MatchAll set every
// supplied dimension must match.
type RegionFilter struct {
	CityNos     []string
	DistrictNos []string
	TownNos     []string
	MatchAll    bool
}

func (q Query) RegionFilter(matchAll bool) RegionFilter {
	return RegionFilter{
		CityNos:     q.CityNos,
		DistrictNos: q.DistrictNos,
		TownNos:     q.TownNos,
		MatchAll:    matchAll,
	}
}

func (f RegionFilter) IsEmpty() bool {
	return len(f.CityNos) == 0 && len(f.DistrictNos) == 0 && len(f.TownNos) == 0
}

func (f RegionFilter) Matches(r region.Row) bool {
	if f.IsEmpty() {
		return false
	}

	type dim struct {
		codes []string
		value string
	}
	dims := []dim{
		{f.CityNos, r.CityNo},
		{f.DistrictNos, r.DistrictNo},
		{f.TownNos, r.TownNo},
	}

	for _, d := range dims {
		if len(d.codes) == 0 {
			continue
		}
		hit := contains(d.codes, d.value)
		if f.MatchAll && !hit {
			return false
		}
		if !f.MatchAll && hit {
			return true
		}
	}
	return f.MatchAll
}

// Constrain applies the region stage to p using the Districts selected by f.
// City and district codes become name-membership clauses over the
// denormalized posting columns. Town codes turn on the geofence over every
// selected District. A code dimension that selects nothing makes the whole
// predicate match nothing.
func (p Predicate) Constrain(f RegionFilter, matched []region.District, radius float64) Predicate {
	if f.IsEmpty() {
		return p
	}

	out := p
	out.Clauses = append([]Clause(nil), p.Clauses...)

	if len(f.CityNos) > 0 {
		names := namesFor(matched, f.CityNos, func(r region.Row) (string, string) { return r.CityNo, r.CityName })
		if len(names) == 0 {
			out.None = true
		}
		out.Clauses = append(out.Clauses, Clause{Field: FieldCity, Op: OpIn, Values: names})
	}

	if len(f.DistrictNos) > 0 {
		names := namesFor(matched, f.DistrictNos, func(r region.Row) (string, string) { return r.DistrictNo, r.DistrictName })
		if len(names) == 0 {
			out.None = true
		}
		out.Clauses = append(out.Clauses, Clause{Field: FieldDistrict, Op: OpIn, Values: names})
	}

	if len(f.TownNos) > 0 {
		ids := make([]int64, 0, len(matched))
		for _, d := range matched {
			ids = append(ids, d.ID)
		}
		if len(ids) == 0 {
			out.None = true
		}
		out.Fence = &Fence{DistrictIDs: ids, Radius: radius}
	}

	return out
}

func namesFor(districts []region.District, codes []string, pick func(region.Row) (code, name string)) []string {
	out := make([]string, 0)
	seen := map[string]struct{}{}
	for _, d := range districts {
		code, name := pick(d.Row())
		if !contains(codes, code) {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

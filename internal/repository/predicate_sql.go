package repository

import (
	"fmt"
	"strconv"
	"strings"

	"jobboard/internal/search"
)

// postingColumns whitelists the columns a clause may reference.
var postingColumns = map[search.Field]string{
	search.FieldCity:           "jp.city",
	search.FieldDistrict:       "jp.district",
	search.FieldWorkDay:        "jp.work_day",
	search.FieldPostingType:    "jp.posting_type",
	search.FieldEmploymentType: "jp.employment_type",
	search.FieldEducation:      "jp.education",
	search.FieldJobKeywordMain: "jp.job_keyword_main",
	search.FieldJobKeywordSub:  "jp.job_keyword_sub",
	search.FieldWorkExperience: "jp.work_experience",
	search.FieldDayDiscussion:  "jp.day_discussion",
}

type sqlArgs struct {
	values []any
}

func (a *sqlArgs) add(v any) string {
	a.values = append(a.values, v)
	return "$" + strconv.Itoa(len(a.values))
}

// compileWhere renders p as a WHERE body over job_postings jp joined with
// companies c. The geofence is one spatial predicate: the union of the fence
// districts, buffered once, tested with ST_DWithin at distance 0 so the GiST
// index on jp.location applies.
func compileWhere(p search.Predicate, args *sqlArgs) (string, error) {
	if p.None {
		return "FALSE", nil
	}

	var conds []string
	for _, c := range p.Clauses {
		col, ok := postingColumns[c.Field]
		if !ok {
			return "", fmt.Errorf("unknown filter field %q", c.Field)
		}
		switch c.Op {
		case search.OpIn:
			conds = append(conds, col+" = ANY("+args.add(c.Values)+"::text[])")
		case search.OpOverlap:
			conds = append(conds, col+" && "+args.add(c.Values)+"::text[]")
		case search.OpIsTrue:
			conds = append(conds, col+" = TRUE")
		default:
			return "", fmt.Errorf("unsupported filter op %s", c.Op)
		}
	}

	if p.Text != "" {
		ph := args.add("%" + escapeLike(p.Text) + "%")
		conds = append(conds, fmt.Sprintf(
			`(jp.job_posting_title ILIKE %[1]s ESCAPE '\' OR jp.summary ILIKE %[1]s ESCAPE '\' OR c.company_name ILIKE %[1]s ESCAPE '\')`,
			ph,
		))
	}

	if p.Fence != nil {
		ids := args.add(p.Fence.DistrictIDs)
		radius := args.add(p.Fence.Radius)
		conds = append(conds, fmt.Sprintf(
			`ST_DWithin(jp.location, (SELECT ST_Buffer(ST_Union(d.geometry), %s) FROM districts d WHERE d.id = ANY(%s::bigint[])), 0)`,
			radius, ids,
		))
	}

	if len(conds) == 0 {
		return "TRUE", nil
	}
	return strings.Join(conds, " AND "), nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

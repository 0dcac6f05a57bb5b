package search

import (
	"strings"

	"jobboard/internal/domain/posting"
	"jobboard/internal/geo"

	"github.com/paulmach/orb"
)

// Candidate is what a predicate is evaluated against in process.
type Candidate struct {
	Posting     posting.Posting
	CompanyName string
}

// Evaluator runs a Predicate in process, for stores that are not SQL backed.
type Evaluator struct {
	p     Predicate
	fence geo.Geofence
}

// NewEvaluator prepares p. areas are the boundaries of p.Fence.DistrictIDs and
// are ignored when p has no fence.
func NewEvaluator(p Predicate, areas []orb.MultiPolygon) Evaluator {
	e := Evaluator{p: p}
	if p.Fence != nil {
		e.fence = geo.NewGeofence(areas, p.Fence.Radius)
	}
	return e
}

func (e Evaluator) Match(c Candidate) bool {
	if e.p.None {
		return false
	}
	for _, cl := range e.p.Clauses {
		if !matchClause(cl, c.Posting) {
			return false
		}
	}
	if e.p.Text != "" && !matchText(e.p.Text, c) {
		return false
	}
	if e.p.Fence != nil && !e.fence.Contains(c.Posting.Location) {
		return false
	}
	return true
}

func matchClause(cl Clause, p posting.Posting) bool {
	switch cl.Op {
	case OpIn:
		return contains(cl.Values, scalarValue(cl.Field, p))
	case OpOverlap:
		for _, v := range setValue(cl.Field, p) {
			if contains(cl.Values, v) {
				return true
			}
		}
		return false
	case OpIsTrue:
		return boolValue(cl.Field, p)
	default:
		return false
	}
}

func scalarValue(f Field, p posting.Posting) string {
	switch f {
	case FieldCity:
		return p.City
	case FieldDistrict:
		return p.District
	case FieldPostingType:
		return p.PostingType
	case FieldEmploymentType:
		return p.EmploymentType
	case FieldEducation:
		return p.Education
	case FieldJobKeywordMain:
		return p.JobKeywordMain
	case FieldWorkExperience:
		return p.WorkExperience
	default:
		return ""
	}
}

func setValue(f Field, p posting.Posting) []string {
	switch f {
	case FieldWorkDay:
		return p.WorkDay
	case FieldJobKeywordSub:
		return p.JobKeywordSub
	default:
		return nil
	}
}

func boolValue(f Field, p posting.Posting) bool {
	switch f {
	case FieldDayDiscussion:
		return p.DayDiscussion
	default:
		return false
	}
}

func matchText(term string, c Candidate) bool {
	term = strings.ToLower(term)
	for _, s := range []string{c.Posting.Title, c.Posting.Summary, c.CompanyName} {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

package search

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxListValues   = 50
	maxValueLength  = 50
	maxSearchLength = 100

	msgInvalidUTF8 = "must be valid UTF-8"
)

// Params is the raw filter input: repeated query parameters keyed by name.
// Keys may carry the "[]" suffix browsers add to repeated fields.
type Params map[string][]string

// Query is a validated search request. Every list is non-nil; an empty list
// places no constraint on its dimension.
type Query struct {
	CityNos     []string
	DistrictNos []string
	TownNos     []string

	WorkDays        []string
	PostingTypes    []string
	EmploymentTypes []string
	Educations      []string
	JobKeywordMains []string
	JobKeywordSubs  []string
	WorkExperiences []string

	Search        string
	DayDiscussion bool

	// Page is the requested 1-based page; the paginator clamps it.
	Page int
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every offending field of a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "invalid search query"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid search query: " + strings.Join(parts, "; ")
}

var codeRe = regexp.MustCompile(`^[0-9A-Za-z_-]+$`)

type listField struct {
	name   string
	code   bool
	target func(q *Query) *[]string
}

var listFields = []listField{
	{name: "city_no", code: true, target: func(q *Query) *[]string { return &q.CityNos }},
	{name: "district_no", code: true, target: func(q *Query) *[]string { return &q.DistrictNos }},
	{name: "town_no", code: true, target: func(q *Query) *[]string { return &q.TownNos }},
	{name: "work_day", target: func(q *Query) *[]string { return &q.WorkDays }},
	{name: "posting_type", target: func(q *Query) *[]string { return &q.PostingTypes }},
	{name: "employment_type", target: func(q *Query) *[]string { return &q.EmploymentTypes }},
	{name: "education", target: func(q *Query) *[]string { return &q.Educations }},
	{name: "job_keyword_main", target: func(q *Query) *[]string { return &q.JobKeywordMains }},
	{name: "job_keyword_sub", target: func(q *Query) *[]string { return &q.JobKeywordSubs }},
	{name: "work_experience", target: func(q *Query) *[]string { return &q.WorkExperiences }},
}

// Parse validates raw into a Query. It never stops at the first problem: the
// returned *ValidationError names every invalid field. Unknown parameters are
// ignored.
func Parse(raw Params) (Query, error) {
	in := normalizeKeys(raw)

	q := Query{Page: 1}
	var errs []FieldError
	fail := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Message: msg})
	}

	for _, f := range listFields {
		values, msg := parseList(in[f.name], f.code)
		if msg != "" {
			fail(f.name, msg)
		}
		*f.target(&q) = values
	}

	if v, ok := single(in, "search"); !ok {
		fail("search", "expected a single value")
	} else {
		v = strings.TrimSpace(v)
		if !utf8.ValidString(v) {
			fail("search", msgInvalidUTF8)
		} else if utf8.RuneCountInString(v) > maxSearchLength {
			fail("search", "must be at most 100 characters")
		} else {
			q.Search = v
		}
	}

	if v, ok := single(in, "day_discussion"); !ok {
		fail("day_discussion", "expected a single value")
	} else {
		q.DayDiscussion = v == "true"
	}

	if v, ok := single(in, "page"); !ok {
		fail("page", "expected a single value")
	} else {
		q.Page = ParsePage(v)
	}

	if len(errs) > 0 {
		return Query{}, &ValidationError{Fields: errs}
	}
	return q, nil
}

// normalizeKeys folds "name[]" into "name", keeping values from both spellings.
func normalizeKeys(raw Params) Params {
	out := make(Params, len(raw))
	for k, vs := range raw {
		k = strings.TrimSuffix(strings.TrimSpace(k), "[]")
		out[k] = append(out[k], vs...)
	}
	return out
}

func single(in Params, key string) (string, bool) {
	vs := in[key]
	switch len(vs) {
	case 0:
		return "", true
	case 1:
		return vs[0], true
	default:
		return "", false
	}
}

func parseList(raw []string, code bool) ([]string, string) {
	if len(raw) > maxListValues {
		return []string{}, "must have at most 50 values"
	}

	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, v := range raw {
		v = strings.TrimSpace(v)
		switch {
		case v == "":
			return []string{}, "must not contain blank values"
		case !utf8.ValidString(v):
			return []string{}, msgInvalidUTF8
		case utf8.RuneCountInString(v) > maxValueLength:
			return []string{}, "values must be at most 50 characters"
		case code && !codeRe.MatchString(v):
			return []string{}, "must contain region codes"
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, ""
}

// HasRegion reports whether any region code was supplied.
func (q Query) HasRegion() bool {
	return len(q.CityNos) > 0 || len(q.DistrictNos) > 0 || len(q.TownNos) > 0
}

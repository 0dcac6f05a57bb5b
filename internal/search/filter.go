package search

// Field names a filterable posting attribute. The values double as the
// posting column names.
type Field string

const (
	FieldCity           Field = "city"
	FieldDistrict       Field = "district"
	FieldWorkDay        Field = "work_day"
	FieldPostingType    Field = "posting_type"
	FieldEmploymentType Field = "employment_type"
	FieldEducation      Field = "education"
	FieldJobKeywordMain Field = "job_keyword_main"
	FieldJobKeywordSub  Field = "job_keyword_sub"
	FieldWorkExperience Field = "work_experience"
	FieldDayDiscussion  Field = "day_discussion"
)

type Op int

const (
	// OpIn matches a scalar attribute equal to one of Values.
	OpIn Op = iota
	// OpOverlap matches a set attribute sharing at least one element with Values.
	OpOverlap
	// OpIsTrue matches a boolean attribute that is true. Values is unused.
	OpIsTrue
)

func (o Op) String() string {
	switch o {
	case OpIn:
		return "in"
	case OpOverlap:
		return "overlap"
	case OpIsTrue:
		return "is_true"
	default:
		return "unknown"
	}
}

type Clause struct {
	Field  Field
	Op     Op
	Values []string
}

// Fence restricts postings to the buffered union of the listed districts.
type Fence struct {
	DistrictIDs []int64
	Radius      float64
}

// Predicate is the conjunction of Clauses, the text clause and the fence.
// The zero value matches every posting.
type Predicate struct {
	Clauses []Clause

	// Text, when set, must be contained (case-insensitively) in the title,
	// the summary or the company name.
	Text string

	Fence *Fence

	// None is set when the region stage resolved to nothing; the predicate
	// then matches no posting and the store need not be queried.
	None bool
}

// IsUniversal reports whether p places no constraint at all.
func (p Predicate) IsUniversal() bool {
	return len(p.Clauses) == 0 && p.Text == "" && p.Fence == nil && !p.None
}

type builder func(q Query) (Clause, bool)

func in(field Field, values func(q Query) []string) builder {
	return func(q Query) (Clause, bool) {
		vs := values(q)
		if len(vs) == 0 {
			return Clause{}, false
		}
		return Clause{Field: field, Op: OpIn, Values: vs}, true
	}
}

func overlap(field Field, values func(q Query) []string) builder {
	return func(q Query) (Clause, bool) {
		vs := values(q)
		if len(vs) == 0 {
			return Clause{}, false
		}
		return Clause{Field: field, Op: OpOverlap, Values: vs}, true
	}
}

func dayDiscussion(q Query) (Clause, bool) {
	if !q.DayDiscussion {
		return Clause{}, false
	}
	return Clause{Field: FieldDayDiscussion, Op: OpIsTrue}, true
}

var attributeBuilders = []builder{
	overlap(FieldWorkDay, func(q Query) []string { return q.WorkDays }),
	in(FieldPostingType, func(q Query) []string { return q.PostingTypes }),
	in(FieldEmploymentType, func(q Query) []string { return q.EmploymentTypes }),
	in(FieldEducation, func(q Query) []string { return q.Educations }),
	in(FieldJobKeywordMain, func(q Query) []string { return q.JobKeywordMains }),
	overlap(FieldJobKeywordSub, func(q Query) []string { return q.JobKeywordSubs }),
	in(FieldWorkExperience, func(q Query) []string { return q.WorkExperiences }),
	dayDiscussion,
}

// Compile builds the attribute predicate of q. Region codes are not handled
// here; see Predicate.Constrain.
func Compile(q Query) Predicate {
	p := Predicate{Text: q.Search}
	for _, b := range attributeBuilders {
		if c, ok := b(q); ok {
			p.Clauses = append(p.Clauses, c)
		}
	}
	return p
}

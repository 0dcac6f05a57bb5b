package posting

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

var ErrNotFound = errors.New("job posting not found")

type Company struct {
	ID        uuid.UUID
	Name      string
	Logo      *string
	CreatedAt time.Time
}

// Posting is a job posting as stored. City, District and Town are copied from
// the District that contains Location when the posting is written.
type Posting struct {
	ID      uuid.UUID
	Title   string
	Address string

	City     string
	District string
	Town     string
	Location orb.Point

	WorkTimeStart time.Time
	WorkTimeEnd   time.Time

	PostingType    string
	EmploymentType string
	WorkExperience string
	JobKeywordMain string
	JobKeywordSub  []string
	Education      string

	NumberOfPositions int
	CompanyID         uuid.UUID
	Deadline          time.Time

	TimeDiscussion bool
	DayDiscussion  bool
	WorkDay        []string

	SalaryType string
	Salary     int

	Summary string
	Content *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Listing is the search row: posting columns joined with its company.
type Listing struct {
	ID          uuid.UUID
	Title       string
	City        string
	District    string
	Summary     string
	Deadline    time.Time
	CompanyName string
	CompanyLogo *string
	CreatedAt   time.Time
}

// Detail is a posting with its company, as shown on the detail page.
type Detail struct {
	Posting
	CompanyName string
	CompanyLogo *string
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type LocationResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PostingDetailResponse struct {
	JobPostingID    uuid.UUID        `json:"job_posting_id"`
	JobPostingTitle string           `json:"job_posting_title"`
	Address         string           `json:"address"`
	City            string           `json:"city"`
	District        string           `json:"district"`
	Town            string           `json:"town"`
	Location        LocationResponse `json:"location"`

	WorkTimeStart string   `json:"work_time_start"`
	WorkTimeEnd   string   `json:"work_time_end"`
	WorkDay       []string `json:"work_day"`

	PostingType       string   `json:"posting_type"`
	EmploymentType    string   `json:"employment_type"`
	WorkExperience    string   `json:"work_experience"`
	JobKeywordMain    string   `json:"job_keyword_main"`
	JobKeywordSub     []string `json:"job_keyword_sub"`
	Education         string   `json:"education"`
	NumberOfPositions int      `json:"number_of_positions"`

	Deadline       string `json:"deadline"`
	TimeDiscussion bool   `json:"time_discussion"`
	DayDiscussion  bool   `json:"day_discussion"`
	SalaryType     string `json:"salary_type"`
	Salary         int    `json:"salary"`

	Summary string  `json:"summary"`
	Content *string `json:"content"`

	CompanyID    uuid.UUID `json:"company_id"`
	CompanyName  string    `json:"company_name"`
	CompanyLogo  *string   `json:"company_logo"`
	IsBookmarked bool      `json:"is_bookmarked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

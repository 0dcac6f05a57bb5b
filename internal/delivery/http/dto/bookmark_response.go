package dto

import (
	"time"

	"github.com/google/uuid"
)

type BookmarkResponse struct {
	BookmarkID      int64     `json:"bookmark_id"`
	JobPostingID    uuid.UUID `json:"job_posting_id"`
	JobPostingTitle string    `json:"job_posting_title"`
	Summary         string    `json:"summary"`
	Deadline        string    `json:"deadline"`
	CompanyName     string    `json:"company_name"`
	CompanyLogo     *string   `json:"company_logo"`
	CreatedAt       time.Time `json:"created_at"`
}

type BookmarkToggleResponse struct {
	JobPostingID uuid.UUID `json:"job_posting_id"`
	IsBookmarked bool      `json:"is_bookmarked"`
}

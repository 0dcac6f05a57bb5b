package dto

import "github.com/google/uuid"

// DateLayout is the layout of deadline dates in responses.
const DateLayout = "2006-01-02"

type SearchResultResponse struct {
	JobPostingID    uuid.UUID `json:"job_posting_id"`
	JobPostingTitle string    `json:"job_posting_title"`
	City            string    `json:"city"`
	District        string    `json:"district"`
	Summary         string    `json:"summary"`
	Deadline        string    `json:"deadline"`
	IsBookmarked    bool      `json:"is_bookmarked"`
	CompanyName     string    `json:"company_name"`
	CompanyLogo     *string   `json:"company_logo"`
}

type SearchResponse struct {
	Results      []SearchResultResponse `json:"results"`
	Page         int                    `json:"page"`
	TotalPages   int                    `json:"total_pages"`
	TotalResults int                    `json:"total_results"`
}

package handler

import (
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type PostingHandler struct {
	uc usecase.PostingUsecase
}

func NewPostingHandler(uc usecase.PostingUsecase) *PostingHandler {
	return &PostingHandler{uc: uc}
}

func (h *PostingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/postings/:id", h.Detail)
}

func (h *PostingHandler) Detail(c fiber.Ctx) error {
	id, err := postingIDParam(c)
	if err != nil {
		return err
	}

	d, err := h.uc.Detail(c.Context(), id, middleware.Viewer(c))
	if err != nil {
		return mapUsecaseError(err, "Job posting not found")
	}

	workDay := d.WorkDay
	if workDay == nil {
		workDay = []string{}
	}
	subs := d.JobKeywordSub
	if subs == nil {
		subs = []string{}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.PostingDetailResponse{
		JobPostingID:      d.ID,
		JobPostingTitle:   d.Title,
		Address:           d.Address,
		City:              d.City,
		District:          d.District,
		Town:              d.Town,
		Location:          dto.LocationResponse{X: d.Location.X(), Y: d.Location.Y()},
		WorkTimeStart:     formatClock(d.WorkTimeStart),
		WorkTimeEnd:       formatClock(d.WorkTimeEnd),
		WorkDay:           workDay,
		PostingType:       d.PostingType,
		EmploymentType:    d.EmploymentType,
		WorkExperience:    d.WorkExperience,
		JobKeywordMain:    d.JobKeywordMain,
		JobKeywordSub:     subs,
		Education:         d.Education,
		NumberOfPositions: d.NumberOfPositions,
		Deadline:          formatDate(d.Deadline),
		TimeDiscussion:    d.TimeDiscussion,
		DayDiscussion:     d.DayDiscussion,
		SalaryType:        d.SalaryType,
		Salary:            d.Salary,
		Summary:           d.Summary,
		Content:           d.Content,
		CompanyID:         d.CompanyID,
		CompanyName:       d.CompanyName,
		CompanyLogo:       d.CompanyLogo,
		IsBookmarked:      d.IsBookmarked,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	})
}

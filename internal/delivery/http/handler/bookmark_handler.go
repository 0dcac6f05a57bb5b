package handler

import (
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type BookmarkHandler struct {
	uc usecase.BookmarkUsecase
}

func NewBookmarkHandler(uc usecase.BookmarkUsecase) *BookmarkHandler {
	return &BookmarkHandler{uc: uc}
}

// RegisterRoutes expects r to reject anonymous requests already.
func (h *BookmarkHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("", h.List)
	r.Post("/:id", h.Add)
	r.Delete("/:id", h.Remove)
}

func (h *BookmarkHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), middleware.Viewer(c))
	if err != nil {
		return mapUsecaseError(err, "Bookmark not found")
	}

	out := make([]dto.BookmarkResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.BookmarkResponse{
			BookmarkID:      it.ID,
			JobPostingID:    it.PostingID,
			JobPostingTitle: it.Title,
			Summary:         it.Summary,
			Deadline:        formatDate(it.Deadline),
			CompanyName:     it.CompanyName,
			CompanyLogo:     it.CompanyLogo,
			CreatedAt:       it.CreatedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *BookmarkHandler) Add(c fiber.Ctx) error {
	id, err := postingIDParam(c)
	if err != nil {
		return err
	}

	created, err := h.uc.Add(c.Context(), middleware.Viewer(c), id)
	if err != nil {
		return mapUsecaseError(err, "Job posting not found")
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return response.Success(c, status, "", dto.BookmarkToggleResponse{JobPostingID: id, IsBookmarked: true})
}

func (h *BookmarkHandler) Remove(c fiber.Ctx) error {
	id, err := postingIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.Remove(c.Context(), middleware.Viewer(c), id); err != nil {
		return mapUsecaseError(err, "Bookmark not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.BookmarkToggleResponse{JobPostingID: id, IsBookmarked: false})
}

package handler

import (
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// HierarchyHandler serves the filter trees. They are read from the cache
// only; an unbuilt tree is served as an empty list.
type HierarchyHandler struct {
	uc usecase.HierarchyUsecase
}

func NewHierarchyHandler(uc usecase.HierarchyUsecase) *HierarchyHandler {
	return &HierarchyHandler{uc: uc}
}

func (h *HierarchyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/search/region", h.RegionTree)
	r.Get("/search/job", h.JobTree)
}

func (h *HierarchyHandler) RegionTree(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.uc.RegionTree(c.Context()))
}

func (h *HierarchyHandler) JobTree(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.uc.JobTree(c.Context()))
}

package v1

import (
	"jobboard/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterSearch(r fiber.Router, searchHandler *handler.SearchHandler, hierarchyHandler *handler.HierarchyHandler, postingHandler *handler.PostingHandler) {
	if r == nil {
		return
	}

	// the tree routes are static and must win over any future /search/:x
	if hierarchyHandler != nil {
		hierarchyHandler.RegisterRoutes(r)
	}
	if searchHandler != nil {
		searchHandler.RegisterRoutes(r)
	}
	if postingHandler != nil {
		postingHandler.RegisterRoutes(r)
	}
}

package v1

import (
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth      *middleware.ViewerAuth
	Search    *handler.SearchHandler
	Hierarchy *handler.HierarchyHandler
	Posting   *handler.PostingHandler
	Bookmark  *handler.BookmarkHandler
}

// Register mounts the v1 API. Every route resolves the viewer when a
// credential is present; bookmark routes also reject anonymous callers.
func Register(r fiber.Router, h Handlers) {
	if r == nil || h.Auth == nil {
		return
	}

	viewer := r.Group("", h.Auth.Optional())

	RegisterSearch(viewer, h.Search, h.Hierarchy, h.Posting)
	RegisterBookmarks(viewer.Group("/bookmarks", h.Auth.Required()), h.Bookmark)
}

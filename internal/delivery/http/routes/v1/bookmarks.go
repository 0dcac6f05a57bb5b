package v1

import (
	"jobboard/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterBookmarks(r fiber.Router, bookmarkHandler *handler.BookmarkHandler) {
	if r == nil {
		return
	}
	if bookmarkHandler == nil {
		return
	}

	bookmarkHandler.RegisterRoutes(r)
}

package app

import (
	"fmt"
	"log"
	"os"
	"strings"

	"jobboard/internal/config"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/routes"
	v1 "jobboard/internal/delivery/http/routes/v1"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

// New builds the HTTP application over c.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	c, err := NewContainer(cfg, logger, ContainerOptions{Migrate: true})
	if err != nil {
		return nil, nil, err
	}

	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(c.Config.JWT.AccessSecret, c.Config.JWT.AccessExpiresIn)

	searchUC := usecase.NewSearchUsecase(c.Postings, c.Districts, c.Bookmarks, c.Config.Search, c.Logger)
	postingUC := usecase.NewPostingUsecase(c.Postings, c.Bookmarks, c.Logger)
	bookmarkUC := usecase.NewBookmarkUsecase(c.Bookmarks, c.Postings, c.Logger)
	hierarchyUC := usecase.NewHierarchyUsecase(c.Trees, c.Logger)

	health := handler.NewHealthHandler(c.DB, c.Cache)

	routes.NewRegistry(health, v1.Handlers{
		Auth:      middleware.NewViewerAuth(jwtSvc, c.Logger),
		Search:    handler.NewSearchHandler(searchUC),
		Hierarchy: handler.NewHierarchyHandler(hierarchyUC),
		Posting:   handler.NewPostingHandler(postingUC),
		Bookmark:  handler.NewBookmarkHandler(bookmarkUC),
	}).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}

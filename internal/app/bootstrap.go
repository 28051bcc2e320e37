package app

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"

	"jobboard/internal/config"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/routes"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c.Logger)

	registry := routes.NewRegistry(routes.Deps{
		Config: c.Config,
		DB:     c.DB,
		Cache:  c.Cache,
		Hub:    c.Hub,
		Logger: c.Logger,
	})
	registry.Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container, starts the event hub, and returns the app
// plus a cleanup func releasing the container's resources.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	go container.Hub.Run()

	app := New(container)
	return app, container.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(logger)
	app.Use(errMw.Middleware())

	logMw := middleware.NewAccessLogMiddleware(logger)
	app.Use(logMw.Middleware())
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

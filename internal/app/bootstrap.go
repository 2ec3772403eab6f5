package app

import (
	"context"
	"fmt"
	"strings"

	"dev-match/internal/config"
	"dev-match/internal/delivery/http/handler"
	"dev-match/internal/delivery/http/middleware"
	"dev-match/internal/delivery/http/routes"
	"dev-match/internal/pkg/logger"
	"dev-match/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application around an initialised container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)

	validate := handler.NewValidator()
	reg := &routes.Registry{
		Health:   handler.NewHealthHandler(c.DB, c.Cache),
		Evaluate: handler.NewEvaluateHandler(c.Matching, validate),
		Projects: handler.NewProjectHandler(c.Matching),
		Skills:   handler.NewSkillHandler(c.Skills),
		WS:       ws.NewHandler(c.Hub, c.Logger.Named("ws")),
	}
	reg.Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, starts the websocket hub and returns the app
// with a cleanup function that stops both.
func Bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, log *zap.Logger) {
	if app == nil {
		return
	}
	log = logger.OrNop(log)

	app.Use(middleware.NewAccessLogMiddleware(log.Named("http")).Middleware())
	app.Use(middleware.NewErrorMiddleware(log.Named("http")).Middleware())
	app.Use(middleware.CORS())
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

package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/postmodernjester/rolodex/internal/config"
	"github.com/postmodernjester/rolodex/internal/database/migration"
	"github.com/postmodernjester/rolodex/internal/database/schema"
	"github.com/postmodernjester/rolodex/internal/database/seeder"
	"github.com/postmodernjester/rolodex/internal/delivery/http/middleware"
	"github.com/postmodernjester/rolodex/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

const migrateTimeout = 2 * time.Minute

type App struct {
	Fiber *fiber.App
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f}
}

// Bootstrap wires the full application: connects the container, applies
// pending migrations, verifies the schema, and starts the websocket hub.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, *Container, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if err := prepareDatabase(c); err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	go c.Hub.Run()

	return New(c), c, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(c.Logger)
	app.Use(accessMw.Middleware())

	errMw := middleware.NewErrorMiddleware()
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	registry := routes.NewRegistry(c.Config, c.DB, c.Cache, c.Hub, c.Logger)
	registry.Register(app)
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

func prepareDatabase(c *Container) error {
	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	runner := migration.Runner{Dir: "migrations"}
	if err := runner.Run(ctx, c.DB.SQLDB()); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	if err := schema.Verify(ctx, c.DB); err != nil {
		return fmt.Errorf("verify schema: %w", err)
	}

	if c.Config.Database.SeedDemoData {
		r := seeder.Runner{Seeders: seeder.Defaults()}
		if err := r.Run(ctx, c.DB); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		if c.Logger != nil {
			c.Logger.Printf("[Seed] demo data ensured")
		}
	}
	return nil
}

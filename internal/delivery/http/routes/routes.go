package routes

import (
	"log"

	"github.com/postmodernjester/rolodex/internal/config"
	"github.com/postmodernjester/rolodex/internal/database"
	"github.com/postmodernjester/rolodex/internal/delivery/http/handler"
	"github.com/postmodernjester/rolodex/internal/infrastructure/cache"
	"github.com/postmodernjester/rolodex/internal/pkg/jwt"
	"github.com/postmodernjester/rolodex/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	cfg    config.Config
	db     database.DB
	cache  *cache.Redis
	hub    *ws.Hub
	logger *log.Logger
	health *handler.HealthHandler
}

func NewRegistry(cfg config.Config, db database.DB, cacheClient *cache.Redis, hub *ws.Hub, logger *log.Logger) *Registry {
	return &Registry{
		cfg:    cfg,
		db:     db,
		cache:  cacheClient,
		hub:    hub,
		logger: logger,
		health: handler.NewHealthHandler(db, cacheClient),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
	r.registerWS(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.cfg, r.db, r.cache, r.hub, r.logger)
}

// The websocket endpoint authenticates itself from the query string, so
// it sits outside the bearer middleware group.
func (r *Registry) registerWS(app *fiber.App) {
	jwtSvc := jwt.NewHMACService(
		r.cfg.JWT.AccessSecret,
		r.cfg.JWT.RefreshSecret,
		r.cfg.JWT.AccessTTL,
		r.cfg.JWT.RefreshTTL,
	)

	wsHandler := ws.NewHandler(r.hub, jwtSvc, r.logger)
	app.Get("/ws/dossier", wsHandler.HandleDossierWS)
}

package handler

import (
	"context"
	"time"

	"github.com/postmodernjester/rolodex/internal/database"
	"github.com/postmodernjester/rolodex/internal/infrastructure/cache"
	"github.com/postmodernjester/rolodex/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const healthPingTimeout = 2 * time.Second

type HealthHandler struct {
	db    database.DB
	cache *cache.Redis
}

func NewHealthHandler(db database.DB, cacheClient *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, cache: cacheClient}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Check)
}

func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthPingTimeout)
	defer cancel()

	dbState := "up"
	if h.db == nil || h.db.Ping(ctx) != nil {
		dbState = "down"
	}

	// The cache is optional: a failed ping means requests still work,
	// just without caching.
	cacheState := "up"
	if h.cache == nil || h.cache.Ping(ctx) != nil {
		cacheState = "bypass"
	}

	data := map[string]any{
		"database": dbState,
		"cache":    cacheState,
	}

	status := fiber.StatusOK
	msg := response.MessageOK
	if dbState != "up" {
		status = fiber.StatusServiceUnavailable
		msg = "degraded"
	}
	return response.Success(c, status, msg, data)
}

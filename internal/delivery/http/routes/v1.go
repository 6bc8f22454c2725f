package routes

import (
	"log"

	"github.com/postmodernjester/rolodex/internal/config"
	"github.com/postmodernjester/rolodex/internal/database"
	v1 "github.com/postmodernjester/rolodex/internal/delivery/http/routes/v1"
	"github.com/postmodernjester/rolodex/internal/infrastructure/cache"
	"github.com/postmodernjester/rolodex/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, cfg config.Config, db database.DB, cacheClient *cache.Redis, hub *ws.Hub, logger *log.Logger) {
	if r == nil {
		return
	}

	v1.Register(r, cfg, db, cacheClient, hub, logger)
}

package ws

import (
	"log"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"

	"github.com/postmodernjester/rolodex/internal/pkg/jwt"
)

type Handler struct {
	hub    *Hub
	tokens jwt.Service
	logger *log.Logger
}

func NewHandler(hub *Hub, tokens jwt.Service, logger *log.Logger) *Handler {
	return &Handler{hub: hub, tokens: tokens, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleDossierWS upgrades the connection and registers it under the
// authenticated owner. The access token travels in the `token` query
// parameter because browsers cannot set headers on websocket handshakes.
func (h *Handler) HandleDossierWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}

	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		return fiber.ErrUnauthorized
	}
	claims, err := h.tokens.ValidateToken(token)
	if err != nil || claims.TokenType != jwt.TokenTypeAccess {
		return fiber.ErrUnauthorized
	}
	ownerID := claims.UserID

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			if h.logger != nil {
				h.logger.Printf("WS upgrade error | error=%v", err)
			}
			return
		}

		client := NewClient(h.hub, conn, ownerID)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}

package v1

import (
	"github.com/postmodernjester/rolodex/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterContacts(r fiber.Router, contactHandler *handler.ContactHandler, noteHandler *handler.NoteHandler, dossierHandler *handler.DossierHandler) {
	if r == nil {
		return
	}
	if contactHandler == nil {
		return
	}

	contactHandler.RegisterRoutes(r)
	if noteHandler != nil {
		noteHandler.RegisterRoutes(r)
	}
	if dossierHandler != nil {
		dossierHandler.RegisterRoutes(r)
	}
}

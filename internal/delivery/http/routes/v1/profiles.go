package v1

import (
	"github.com/postmodernjester/rolodex/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterProfiles(r fiber.Router, userHandler *handler.UserHandler, profileHandler *handler.ProfileHandler, resumeHandler *handler.ResumeHandler) {
	if r == nil {
		return
	}
	if userHandler == nil {
		return
	}

	userHandler.RegisterRoutes(r)
	if profileHandler != nil {
		profileHandler.RegisterRoutes(r)
	}
	if resumeHandler != nil {
		resumeHandler.RegisterRoutes(r)
	}
}

package v1

import (
	"log"

	"github.com/postmodernjester/rolodex/internal/config"
	"github.com/postmodernjester/rolodex/internal/database"
	"github.com/postmodernjester/rolodex/internal/delivery/http/handler"
	"github.com/postmodernjester/rolodex/internal/delivery/http/middleware"
	"github.com/postmodernjester/rolodex/internal/infrastructure/cache"
	"github.com/postmodernjester/rolodex/internal/infrastructure/narrative"
	"github.com/postmodernjester/rolodex/internal/pkg/jwt"
	"github.com/postmodernjester/rolodex/internal/repository"
	"github.com/postmodernjester/rolodex/internal/usecase"
	"github.com/postmodernjester/rolodex/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, cacheClient *cache.Redis, hub *ws.Hub, logger *log.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTTL,
		cfg.JWT.RefreshTTL,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(db)
	contactRepo := repository.NewPostgresContactRepository(db)
	noteRepo := repository.NewPostgresNoteRepository(db)
	profileRepo := repository.NewPostgresProfileRepository(db)
	resumeRepo := repository.NewPostgresResumeRepository(db)

	narrativeClient := narrative.NewClient(cfg.Narrative, logger)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	userUC := usecase.NewUserUsecase(userRepo)
	contactUC := usecase.NewContactUsecase(contactRepo, profileRepo, cacheClient)
	noteUC := usecase.NewNoteUsecase(noteRepo, contactRepo)
	profileUC := usecase.NewProfileUsecase(profileRepo, cacheClient)
	resumeUC := usecase.NewResumeUsecase(profileRepo, resumeRepo)
	dossierUC := usecase.NewDossierUsecase(contactRepo, noteRepo, profileRepo, resumeRepo, narrativeClient, cacheClient, hub, logger)

	authHandler := handler.NewAuthHandler(authUC)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	RegisterContacts(protected,
		handler.NewContactHandler(contactUC),
		handler.NewNoteHandler(noteUC),
		handler.NewDossierHandler(dossierUC),
	)
	RegisterProfiles(protected,
		handler.NewUserHandler(userUC),
		handler.NewProfileHandler(profileUC),
		handler.NewResumeHandler(resumeUC),
	)
}

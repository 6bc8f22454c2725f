package handler

import (
	"errors"

	"github.com/postmodernjester/rolodex/internal/delivery/http/dto"
	"github.com/postmodernjester/rolodex/internal/delivery/http/middleware"
	"github.com/postmodernjester/rolodex/internal/pkg/response"
	"github.com/postmodernjester/rolodex/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type DossierHandler struct {
	uc usecase.DossierUsecase
}

func NewDossierHandler(uc usecase.DossierUsecase) *DossierHandler {
	return &DossierHandler{uc: uc}
}

func (h *DossierHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/contacts/:id/dossier", h.View)
	r.Post("/contacts/:id/dossier", h.Generate)
}

func (h *DossierHandler) View(c fiber.Ctx) error {
	ownerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	contactID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	view, err := h.uc.View(c.Context(), ownerID, contactID)
	if err != nil {
		return mapDossierUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dossierResponse(view))
}

func (h *DossierHandler) Generate(c fiber.Ctx) error {
	ownerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	contactID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	ct, err := h.uc.Generate(c.Context(), ownerID, contactID)
	if err != nil {
		if errors.Is(err, usecase.ErrInternal) {
			return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to save summary", nil, err)
		}
		return mapDossierUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, contactResponse(ct))
}

func dossierResponse(view usecase.DossierView) dto.DossierResponse {
	notes := make([]dto.NoteResponse, 0, len(view.Notes))
	for _, n := range view.Notes {
		notes = append(notes, noteResponse(n))
	}

	work := make([]dto.WorkEntryResponse, 0, len(view.Work))
	for _, e := range view.Work {
		work = append(work, workEntryResponse(e))
	}

	education := make([]dto.EducationEntryResponse, 0, len(view.Education))
	for _, e := range view.Education {
		education = append(education, educationEntryResponse(e))
	}

	chronicle := make([]dto.ChronicleEntryResponse, 0, len(view.Chronicle))
	for _, e := range view.Chronicle {
		chronicle = append(chronicle, chronicleEntryResponse(e))
	}

	urls := view.URLs
	if urls == nil {
		urls = make([]string, 0)
	}

	res := dto.DossierResponse{
		Contact:   contactResponse(view.Contact),
		Notes:     notes,
		Work:      work,
		Education: education,
		Chronicle: chronicle,
		Display: dto.DisplayResponse{
			Name:        view.Display.Name,
			Headline:    view.Display.Headline,
			Location:    view.Display.Location,
			Website:     view.Display.Website,
			AvatarURL:   view.Display.AvatarURL,
			OpenActions: view.Display.OpenActions,
		},
		URLs: urls,
	}

	if view.Profile != nil {
		res.Profile = &dto.DossierProfileResponse{
			Origin:  string(view.Profile.Origin),
			Profile: profileResponse(view.Profile.Profile),
		}
	}
	return res
}

func mapDossierUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrContactNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Contact not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

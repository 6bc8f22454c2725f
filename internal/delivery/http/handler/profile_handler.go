package handler

import (
	"errors"
	"strings"

	"github.com/postmodernjester/rolodex/internal/delivery/http/dto"
	"github.com/postmodernjester/rolodex/internal/delivery/http/middleware"
	"github.com/postmodernjester/rolodex/internal/domain/profile"
	"github.com/postmodernjester/rolodex/internal/pkg/response"
	"github.com/postmodernjester/rolodex/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

type profileRequest struct {
	FullName  string           `json:"full_name"`
	Headline  string           `json:"headline"`
	Bio       string           `json:"bio"`
	Location  string           `json:"location"`
	Website   string           `json:"website"`
	AvatarURL string           `json:"avatar_url"`
	Skills    []string         `json:"skills"`
	KeyLinks  []keyLinkRequest `json:"key_links"`
}

type keyLinkRequest struct {
	Label   string `json:"label"`
	URL     string `json:"url"`
	Visible bool   `json:"visible"`
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me/profile", h.GetMine)
	r.Put("/me/profile", h.UpsertMine)
	r.Get("/profiles/lookup", h.Lookup)
}

func (h *ProfileHandler) GetMine(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	p, err := h.uc.GetMine(c.Context(), userID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, profileResponse(p))
}

func (h *ProfileHandler) UpsertMine(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req profileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	links := make([]profile.KeyLink, 0, len(req.KeyLinks))
	for _, l := range req.KeyLinks {
		links = append(links, profile.KeyLink{Label: l.Label, URL: l.URL, Visible: l.Visible})
	}

	p, err := h.uc.UpsertMine(c.Context(), userID, usecase.ProfileInput{
		FullName:  req.FullName,
		Headline:  req.Headline,
		Bio:       req.Bio,
		Location:  req.Location,
		Website:   req.Website,
		AvatarURL: req.AvatarURL,
		Skills:    req.Skills,
		KeyLinks:  links,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInternal) {
			return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to save profile", nil, err)
		}
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, profileResponse(p))
}

func (h *ProfileHandler) Lookup(c fiber.Ctx) error {
	if _, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID); !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, nil)
	}

	ref, err := h.uc.Lookup(c.Context(), email)
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	res := dto.ProfileLookupResponse{
		ProfileID: ref.ProfileID,
		FullName:  ref.FullName,
		Headline:  ref.Headline,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func profileResponse(p profile.Profile) dto.ProfileResponse {
	links := make([]dto.KeyLinkResponse, 0, len(p.KeyLinks))
	for _, l := range p.KeyLinks {
		links = append(links, dto.KeyLinkResponse{Label: l.Label, URL: l.URL, Visible: l.Visible})
	}

	return dto.ProfileResponse{
		ID:        p.ID,
		FullName:  p.FullName,
		Headline:  p.Headline,
		Bio:       p.Bio,
		Location:  p.Location,
		Website:   p.Website,
		AvatarURL: p.AvatarURL,
		Skills:    p.Skills,
		KeyLinks:  links,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func mapProfileUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

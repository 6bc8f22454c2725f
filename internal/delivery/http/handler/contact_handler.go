package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/postmodernjester/rolodex/internal/delivery/http/dto"
	"github.com/postmodernjester/rolodex/internal/delivery/http/middleware"
	"github.com/postmodernjester/rolodex/internal/domain/contact"
	"github.com/postmodernjester/rolodex/internal/pkg/response"
	"github.com/postmodernjester/rolodex/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ContactHandler struct {
	uc usecase.ContactUsecase
}

type contactRequest struct {
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	Company          string  `json:"company"`
	Role             string  `json:"role"`
	Location         string  `json:"location"`
	RelationshipType string  `json:"relationship_type"`
	HowWeMet         string  `json:"how_we_met"`
	FollowUpStatus   string  `json:"follow_up_status"`
	LastContactDate  *string `json:"last_contact_date"`
	NextActionDate   *string `json:"next_action_date"`
	NextActionNote   string  `json:"next_action_note"`
}

type linkProfileRequest struct {
	ProfileID string `json:"profile_id"`
}

func NewContactHandler(uc usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

func (h *ContactHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/contacts", h.List)
	r.Post("/contacts", h.Create)
	r.Get("/contacts/:id", h.Get)
	r.Put("/contacts/:id", h.Update)
	r.Delete("/contacts/:id", h.Delete)
	r.Put("/contacts/:id/link", h.LinkProfile)
	r.Delete("/contacts/:id/link", h.UnlinkProfile)
}

func (h *ContactHandler) List(c fiber.Ctx) error {
	ownerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.ListContacts(c.Context(), ownerID, usecase.ListContactsInput{
		Status: c.Query("status"),
		Query:  c.Query("q"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return mapContactUsecaseError(err)
	}

	out := make([]dto.ContactResponse, 0, len(items))
	for _, ct := range items {
		out = append(out, contactResponse(ct))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ContactHandler) Create(c fiber.Ctx) error {
	ownerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req contactRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in, err := req.toInput()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	ct, err := h.uc.CreateContact(c.Context(), ownerID, in)
	if err != nil {
		if errors.Is(err, usecase.ErrInternal) {
			return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to save contact", nil, err)
		}
		return mapContactUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, contactResponse(ct))
}

func (h *ContactHandler) Get(c fiber.Ctx) error {
	ownerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	ct, err := h.uc.GetContact(c.Context(), ownerID, id)
	if err != nil {
		return mapContactUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, contactResponse(ct))
}

func (h *ContactHandler) Update(c fiber.Ctx) error {
	ownerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req contactRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in, err := req.toInput()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	ct, err := h.uc.UpdateContact(c.Context(), ownerID, id, in)
	if err != nil {
		if errors.Is(err, usecase.ErrInternal) {
			return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to save contact", nil, err)
		}
		return mapContactUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, contactResponse(ct))
}

func (h *ContactHandler) Delete(c fiber.Ctx) error {
	ownerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.DeleteContact(c.Context(), ownerID, id); err != nil {
		if errors.Is(err, usecase.ErrInternal) {
			return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to delete contact", nil, err)
		}
		return mapContactUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ContactHandler) LinkProfile(c fiber.Ctx) error {
	ownerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req linkProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	profileID, err := uuid.Parse(strings.TrimSpace(req.ProfileID))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	ct, err := h.uc.LinkProfile(c.Context(), ownerID, id, profileID)
	if err != nil {
		if errors.Is(err, usecase.ErrInternal) {
			return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to save contact", nil, err)
		}
		return mapContactUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, contactResponse(ct))
}

func (h *ContactHandler) UnlinkProfile(c fiber.Ctx) error {
	ownerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	ct, err := h.uc.UnlinkProfile(c.Context(), ownerID, id)
	if err != nil {
		if errors.Is(err, usecase.ErrInternal) {
			return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to save contact", nil, err)
		}
		return mapContactUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, contactResponse(ct))
}

func (r contactRequest) toInput() (usecase.ContactInput, error) {
	lastContact, err := parseDateOnly(r.LastContactDate)
	if err != nil {
		return usecase.ContactInput{}, err
	}
	nextAction, err := parseDateOnly(r.NextActionDate)
	if err != nil {
		return usecase.ContactInput{}, err
	}

	return usecase.ContactInput{
		FullName:         r.FullName,
		Email:            r.Email,
		Phone:            r.Phone,
		Company:          r.Company,
		Role:             r.Role,
		Location:         r.Location,
		RelationshipType: r.RelationshipType,
		HowWeMet:         r.HowWeMet,
		FollowUpStatus:   r.FollowUpStatus,
		LastContactDate:  lastContact,
		NextActionDate:   nextAction,
		NextActionNote:   r.NextActionNote,
	}, nil
}

// parseDateOnly accepts the date-only form used across request bodies.
// Nil and empty values mean "not set".
func parseDateOnly(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func contactResponse(ct contact.Contact) dto.ContactResponse {
	return dto.ContactResponse{
		ID:               ct.ID,
		FullName:         ct.FullName,
		Email:            ct.Email,
		Phone:            ct.Phone,
		Company:          ct.Company,
		Role:             ct.Role,
		Location:         ct.Location,
		RelationshipType: ct.RelationshipType,
		HowWeMet:         ct.HowWeMet,
		FollowUpStatus:   ct.FollowUpStatus,
		LastContactDate:  ct.LastContactDate,
		NextActionDate:   ct.NextActionDate,
		NextActionNote:   ct.NextActionNote,
		AISummary:        ct.AISummary,
		MiniSummary:      ct.MiniSummary,
		LinkedProfileID:  ct.LinkedProfileID,
		CreatedAt:        ct.CreatedAt,
		UpdatedAt:        ct.UpdatedAt,
	}
}

func mapContactUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrContactNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Contact not found", nil, err)
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidFollowUpStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid follow-up status", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

package handler

import (
	"errors"

	"github.com/postmodernjester/rolodex/internal/delivery/http/dto"
	"github.com/postmodernjester/rolodex/internal/delivery/http/middleware"
	"github.com/postmodernjester/rolodex/internal/domain/profile"
	"github.com/postmodernjester/rolodex/internal/pkg/response"
	"github.com/postmodernjester/rolodex/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ResumeHandler struct {
	uc usecase.ResumeUsecase
}

type workEntryRequest struct {
	Company   string  `json:"company"`
	Title     string  `json:"title"`
	Location  string  `json:"location"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	IsCurrent bool    `json:"is_current"`
	Summary   string  `json:"summary"`
	Position  int     `json:"position"`
}

type educationEntryRequest struct {
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	StartYear *int   `json:"start_year"`
	EndYear   *int   `json:"end_year"`
	Note      string `json:"note"`
}

type chronicleEntryRequest struct {
	Title        string  `json:"title"`
	Kind         string  `json:"kind"`
	HappenedOn   *string `json:"happened_on"`
	Description  string  `json:"description"`
	LinkURL      string  `json:"link_url"`
	ShowOnResume bool    `json:"show_on_resume"`
}

func NewResumeHandler(uc usecase.ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me/profile/work", h.ListWork)
	r.Post("/me/profile/work", h.AddWork)
	r.Put("/me/profile/work/:id", h.UpdateWork)
	r.Delete("/me/profile/work/:id", h.DeleteWork)

	r.Get("/me/profile/education", h.ListEducation)
	r.Post("/me/profile/education", h.AddEducation)
	r.Put("/me/profile/education/:id", h.UpdateEducation)
	r.Delete("/me/profile/education/:id", h.DeleteEducation)

	r.Get("/me/profile/chronicle", h.ListChronicle)
	r.Post("/me/profile/chronicle", h.AddChronicle)
	r.Put("/me/profile/chronicle/:id", h.UpdateChronicle)
	r.Delete("/me/profile/chronicle/:id", h.DeleteChronicle)
}

func (h *ResumeHandler) ListWork(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListWork(c.Context(), userID)
	if err != nil {
		return mapResumeUsecaseError(err)
	}

	out := make([]dto.WorkEntryResponse, 0, len(items))
	for _, e := range items {
		out = append(out, workEntryResponse(e))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ResumeHandler) AddWork(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req workEntryRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in, err := req.toInput()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	e, err := h.uc.AddWork(c.Context(), userID, in)
	if err != nil {
		if errors.Is(err, usecase.ErrInternal) {
			return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to save entry", nil, err)
		}
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, workEntryResponse(e))
}

func (h *ResumeHandler) UpdateWork(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req workEntryRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in, err := req.toInput()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	e, err := h.uc.UpdateWork(c.Context(), userID, entryID, in)
	if err != nil {
		if errors.Is(err, usecase.ErrInternal) {
			return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to save entry", nil, err)
		}
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, workEntryResponse(e))
}

func (h *ResumeHandler) DeleteWork(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.DeleteWork(c.Context(), userID, entryID); err != nil {
		if errors.Is(err, usecase.ErrInternal) {
			return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to delete entry", nil, err)
		}
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ResumeHandler) ListEducation(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListEducation(c.Context(), userID)
	if err != nil {
		return mapResumeUsecaseError(err)
	}

	out := make([]dto.EducationEntryResponse, 0, len(items))
	for _, e := range items {
		out = append(out, educationEntryResponse(e))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ResumeHandler) AddEducation(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req educationEntryRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	e, err := h.uc.AddEducation(c.Context(), userID, req.toInput())
	if err != nil {
		if errors.Is(err, usecase.ErrInternal) {
			return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to save entry", nil, err)
		}
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, educationEntryResponse(e))
}

func (h *ResumeHandler) UpdateEducation(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req educationEntryRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	e, err := h.uc.UpdateEducation(c.Context(), userID, entryID, req.toInput())
	if err != nil {
		if errors.Is(err, usecase.ErrInternal) {
			return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to save entry", nil, err)
		}
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, educationEntryResponse(e))
}

func (h *ResumeHandler) DeleteEducation(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.DeleteEducation(c.Context(), userID, entryID); err != nil {
		if errors.Is(err, usecase.ErrInternal) {
			return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to delete entry", nil, err)
		}
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ResumeHandler) ListChronicle(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListChronicle(c.Context(), userID)
	if err != nil {
		return mapResumeUsecaseError(err)
	}

	out := make([]dto.ChronicleEntryResponse, 0, len(items))
	for _, e := range items {
		out = append(out, chronicleEntryResponse(e))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ResumeHandler) AddChronicle(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req chronicleEntryRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in, err := req.toInput()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	e, err := h.uc.AddChronicle(c.Context(), userID, in)
	if err != nil {
		if errors.Is(err, usecase.ErrInternal) {
			return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to save entry", nil, err)
		}
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, chronicleEntryResponse(e))
}

func (h *ResumeHandler) UpdateChronicle(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req chronicleEntryRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in, err := req.toInput()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	e, err := h.uc.UpdateChronicle(c.Context(), userID, entryID, in)
	if err != nil {
		if errors.Is(err, usecase.ErrInternal) {
			return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to save entry", nil, err)
		}
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, chronicleEntryResponse(e))
}

func (h *ResumeHandler) DeleteChronicle(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.DeleteChronicle(c.Context(), userID, entryID); err != nil {
		if errors.Is(err, usecase.ErrInternal) {
			return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to delete entry", nil, err)
		}
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (r workEntryRequest) toInput() (usecase.WorkInput, error) {
	start, err := parseDateOnly(r.StartDate)
	if err != nil {
		return usecase.WorkInput{}, err
	}
	end, err := parseDateOnly(r.EndDate)
	if err != nil {
		return usecase.WorkInput{}, err
	}

	return usecase.WorkInput{
		Company:   r.Company,
		Title:     r.Title,
		Location:  r.Location,
		StartDate: start,
		EndDate:   end,
		IsCurrent: r.IsCurrent,
		Summary:   r.Summary,
		Position:  r.Position,
	}, nil
}

func (r educationEntryRequest) toInput() usecase.EducationInput {
	return usecase.EducationInput{
		School:    r.School,
		Degree:    r.Degree,
		Field:     r.Field,
		StartYear: r.StartYear,
		EndYear:   r.EndYear,
		Note:      r.Note,
	}
}

func (r chronicleEntryRequest) toInput() (usecase.ChronicleInput, error) {
	happened, err := parseDateOnly(r.HappenedOn)
	if err != nil {
		return usecase.ChronicleInput{}, err
	}

	return usecase.ChronicleInput{
		Title:        r.Title,
		Kind:         r.Kind,
		HappenedOn:   happened,
		Description:  r.Description,
		LinkURL:      r.LinkURL,
		ShowOnResume: r.ShowOnResume,
	}, nil
}

func workEntryResponse(e profile.WorkEntry) dto.WorkEntryResponse {
	return dto.WorkEntryResponse{
		ID:        e.ID,
		Company:   e.Company,
		Title:     e.Title,
		Location:  e.Location,
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
		IsCurrent: e.IsCurrent,
		Summary:   e.Summary,
		Position:  e.Position,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func educationEntryResponse(e profile.EducationEntry) dto.EducationEntryResponse {
	return dto.EducationEntryResponse{
		ID:        e.ID,
		School:    e.School,
		Degree:    e.Degree,
		Field:     e.Field,
		StartYear: e.StartYear,
		EndYear:   e.EndYear,
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func chronicleEntryResponse(e profile.ChronicleEntry) dto.ChronicleEntryResponse {
	return dto.ChronicleEntryResponse{
		ID:           e.ID,
		Title:        e.Title,
		Kind:         e.Kind,
		HappenedOn:   e.HappenedOn,
		Description:  e.Description,
		LinkURL:      e.LinkURL,
		ShowOnResume: e.ShowOnResume,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func mapResumeUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrResumeEntryNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Entry not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidChronicleKind):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid chronicle kind", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

package handler

import (
	"errors"

	"github.com/postmodernjester/rolodex/internal/delivery/http/dto"
	"github.com/postmodernjester/rolodex/internal/delivery/http/middleware"
	"github.com/postmodernjester/rolodex/internal/domain/contact"
	"github.com/postmodernjester/rolodex/internal/pkg/response"
	"github.com/postmodernjester/rolodex/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type NoteHandler struct {
	uc usecase.NoteUsecase
}

type noteRequest struct {
	Content         string  `json:"content"`
	ContextLabel    string  `json:"context_label"`
	EntryDate       *string `json:"entry_date"`
	ActionText      string  `json:"action_text"`
	ActionDueDate   *string `json:"action_due_date"`
	ActionCompleted bool    `json:"action_completed"`
}

func NewNoteHandler(uc usecase.NoteUsecase) *NoteHandler {
	return &NoteHandler{uc: uc}
}

func (h *NoteHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/contacts/:id/notes", h.List)
	r.Post("/contacts/:id/notes", h.Add)
	r.Put("/notes/:id", h.Update)
	r.Delete("/notes/:id", h.Delete)
}

func (h *NoteHandler) List(c fiber.Ctx) error {
	ownerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	contactID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.ListNotes(c.Context(), ownerID, contactID)
	if err != nil {
		return mapNoteUsecaseError(err)
	}

	out := make([]dto.NoteResponse, 0, len(items))
	for _, n := range items {
		out = append(out, noteResponse(n))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *NoteHandler) Add(c fiber.Ctx) error {
	ownerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	contactID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req noteRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in, err := req.toInput()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	n, err := h.uc.AddNote(c.Context(), ownerID, contactID, in)
	if err != nil {
		if errors.Is(err, usecase.ErrInternal) {
			return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to add note", nil, err)
		}
		return mapNoteUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, noteResponse(n))
}

func (h *NoteHandler) Update(c fiber.Ctx) error {
	ownerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req noteRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in, err := req.toInput()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	n, err := h.uc.UpdateNote(c.Context(), ownerID, noteID, in)
	if err != nil {
		if errors.Is(err, usecase.ErrInternal) {
			return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to save note", nil, err)
		}
		return mapNoteUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, noteResponse(n))
}

func (h *NoteHandler) Delete(c fiber.Ctx) error {
	ownerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.DeleteNote(c.Context(), ownerID, noteID); err != nil {
		if errors.Is(err, usecase.ErrInternal) {
			return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to delete note", nil, err)
		}
		return mapNoteUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (r noteRequest) toInput() (usecase.NoteInput, error) {
	entryDate, err := parseDateOnly(r.EntryDate)
	if err != nil {
		return usecase.NoteInput{}, err
	}
	dueDate, err := parseDateOnly(r.ActionDueDate)
	if err != nil {
		return usecase.NoteInput{}, err
	}

	return usecase.NoteInput{
		Content:         r.Content,
		ContextLabel:    r.ContextLabel,
		EntryDate:       entryDate,
		ActionText:      r.ActionText,
		ActionDueDate:   dueDate,
		ActionCompleted: r.ActionCompleted,
	}, nil
}

func noteResponse(n contact.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:              n.ID,
		ContactID:       n.ContactID,
		Content:         n.Content,
		ContextLabel:    n.ContextLabel,
		EntryDate:       n.EntryDate,
		ActionText:      n.ActionText,
		ActionDueDate:   n.ActionDueDate,
		ActionCompleted: n.ActionCompleted,
		CreatedAt:       n.CreatedAt,
		UpdatedAt:       n.UpdatedAt,
	}
}

func mapNoteUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrNoteNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Note not found", nil, err)
	case errors.Is(err, usecase.ErrContactNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Contact not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

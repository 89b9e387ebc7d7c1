package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/abubakar1702/taskflow/internal/domain/model"
	"github.com/abubakar1702/taskflow/internal/middleware/auth"
	"github.com/abubakar1702/taskflow/internal/usecase"
)

type NoteHandler struct {
	usecase *usecase.NoteService
	logger  *zap.Logger
}

func NewNoteHandler(usecase *usecase.NoteService, logger *zap.Logger) *NoteHandler {
	return &NoteHandler{
		usecase: usecase,
		logger:  logger,
	}
}

func (h *NoteHandler) List(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	notes, err := h.usecase.List(c.Request().Context(), user.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, notes)
}

func (h *NoteHandler) ListPinned(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	notes, err := h.usecase.ListPinned(c.Request().Context(), user.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, notes)
}

func (h *NoteHandler) Get(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	noteID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	note, err := h.usecase.Get(c.Request().Context(), user.UserID, noteID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, note)
}

type createNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *NoteHandler) Create(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req createNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	note, err := h.usecase.Create(c.Request().Context(), user.UserID, req.Title, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, note)
}

func (h *NoteHandler) Update(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	noteID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var updates model.NoteUpdate
	if err := c.Bind(&updates); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	note, err := h.usecase.Update(c.Request().Context(), user.UserID, noteID, updates)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, note)
}

func (h *NoteHandler) Delete(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	noteID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	if err := h.usecase.Delete(c.Request().Context(), user.UserID, noteID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/abubakar1702/taskflow/internal/middleware/auth"
	"github.com/abubakar1702/taskflow/internal/usecase"
)

type ImportantTaskHandler struct {
	usecase *usecase.ImportantTaskService
	logger  *zap.Logger
}

func NewImportantTaskHandler(usecase *usecase.ImportantTaskService, logger *zap.Logger) *ImportantTaskHandler {
	return &ImportantTaskHandler{
		usecase: usecase,
		logger:  logger,
	}
}

func (h *ImportantTaskHandler) Mark(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	taskID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	marker, err := h.usecase.Mark(c.Request().Context(), user.UserID, taskID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, marker)
}

func (h *ImportantTaskHandler) Unmark(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	taskID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	if err := h.usecase.Unmark(c.Request().Context(), user.UserID, taskID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ImportantTaskHandler) List(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	markers, err := h.usecase.List(c.Request().Context(), user.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, markers)
}

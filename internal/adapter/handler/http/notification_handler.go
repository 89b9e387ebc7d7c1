package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/abubakar1702/taskflow/internal/middleware/auth"
	"github.com/abubakar1702/taskflow/internal/usecase"
)

type NotificationHandler struct {
	usecase *usecase.NotificationService
	logger  *zap.Logger
}

func NewNotificationHandler(usecase *usecase.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		usecase: usecase,
		logger:  logger,
	}
}

func (h *NotificationHandler) List(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	notifications, err := h.usecase.List(c.Request().Context(), user.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	notificationID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	notification, err := h.usecase.MarkRead(c.Request().Context(), user.UserID, notificationID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, notification)
}

func (h *NotificationHandler) Delete(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	notificationID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	if err := h.usecase.Delete(c.Request().Context(), user.UserID, notificationID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

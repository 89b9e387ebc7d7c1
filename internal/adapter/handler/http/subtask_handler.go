package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/abubakar1702/taskflow/internal/domain/model"
	"github.com/abubakar1702/taskflow/internal/middleware/auth"
	"github.com/abubakar1702/taskflow/internal/usecase"
)

type SubtaskHandler struct {
	usecase *usecase.SubtaskService
	logger  *zap.Logger
}

func NewSubtaskHandler(usecase *usecase.SubtaskService, logger *zap.Logger) *SubtaskHandler {
	return &SubtaskHandler{
		usecase: usecase,
		logger:  logger,
	}
}

func (h *SubtaskHandler) List(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	taskID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	subtasks, err := h.usecase.List(c.Request().Context(), user.UserID, taskID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, subtasks)
}

type createSubtaskRequest struct {
	Text       string     `json:"text"`
	AssigneeID *uuid.UUID `json:"assignee_id"`
}

func (h *SubtaskHandler) Create(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	taskID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req createSubtaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	subtask, err := h.usecase.Create(c.Request().Context(), user.UserID, taskID, req.Text, req.AssigneeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, subtask)
}

// updateSubtaskRequest keeps assignee_id as raw JSON so an explicit null
// (unassign) stays distinguishable from the field being absent (unchanged).
type updateSubtaskRequest struct {
	Text        *string         `json:"text"`
	AssigneeID  json.RawMessage `json:"assignee_id"`
	IsCompleted *bool           `json:"is_completed"`
}

func (r *updateSubtaskRequest) toUpdate() (model.SubtaskUpdate, error) {
	updates := model.SubtaskUpdate{Text: r.Text, IsCompleted: r.IsCompleted}
	if len(r.AssigneeID) == 0 {
		return updates, nil
	}
	if string(r.AssigneeID) == "null" {
		var cleared *uuid.UUID
		updates.AssigneeID = &cleared
		return updates, nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(r.AssigneeID, &id); err != nil {
		return model.SubtaskUpdate{}, err
	}
	assignee := &id
	updates.AssigneeID = &assignee
	return updates, nil
}

func (h *SubtaskHandler) Update(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	taskID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	subtaskID, ok := parseUUIDParam(c, "subtaskId")
	if !ok {
		return nil
	}

	var req updateSubtaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	updates, err := req.toUpdate()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "assignee_id must be a UUID or null"})
	}

	subtask, err := h.usecase.Update(c.Request().Context(), user.UserID, taskID, subtaskID, updates)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, subtask)
}

func (h *SubtaskHandler) Delete(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	taskID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	subtaskID, ok := parseUUIDParam(c, "subtaskId")
	if !ok {
		return nil
	}

	if err := h.usecase.Delete(c.Request().Context(), user.UserID, taskID, subtaskID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

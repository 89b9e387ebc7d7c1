package http

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/abubakar1702/taskflow/internal/domain/dto"
	"github.com/abubakar1702/taskflow/internal/domain/model"
	"github.com/abubakar1702/taskflow/internal/middleware/auth"
	"github.com/abubakar1702/taskflow/internal/usecase"
)

type TaskHandler struct {
	usecase *usecase.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(usecase *usecase.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		usecase: usecase,
		logger:  logger,
	}
}

type createTaskRequest struct {
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	ProjectID   *uuid.UUID  `json:"project_id"`
	Status      string      `json:"status"`
	Priority    string      `json:"priority"`
	DueDate     *string     `json:"due_date"`
	DueTime     *string     `json:"due_time"`
	AssigneeIDs []uuid.UUID `json:"assignee_ids"`
}

func (h *TaskHandler) Create(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	task := &model.Task{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		Status:      req.Status,
		Priority:    req.Priority,
		DueTime:     req.DueTime,
	}
	if req.DueDate != nil {
		due, err := parseDate(*req.DueDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "due_date must be YYYY-MM-DD"})
		}
		task.DueDate = &due
	}
	for _, id := range req.AssigneeIDs {
		task.Assignees = append(task.Assignees, model.User{ID: id})
	}

	created, err := h.usecase.Create(c.Request().Context(), user.UserID, task)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *TaskHandler) Get(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	taskID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	task, err := h.usecase.Get(c.Request().Context(), user.UserID, taskID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Update(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	taskID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var updates model.TaskUpdate
	if err := c.Bind(&updates); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	task, err := h.usecase.Update(c.Request().Context(), user.UserID, taskID, updates)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// List translates query parameters into a task filter. Boolean parameters
// are tri-state: absent means unfiltered, "false" selects the complement.
func (h *TaskHandler) List(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	filter := dto.TaskFilter{
		UserID:   user.UserID,
		Priority: c.QueryParam("priority"),
		Status:   c.QueryParam("status"),
		OrderBy:  c.QueryParam("order_by"),
	}
	if v := c.QueryParam("creator"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "creator must be a valid UUID"})
		}
		filter.CreatorID = &id
	}
	if v := c.QueryParam("project_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "project_id must be a valid UUID"})
		}
		filter.ProjectID = &id
	}
	for param, target := range map[string]**bool{
		"assigned_to_me": &filter.AssignedToMe,
		"created_by_me":  &filter.CreatedByMe,
		"due_today":      &filter.DueToday,
		"overdue":        &filter.Overdue,
	} {
		if v := c.QueryParam(param); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": param + " must be a boolean"})
			}
			*target = &b
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.QueryParam("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	tasks, err := h.usecase.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Delete(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	taskID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	if err := h.usecase.Delete(c.Request().Context(), user.UserID, taskID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type addAssigneeRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

func (h *TaskHandler) AddAssignee(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	taskID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req addAssigneeRequest
	if err := c.Bind(&req); err != nil || req.UserID == uuid.Nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
	}

	if err := h.usecase.AddAssignee(c.Request().Context(), user.UserID, taskID, req.UserID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

func (h *TaskHandler) RemoveAssignee(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	taskID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	assigneeID, ok := parseUUIDParam(c, "userId")
	if !ok {
		return nil
	}

	if err := h.usecase.RemoveAssignee(c.Request().Context(), user.UserID, taskID, assigneeID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Leave lets the caller walk away from a task they are assigned to. Unlike
// RemoveAssignee it also deletes the files they uploaded to the task.
func (h *TaskHandler) Leave(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	taskID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	if err := h.usecase.LeaveTask(c.Request().Context(), user.UserID, taskID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/abubakar1702/taskflow/internal/domain/model"
	"github.com/abubakar1702/taskflow/internal/middleware/auth"
	"github.com/abubakar1702/taskflow/internal/usecase"
)

type ProjectHandler struct {
	usecase *usecase.ProjectService
	logger  *zap.Logger
}

func NewProjectHandler(usecase *usecase.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		usecase: usecase,
		logger:  logger,
	}
}

type createProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (h *ProjectHandler) Create(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	project := &model.Project{
		Name:        req.Name,
		Description: req.Description,
	}

	created, err := h.usecase.Create(c.Request().Context(), user.UserID, project)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *ProjectHandler) Get(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	projectID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	project, err := h.usecase.Get(c.Request().Context(), user.UserID, projectID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) List(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	projects, err := h.usecase.List(c.Request().Context(), user.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) Update(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	projectID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var updates model.ProjectUpdate
	if err := c.Bind(&updates); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	project, err := h.usecase.Update(c.Request().Context(), user.UserID, projectID, updates)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Delete(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	projectID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	if err := h.usecase.Delete(c.Request().Context(), user.UserID, projectID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

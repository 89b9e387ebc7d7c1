package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/abubakar1702/taskflow/internal/middleware/auth"
	"github.com/abubakar1702/taskflow/internal/usecase"
)

type TeamHandler struct {
	usecase *usecase.TeamService
	logger  *zap.Logger
}

func NewTeamHandler(usecase *usecase.TeamService, logger *zap.Logger) *TeamHandler {
	return &TeamHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// Team lists everyone the caller collaborates with across projects and
// task assignments.
func (h *TeamHandler) Team(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	users, err := h.usecase.Team(c.Request().Context(), user.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *TeamHandler) Search(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	result, err := h.usecase.Search(c.Request().Context(), user.UserID, c.QueryParam("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *TeamHandler) SearchAssignees(c echo.Context) error {
	if _, err := auth.RequireAuth(c); err != nil {
		return err
	}

	users, err := h.usecase.SearchAssignees(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

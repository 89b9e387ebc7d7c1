package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/abubakar1702/taskflow/internal/middleware/auth"
	"github.com/abubakar1702/taskflow/internal/usecase"
)

type MemberHandler struct {
	usecase *usecase.ProjectMemberService
	logger  *zap.Logger
}

func NewMemberHandler(usecase *usecase.ProjectMemberService, logger *zap.Logger) *MemberHandler {
	return &MemberHandler{
		usecase: usecase,
		logger:  logger,
	}
}

func (h *MemberHandler) List(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	projectID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	members, err := h.usecase.List(c.Request().Context(), user.UserID, projectID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, members)
}

type addMemberRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

func (h *MemberHandler) Add(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	projectID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req addMemberRequest
	if err := c.Bind(&req); err != nil || req.UserID == uuid.Nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
	}

	member, err := h.usecase.Add(c.Request().Context(), user.UserID, projectID, req.UserID, req.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, member)
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (h *MemberHandler) UpdateRole(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	projectID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	memberID, ok := parseUUIDParam(c, "memberId")
	if !ok {
		return nil
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil || req.Role == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role is required"})
	}

	member, err := h.usecase.UpdateRole(c.Request().Context(), user.UserID, projectID, memberID, req.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, member)
}

// Remove expels a member and cascades over everything they brought into
// the project. Removing an already-removed member answers 404.
func (h *MemberHandler) Remove(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	projectID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	memberID, ok := parseUUIDParam(c, "memberId")
	if !ok {
		return nil
	}

	if err := h.usecase.Remove(c.Request().Context(), user.UserID, projectID, memberID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

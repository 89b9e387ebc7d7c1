package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/abubakar1702/taskflow/internal/middleware/auth"
	"github.com/abubakar1702/taskflow/internal/usecase"
)

type AssetHandler struct {
	usecase *usecase.AssetService
	logger  *zap.Logger
}

func NewAssetHandler(usecase *usecase.AssetService, logger *zap.Logger) *AssetHandler {
	return &AssetHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// Upload accepts a multipart form with a "file" part and either a task_id
// or project_id form value naming the owner.
func (h *AssetHandler) Upload(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to read upload"})
	}
	defer file.Close()

	in := usecase.UploadInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
	}
	if v := c.FormValue("task_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "task_id must be a valid UUID"})
		}
		in.TaskID = &id
	}
	if v := c.FormValue("project_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "project_id must be a valid UUID"})
		}
		in.ProjectID = &id
	}

	asset, err := h.usecase.Upload(c.Request().Context(), user.UserID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, asset)
}

func (h *AssetHandler) ListByTask(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	taskID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	assets, err := h.usecase.ListByTask(c.Request().Context(), user.UserID, taskID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, assets)
}

func (h *AssetHandler) ListByProject(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	projectID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	assets, err := h.usecase.ListByProject(c.Request().Context(), user.UserID, projectID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, assets)
}

// Download answers a short-lived presigned URL instead of proxying bytes.
func (h *AssetHandler) Download(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	assetID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	url, err := h.usecase.DownloadURL(c.Request().Context(), user.UserID, assetID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"url": url})
}

func (h *AssetHandler) Delete(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	assetID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	if err := h.usecase.Delete(c.Request().Context(), user.UserID, assetID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

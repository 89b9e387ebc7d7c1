package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "github.com/abubakar1702/taskflow/internal/domain/errors"
)

// respondError maps a domain error to its HTTP status and writes a JSON
// body carrying the wire code.
func respondError(c echo.Context, err error) error {
	code := apperrors.CodeOf(err)

	status := http.StatusInternalServerError
	switch code {
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeForbidden:
		status = http.StatusForbidden
	case apperrors.CodeConflict:
		status = http.StatusConflict
	case apperrors.CodeNotAssignee, apperrors.CodeInvalidAssignee, apperrors.CodeInvalidArgument:
		status = http.StatusBadRequest
	}

	message := http.StatusText(status)
	var ve *apperrors.ValidationError
	if apperrors.As(err, &ve) {
		return c.JSON(status, echo.Map{
			"error": ve.Message,
			"field": ve.Field,
			"code":  code,
		})
	}
	if status != http.StatusInternalServerError {
		message = err.Error()
	}

	return c.JSON(status, echo.Map{
		"error": message,
		"code":  code,
	})
}

// parseUUIDParam reads a path parameter as a UUID. On junk input it writes
// a 400 response itself and reports ok=false.
func parseUUIDParam(c echo.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{
			"error": name + " must be a valid UUID",
			"code":  apperrors.CodeInvalidArgument,
		})
		return uuid.Nil, false
	}
	return id, true
}

// parseDate parses a calendar date in YYYY-MM-DD form.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

package v1

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xiaot623/termmon/internal/historyline"
	"github.com/xiaot623/termmon/internal/service"
)

// formValue returns the last value of key, as repeated keys overwrite.
func formValue(form map[string][]string, key string) (string, bool) {
	vals, ok := form[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[len(vals)-1], true
}

// RecordCommand records one reported history line.
// POST /commands
func (h *Handler) RecordCommand(c echo.Context) error {
	ctx := c.Request().Context()

	// The body is parsed as a form whatever the declared content type.
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return badRequest(c, "invalid body")
	}
	form := parseForm(string(body))

	rawStatus, ok := formValue(form, "status")
	if !ok {
		return badRequest(c, "status missing")
	}
	status, err := parseStatus(rawStatus)
	if err != nil {
		return badRequest(c, "status invalid")
	}

	pwd, ok := formValue(form, "pwd")
	if !ok {
		return badRequest(c, "pwd missing")
	}
	sessionID, ok := formValue(form, "session_id")
	if !ok {
		return badRequest(c, "session_id missing")
	}

	history, ok := formValue(form, "history")
	if !ok {
		return badRequest(c, "history missing")
	}
	line, err := historyline.Decode(history)
	if err != nil {
		return badRequest(c, "history invalid")
	}

	_, err = h.service.RecordCommand(ctx, service.RecordInput{
		SessionID: sessionID,
		Pwd:       pwd,
		Status:    status,
		Line:      line,
	})
	if err != nil {
		return h.internalError(c, err)
	}

	return c.NoContent(http.StatusOK)
}

// GetCommands returns the recent history digest as plain text.
// GET /commands
func (h *Handler) GetCommands(c echo.Context) error {
	digest, err := h.service.Digest(c.Request().Context())
	if err != nil {
		return h.internalError(c, err)
	}
	return c.Blob(http.StatusOK, echo.MIMETextPlain, []byte(digest))
}

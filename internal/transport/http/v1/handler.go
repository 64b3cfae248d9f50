// Package v1 provides the /commands HTTP handlers.
package v1

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xiaot623/termmon/internal/domain"
	"github.com/xiaot623/termmon/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service       *service.Service
	failurePolicy domain.FailurePolicy
	fatal         func(format string, v ...any)
}

// Option configures a Handler.
type Option func(*Handler)

// WithFailurePolicy sets what happens when the store fails during a request.
func WithFailurePolicy(p domain.FailurePolicy) Option {
	return func(h *Handler) { h.failurePolicy = p }
}

// WithFatal replaces log.Fatalf as the exit hook of FailurePolicyExit.
func WithFatal(fatal func(format string, v ...any)) Option {
	return func(h *Handler) { h.fatal = fatal }
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service, opts ...Option) *Handler {
	h := &Handler{
		service:       service,
		failurePolicy: domain.FailurePolicyRespond,
		fatal:         log.Fatalf,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes registers the commands resource with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/commands", h.RecordCommand)
	e.GET("/commands", h.GetCommands)
	// echo answers OPTIONS on known paths itself; keep it on the 400 fallback.
	e.OPTIONS("/commands", Unsupported)
}

// Unsupported answers any request shape the service does not serve.
func Unsupported(c echo.Context) error {
	return badRequest(c, "error")
}

func badRequest(c echo.Context, reason string) error {
	return c.String(http.StatusBadRequest, reason)
}

// internalError applies the failure policy to a store or policy error.
func (h *Handler) internalError(c echo.Context, err error) error {
	if h.failurePolicy == domain.FailurePolicyExit {
		h.fatal("internal failure on %s %s: %v", c.Request().Method, c.Path(), err)
	}
	log.Printf("internal failure on %s %s: %v", c.Request().Method, c.Path(), err)
	return c.String(http.StatusInternalServerError, "internal error")
}

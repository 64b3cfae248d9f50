// Package http provides the HTTP server implementation for the history service.
package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/xiaot623/termmon/internal/service"
	v1 "github.com/xiaot623/termmon/internal/transport/http/v1"
)

// ServerOptions configures NewServer.
type ServerOptions struct {
	AccessLog bool
	BodyLimit string
	Handler   []v1.Option
}

// NewServer creates and configures the HTTP server for the commands resource.
func NewServer(svc *service.Service, opts ServerOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler(e)

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	if opts.AccessLog {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())
	if opts.BodyLimit != "" {
		e.Use(middleware.BodyLimit(opts.BodyLimit))
	}

	// Handlers
	v1Handler := v1.NewHandler(svc, opts.Handler...)

	// Register Routes
	v1Handler.RegisterRoutes(e)

	return e
}

// errorHandler answers unknown routes and methods with 400 "error", so
// callers cannot tell a missing route from a bad request.
func errorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var he *echo.HTTPError
		if errors.As(err, &he) && (he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed) {
			if c.Response().Committed {
				return
			}
			c.Response().Header().Del(echo.HeaderAllow)
			if err := v1.Unsupported(c); err != nil {
				e.Logger.Error(err)
			}
			return
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}

package httpapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/filmstack/idm/internal/logging"
)

// Server wraps echo with the identity routes registered.
type Server struct {
	echo *echo.Echo
	addr string
}

// NewServer builds the HTTP server. Routes:
//
//	POST /register      create a user
//	POST /login         password login, returns a token pair
//	POST /refresh       refresh-token renewal
//	POST /authenticate  access-token verification
//	GET  /health/live   liveness probe
func NewServer(addr string, h *Handler, log logging.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/register", h.Register)
	e.POST("/login", h.Login)
	e.POST("/refresh", h.Refresh)
	e.POST("/authenticate", h.Authenticate)

	return &Server{echo: e, addr: addr}
}

// Start blocks serving requests until Shutdown is called or the listener
// fails.
func (s *Server) Start() error {
	return s.echo.Start(s.addr)
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

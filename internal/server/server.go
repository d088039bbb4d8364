// Package server wraps the Fiber app lifecycle.
package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Server is an HTTP server bound to one address.
type Server struct {
	app  *fiber.App
	addr string
}

// NewApp builds a Fiber app with the shared configuration.
func NewApp(name string) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               name,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           60 * time.Second,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
}

// New wraps an app for serving on addr.
func New(app *fiber.App, addr string) *Server {
	return &Server{app: app, addr: addr}
}

// App exposes the underlying Fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving requests until Shutdown is called.
func (s *Server) Listen() error {
	return s.app.Listen(s.addr)
}

// Shutdown drains connections, honoring the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	if deadline, ok := ctx.Deadline(); ok {
		return s.app.ShutdownWithTimeout(time.Until(deadline))
	}
	return s.app.Shutdown()
}

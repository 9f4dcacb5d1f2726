// Package mirror serves a local directory as an update source over HTTP,
// so manifests and assets can be published for testing without uploading
// them anywhere.
package mirror

import (
	"context"
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/updraft-io/updraft/pkg/logger"
)

// Server exposes a source tree (manifest, archives, signatures,
// screenshots) under its root path.
type Server struct {
	echo *echo.Echo
	root string
}

// New builds a mirror over root. The directory must exist.
func New(root string) (*Server, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot serve %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cannot serve %s: not a directory", root)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(200, "ok")
	})
	e.Static("/", root)

	return &Server{echo: e, root: root}, nil
}

// Start serves until Shutdown is called or the listener fails.
func (s *Server) Start(addr string) error {
	logger.Info("Serving update source", "root", s.root, "addr", addr)
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying HTTP handler, used by tests.
func (s *Server) Handler() *echo.Echo {
	return s.echo
}

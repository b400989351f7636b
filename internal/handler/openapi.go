package handler

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/deppfellow/articles-api/internal/server"
	"github.com/labstack/echo/v4"
)

//go:embed static
var staticFiles embed.FS

// OpenAPIHandler serves the API document and a browser UI for it.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// StaticFS exposes the embedded static/ directory, rooted at its contents.
func (h *OpenAPIHandler) StaticFS() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// unreachable, static/ is part of the binary
		panic(err)
	}
	return sub
}

// ServeOpenAPIUI serves the docs page. It is never cached so doc updates show up immediately.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := staticFiles.ReadFile("static/openapi.html")
	if err != nil {
		return err
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTMLBlob(http.StatusOK, page)
}

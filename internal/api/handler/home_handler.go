package handler

import (
	"io/fs"

	"github.com/labstack/echo/v4"
)

// HomeHandler serves the static homepage.
type HomeHandler struct {
	assets fs.FS
}

// NewHomeHandler serves index.html from assets.
func NewHomeHandler(assets fs.FS) *HomeHandler {
	return &HomeHandler{assets: assets}
}

// Index handles GET /.
func (h *HomeHandler) Index(c echo.Context) error {
	return echo.StaticFileHandler("index.html", h.assets)(c)
}

package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/crguezl/tinyclonec/internal/core"
	"github.com/crguezl/tinyclonec/internal/http/middleware"
)

type Options struct {
	BaseURL string
}

// NewRouter sets up all routes and middleware.
func NewRouter(svc *core.Service, opts Options) *gin.Engine {
	r := gin.New()
	// Treat all upstreams as untrusted (removes the warning).
	if err := r.SetTrustedProxies(nil); err != nil {
		slog.Warn("set trusted proxies", "error", err)
	}

	r.Use(middleware.Logger())
	r.Use(middleware.Recover())
	r.Use(middleware.RequestID())

	r.SetHTMLTemplate(pageTemplates())

	h := NewHandlers(svc, opts.BaseURL)

	// Health
	r.GET("/health", h.Health)

	// Stylesheet for the HTML pages
	RegisterStatic(r)

	// Pages
	r.GET("/", h.Home)
	r.POST("/", h.Submit)
	r.GET("/info/:code", h.Info)

	// API
	api := r.Group("/api")
	api.POST("/links", h.APICreate)
	api.GET("/links/:code", h.APILink)

	// Redirect
	r.GET("/:code", h.Redirect)

	return r
}

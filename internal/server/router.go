// Package server exposes question generation over HTTP with gin.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Options configures the engine.
type Options struct {
	GinMode string

	// AllowedOrigins restricts CORS. Empty allows all origins.
	AllowedOrigins []string
}

// NewRouter builds the gin engine with middleware and routes. CORS origin
// restrictions apply to /questions only; /health answers every caller and
// always allows any origin.
func NewRouter(h *QuestionHandler, opts Options, log zerolog.Logger) *gin.Engine {
	if opts.GinMode != "" {
		gin.SetMode(opts.GinMode)
	}
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(
		requestID(),
		accessLog(log.With().Str("component", "http").Logger()),
		recovery(),
	)

	r.GET("/health", cors.New(corsConfig(nil)), h.Health)

	questions := r.Group("/questions", cors.New(corsConfig(opts.AllowedOrigins)))
	questions.POST("", h.Generate)
	// Preflight requests are answered by the CORS middleware.
	questions.OPTIONS("", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	return r
}

// corsConfig allows the given origins, or any origin when the list is
// empty.
func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) > 0 {
		cfg.AllowOrigins = origins
	} else {
		cfg.AllowAllOrigins = true
	}
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", headerRequestID}
	cfg.ExposeHeaders = []string{headerRequestID}
	cfg.MaxAge = 12 * time.Hour
	return cfg
}

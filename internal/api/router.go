// Package api exposes the session over HTTP.
package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goatkit/goatsession/internal/apierrors"
	"github.com/goatkit/goatsession/internal/config"
	"github.com/goatkit/goatsession/internal/middleware"
	"github.com/goatkit/goatsession/internal/session"
)

// Router is the gin engine serving the session API. Call Close when done
// with it to release the rate limiter.
type Router struct {
	*gin.Engine
	limiter *middleware.RateLimiter
}

// NewRouter wires the session routes, health check and metrics endpoint.
// A nil cfg means config.Default().
func NewRouter(cfg *config.Config, sess *session.Session, logger *log.Logger) *Router {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[API] ", log.LstdFlags)
	}

	r := &Router{
		Engine:  gin.New(),
		limiter: middleware.NewRateLimiter(),
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger, cfg.Log.Debug()))

	h := NewSessionHandler(sess, logger)
	api := r.Group("/api")
	{
		api.POST("/session", r.limiter.RateLimitByIP(cfg.Server.CreateRateLimit), h.Create)
		api.GET("/session", h.Get)
		api.DELETE("/session", h.Delete)
		api.GET("/errors", handleListErrors)
	}

	r.GET("/healthz", handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.NoRoute(func(c *gin.Context) {
		apierrors.Error(c, apierrors.CodeNotFound)
	})

	return r
}

// Close stops background work owned by the router.
func (r *Router) Close() {
	r.limiter.Stop()
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleListErrors returns the registered error codes, optionally filtered by
// the namespace query parameter.
func handleListErrors(c *gin.Context) {
	codes := apierrors.Registry.All()
	if ns := c.Query("namespace"); ns != "" {
		codes = apierrors.Registry.ByNamespace(ns)
		if codes == nil {
			codes = []apierrors.ErrorCode{}
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"errors":     codes,
		"namespaces": apierrors.Registry.Namespaces(),
	})
}

package app

import (
	"net/http"
	"time"

	"github.com/basedcaster/core/internal/modules/gallery"
	"github.com/basedcaster/core/internal/modules/persona"
	"github.com/basedcaster/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api"

func (a *App) registerRoutes(svcs services) {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/health", a.health)
	r.GET("/metrics", a.metrics.Handler())

	api := r.Group(apiPrefix)
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })

	persona.NewHandler(svcs.persona).RegisterRoutes(api)
	gallery.NewHandler(svcs.gallery).RegisterRoutes(api)
}

// GET /health
func (a *App) health(c *gin.Context) {
	uptime := time.Since(a.started)
	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"uptime":   uptime.Milliseconds(),
		"humanize": humanizeDuration(uptime),
		"ai":       a.aiInfo,
		"tweets":   gin.H{"configured": a.cfg.Tweets.APIKey != ""},
		"redis":    a.redis != nil,
		"jobs":     a.sched.List(),
	})
}

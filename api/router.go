package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jtlavin/portalinmo/api/handler"
	"github.com/jtlavin/portalinmo/api/middleware"
	"github.com/jtlavin/portalinmo/config"
	"github.com/jtlavin/portalinmo/scraper"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     RateLimit
//
// Health endpoint is intentionally outside the rate limiter so
// monitoring probes always work.
func NewRouter(sc *scraper.Scraper, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	v1.GET("/health", handler.Health(sc, startTime))

	limited := v1.Group("")
	limited.Use(middleware.RateLimit(cfg.RateLimit))
	limited.POST("/scrape", handler.Scrape(sc))

	return r
}

// Package httpserver serves the web share link, health and metrics over HTTP.
package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kayatkin/flight-tracker-sub000/internal/model"
	"github.com/kayatkin/flight-tracker-sub000/internal/service"
)

// ShareResolver opens share tokens.
type ShareResolver interface {
	Authorize(ctx context.Context, token string) (model.Guest, error)
	Dataset(ctx context.Context, g model.Guest) (model.OwnerDataset, error)
}

// Deps are the collaborators of the router.
type Deps struct {
	Log            *zap.Logger
	Resolver       ShareResolver
	Links          service.ShareLinks
	AllowedOrigins []string
	Gatherer       prometheus.Gatherer
	Ping           func(ctx context.Context) error
}

// NewRouter builds the gin engine.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(d.Log), gin.Recovery(), corsMiddleware(d.AllowedOrigins))
	if err := r.SetTrustedProxies(nil); err != nil {
		d.Log.Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	h := &handlers{resolver: d.Resolver, links: d.Links, ping: d.Ping}
	sharePath := d.Links.SharePath
	if sharePath == "" {
		sharePath = "/shared"
	}
	r.GET(sharePath, h.openShare)
	r.GET("/healthz", h.health)
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}
	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Accept", "Content-Type"},
		MaxAge:       24 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

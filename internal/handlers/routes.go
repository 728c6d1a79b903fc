package handlers

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/harentsoaR/clinic-mock-api/internal/metrics"
	"github.com/harentsoaR/clinic-mock-api/internal/middleware"
)

type RouterConfig struct {
	Secret      []byte
	Location    *time.Location
	CORSOrigins []string
	Logger      zerolog.Logger
	Metrics     *metrics.HTTPMetrics
	// Gatherer backs /metrics; prometheus.DefaultGatherer when nil.
	Gatherer prometheus.Gatherer
}

func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(cfg.Logger),
		middleware.Metrics(cfg.Metrics),
		middleware.Recovery(cfg.Logger),
		cors.New(corsConfig(cfg.CORSOrigins)),
	)

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	apiRoutes := r.Group("/api")
	apiRoutes.Use(middleware.AuthMiddleware(cfg.Secret))
	{
		apiRoutes.GET("/appointments", middleware.ValidateWeekQuery(cfg.Location), h.GetAppointments)
		apiRoutes.POST("/appointments", h.CreateAppointment)
		apiRoutes.GET("/doctors", h.GetDoctors)
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

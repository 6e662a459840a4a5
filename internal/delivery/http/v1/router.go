package v1

import (
	"net/http"
	"time"

	"go-agency-backend/config"
	"go-agency-backend/internal/delivery/http/middleware"
	"go-agency-backend/internal/delivery/http/response"
	"go-agency-backend/internal/domain"
	"go-agency-backend/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	Verifier  domain.TokenVerifier
	Geo       domain.GeoResolver
	Metrics   *metrics.Metrics
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.SecurityHeadersMiddleware())

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Public routes (the whole surface is public, this is a marketing site)
	rateLimit := middleware.RateLimit(middleware.RateLimitConfig{
		Limit:     deps.Config.RateLimitContactRequests,
		Window:    time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second,
		KeyPrefix: "rl:contact:",
	})
	NewContactHandler(v1, ContactHandlerDeps{
		ContactUC:   deps.ContactUC,
		Verifier:    deps.Verifier,
		Geo:         deps.Geo,
		Metrics:     deps.Metrics,
		DefaultLang: deps.Config.DefaultLanguage,
	}, rateLimit)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

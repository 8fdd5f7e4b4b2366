package handler

import (
	"point-wallet/internal/adapter/http/middleware"
	redisStore "point-wallet/internal/adapter/storage/redis"
	"point-wallet/internal/core/ports"
	"point-wallet/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	LedgerSvc      ports.LedgerService
	ChargeSvc      ports.ChargeService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	Metrics        *metrics.Metrics   // nil = /metrics not served
	MetricsPath    string
	OpenAPISpec    []byte // nil = /swagger/spec answers 404
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20))

	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	if deps.Metrics != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(deps.Metrics.Handler()))
	}

	docs := NewAPIDocs(deps.OpenAPISpec)
	swagger := r.Group("/swagger")
	{
		swagger.GET("", docs.UI)
		swagger.GET("/spec", docs.Spec)
	}

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	pointsHandler := NewPointsHandler(deps.LedgerSvc)
	chargeHandler := NewChargeHandler(deps.ChargeSvc, deps.LedgerSvc, deps.Logger)

	points := r.Group("/api/v1/points")

	// --- Gateway redirects (public, member id embedded in the URL) ---
	callbacks := points.Group("/charge", rl(middleware.GroupChargeApprove))
	{
		callbacks.GET("/success", chargeHandler.Success)
		callbacks.GET("/cancel", chargeHandler.Cancel)
		callbacks.GET("/fail", chargeHandler.Fail)
	}

	// --- JWT-authenticated member routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	member := points.Group("", jwtAuth)
	{
		member.POST("/account", rl(middleware.GroupPoints), pointsHandler.OpenAccount)
		member.GET("/balance", rl(middleware.GroupPoints), pointsHandler.GetBalance)
		member.GET("/history", rl(middleware.GroupPoints), pointsHandler.GetHistory)
		member.POST("/purchase", rl(middleware.GroupPoints), pointsHandler.Purchase)
		member.POST("/charge/ready", rl(middleware.GroupChargeReady), chargeHandler.Ready)
		member.POST("/refund", rl(middleware.GroupRefund), chargeHandler.Refund)
	}

	return r
}

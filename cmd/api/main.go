package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"point-wallet/config"
	"point-wallet/internal/adapter/gateway"
	httpHandler "point-wallet/internal/adapter/http/handler"
	pgStorage "point-wallet/internal/adapter/storage/postgres"
	redisStorage "point-wallet/internal/adapter/storage/redis"
	"point-wallet/internal/core/ports"
	"point-wallet/internal/metrics"
	"point-wallet/internal/service"
	"point-wallet/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load(os.Getenv("PTW_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting point wallet")

	ctx := context.Background()

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.NewDefault()
	}

	// Repositories
	memberRepo := pgStorage.NewMemberRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	auditRepo := pgStorage.NewAuditRepo(pool)
	transactor := pgStorage.NewTransactor(pool, cfg.Database.LockTimeout)

	// Redis stores
	pendingStore := redisStorage.NewPendingChargeStore(rdb)
	refundLock := redisStorage.NewRefundLock(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Payment gateway
	gw := gateway.NewKakaoPayClient(cfg.Gateway, gateway.NewHTTPClient(cfg.Gateway.Timeout), m, log)

	// Services
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	auditSvc := service.NewAuditService(auditRepo, log)
	ledgerSvc := service.NewLedgerService(memberRepo, txRepo, transactor, m, log)
	chargeSvc := service.NewChargeService(gw, pendingStore, refundLock, ledgerSvc, auditSvc, service.ChargeOptions{
		CallbackBaseURL: cfg.Gateway.CallbackBaseURL,
		ItemName:        cfg.Gateway.ItemName,
		PendingTTL:      cfg.Charge.PendingTTL,
		RefundLockTTL:   cfg.Charge.RefundLockTTL,
		MaxAmount:       cfg.Charge.MaxAmount,
	}, log)

	openAPISpec, err := os.ReadFile("docs/api/openapi.yaml")
	if err != nil {
		log.Warn().Err(err).Msg("OpenAPI document not found, /swagger/spec will be unavailable")
	}

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		LedgerSvc:      ledgerSvc,
		ChargeSvc:      chargeSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgStorage.NewHealthCheck(pool), redisStorage.NewHealthCheck(rdb)},
		AuditSvc:       auditSvc,
		Metrics:        m,
		MetricsPath:    cfg.Metrics.Path,
		OpenAPISpec:    openAPISpec,
		Logger:         log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Flush in-flight audit writes before the pool closes
	auditSvc.Wait()

	log.Info().Msg("Server exited")
}

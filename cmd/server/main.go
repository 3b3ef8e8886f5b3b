package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/mpartaud/school-records/config"
	"github.com/mpartaud/school-records/internal/auth"
	"github.com/mpartaud/school-records/internal/email"
	"github.com/mpartaud/school-records/internal/health"
	"github.com/mpartaud/school-records/internal/infrastructure/postgres"
	ctxlog "github.com/mpartaud/school-records/internal/log"
	"github.com/mpartaud/school-records/internal/metrics"
	"github.com/mpartaud/school-records/internal/reporter"
	httptransport "github.com/mpartaud/school-records/internal/transport/http"
	"github.com/mpartaud/school-records/internal/transport/http/handler"
	"github.com/mpartaud/school-records/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	classRepo := postgres.NewClassRepository(pool)
	gradeRepo := postgres.NewGradeRepository(pool)

	// Auth core
	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens := auth.NewTokens([]byte(cfg.JWTSecret), time.Duration(cfg.TokenTTLHours)*time.Hour)
	guard := auth.NewGuard(tokens, userRepo)
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	authUsecase := usecase.NewAuthUsecase(userRepo, hasher, tokens, guard, sender, logger)
	userUsecase := usecase.NewUserUsecase(userRepo, hasher, guard)
	classUsecase := usecase.NewClassUsecase(classRepo, guard)
	gradeUsecase := usecase.NewGradeUsecase(gradeRepo, guard)

	authHandler := handler.NewAuthHandler(authUsecase, logger)
	userHandler := handler.NewUserHandler(userUsecase, logger)
	classHandler := handler.NewClassHandler(classUsecase, logger)
	gradeHandler := handler.NewGradeHandler(gradeUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	stats := reporter.New(userRepo, classRepo, gradeRepo, logger)
	if err := stats.Start(ctx, cfg.StatsCron); err != nil {
		stop()
		log.Fatalf("stats reporter: %v", err)
	}

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, userHandler, classHandler, gradeHandler),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/storeanalytics/sales-dashboard-go/internal/config"
	appHTTP "github.com/storeanalytics/sales-dashboard-go/internal/handler/http"
	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/cron"
	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/database"
	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/jwt"
	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/metrics"
	"github.com/storeanalytics/sales-dashboard-go/internal/repository/postgresql"
	serviceAuth "github.com/storeanalytics/sales-dashboard-go/internal/service/auth"
	serviceSales "github.com/storeanalytics/sales-dashboard-go/internal/service/sales"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.App.LogLevel),
	})))

	// the pool is opened on the first report request
	db := database.NewHandle(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	defer db.Close()

	recorder := metrics.NewRecorder()
	salesRepo := postgresql.NewSalesRepository(db, recorder)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authService := serviceAuth.NewAuthService(serviceAuth.Operator{
		Username:     cfg.Dashboard.Username,
		PasswordHash: cfg.Dashboard.PasswordHash,
		StoreID:      cfg.Dashboard.StoreID,
	}, JWTService)
	salesService := serviceSales.NewSalesService(salesRepo, recorder, serviceSales.Options{
		ExcludedSellers: cfg.Dashboard.ExcludedSellers,
		BuffetItemName:  cfg.Dashboard.BuffetItemName,
		SlowReport:      cfg.Dashboard.SlowReport,
	})

	authHandler := appHTTP.NewAuthHandler(authService)
	salesHandler := appHTTP.NewSalesHandler(salesService)

	router := appHTTP.NewRouter(
		cfg.App,
		JWTService,
		recorder.Handler(),
		authHandler,
		salesHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := cron.NewScheduler()
	cron.RegisterTokenJobs(scheduler, JWTService)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
		}
		return
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/koko-king/config"
	"github.com/yeremiapane/koko-king/convergence"
	"github.com/yeremiapane/koko-king/database"
	"github.com/yeremiapane/koko-king/models"
	"github.com/yeremiapane/koko-king/router"
	"github.com/yeremiapane/koko-king/services"
	"github.com/yeremiapane/koko-king/utils"
)

// app bundles the wired services behind the HTTP engine.
type app struct {
	engine  *gin.Engine
	monitor *services.OrderMonitor
}

func buildApp(ctx context.Context, cfg *config.Config, blobs database.BlobStore, clock convergence.Clock) (*app, error) {
	registry := services.NewRegistry(blobs, cfg.DriverPasskey)
	if err := registry.Seed(ctx); err != nil {
		return nil, err
	}

	auth, err := services.NewAuthenticator(map[models.Role]services.StaffCredential{
		models.RoleKitchen: {Identifier: cfg.Kitchen.Identifier, Password: cfg.Kitchen.Password},
		models.RoleManager: {Identifier: cfg.Manager.Identifier, Password: cfg.Manager.Password},
		models.RoleAdmin:   {Identifier: cfg.Admin.Identifier, Password: cfg.Admin.Password},
	})
	if err != nil {
		return nil, err
	}

	store := services.NewOrderStore(blobs)
	orders := services.NewOrderService(store, registry, cfg.DeliveryFee)
	monitor := services.NewOrderMonitor(store, cfg.PollInterval, clock, nil)

	engine := router.SetupRouter(router.Deps{
		Orders:       orders,
		Registry:     registry,
		Auth:         auth,
		CORSOrigin:   cfg.CORSOrigin,
		RateLimitRPS: cfg.RateLimitRPS,
		HSTS:         cfg.TLS,
	})
	return &app{engine: engine, monitor: monitor}, nil
}

func main() {
	utils.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}
	utils.SetJWTSecret(cfg.JWTSecret)
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	blobs, err := config.OpenStore(ctx, cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer blobs.Close()

	a, err := buildApp(ctx, cfg, blobs, convergence.RealClock{})
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to start: %v", err)
	}

	a.monitor.Start(ctx)
	defer a.monitor.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		utils.InfoLogger.Infof("Listening on port %s (store: %s)", cfg.Port, cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Errorf("Graceful shutdown failed: %v", err)
	}
}

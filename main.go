// File: main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/YarKhan02/Workshop-sub000/config"
	"github.com/YarKhan02/Workshop-sub000/cron"
	"github.com/YarKhan02/Workshop-sub000/database"
	"github.com/YarKhan02/Workshop-sub000/database/repository"
	"github.com/YarKhan02/Workshop-sub000/handlers"
	"github.com/YarKhan02/Workshop-sub000/middleware"
	"github.com/YarKhan02/Workshop-sub000/models"
	"github.com/YarKhan02/Workshop-sub000/routes"
	"github.com/YarKhan02/Workshop-sub000/services/backend"
	"github.com/YarKhan02/Workshop-sub000/services/invoice"
	"github.com/YarKhan02/Workshop-sub000/services/notification"
	"github.com/YarKhan02/Workshop-sub000/services/session"
	"github.com/YarKhan02/Workshop-sub000/services/wizard"
	"github.com/YarKhan02/Workshop-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const invoiceCacheTTL = 24 * time.Hour

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	sessionCache := utils.GetSessionCacheClient()
	redisClients := []*redis.Client{sessionCache}

	wizardRepo, err := newWizardRepo(cfg, &redisClients)
	if err != nil {
		logger.Fatal("main: failed to initialize wizard store", zap.Error(err))
	}

	client := backend.NewClient(cfg.BackendBaseURL, time.Duration(cfg.BackendTimeoutSeconds)*time.Second, logger)
	sessions := middleware.Sessions{
		Store:        session.NewRedisStore(sessionCache, time.Duration(cfg.SessionTTLHours)*time.Hour),
		Cookie:       cfg.SessionCookie,
		LoginPath:    cfg.LoginPath,
		MaxAge:       cfg.SessionTTLHours * 3600,
		SecureCookie: config.IsProduction(),
	}
	invoices := invoice.NewCache(sessionCache, invoiceCacheTTL)
	company := models.Company{Name: cfg.CompanyName, Address: cfg.CompanyAddress, Currency: cfg.Currency}

	listeners := notification.Multi{
		notification.LogListener{Logger: logger},
		notification.NewMetricsListener(prometheus.DefaultRegisterer),
	}
	var worker *asynq.Server
	if cfg.NotifyConfirmations {
		queue := asynq.NewClient(cron.QueueRedisOpt())
		defer queue.Close()
		listeners = append(listeners, notification.QueueListener{Queue: queue, Logger: logger})
		worker = cron.InitConfirmationWorker(invoices, company, logger)
	}

	wizardService := wizard.NewWizardService(wizardRepo, client, client, client.Bookings(), listeners, logger)

	handlerBundle := handlers.NewHandlerBundle(handlers.Dependencies{
		Sessions:         sessions,
		AuthGateway:      client,
		CatalogGateway:   client,
		VehicleGateway:   client,
		BookingGateway:   client.Bookings(),
		Wizard:           wizardService,
		Invoices:         invoices,
		Company:          company,
		ConfirmationPath: cfg.ConfirmationPath,
	})

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(utils.ErrorHandler())
	routes.RegisterRoutes(router, handlerBundle, routes.Options{
		AllowedOrigins:    cfg.AllowedOrigins(),
		MaxRequestsPerMin: cfg.MaxRequestsPerMin,
		Metrics:           middleware.NewServerMetrics(prometheus.DefaultRegisterer, "bff"),
		Gatherer:          prometheus.DefaultGatherer,
	})

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, redisClients, database.MongoClient)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting server",
		zap.String("addr", srv.Addr),
		zap.String("backend", cfg.BackendBaseURL),
		zap.String("wizardStore", cfg.WizardStore))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	database.CloseDB(ctx)

	logger.Info("main: server stopped gracefully")
}

// newWizardRepo picks the wizard session store named by WIZARD_STORE.
// Redis-backed stores add their client to clients for health checks.
func newWizardRepo(cfg config.Config, clients *[]*redis.Client) (repository.WizardRepository, error) {
	ttl := time.Duration(cfg.WizardTTLMinutes) * time.Minute
	switch cfg.WizardStore {
	case "", "redis":
		client := utils.GetWizardCacheClient()
		*clients = append(*clients, client)
		return repository.NewRedisWizardRepo(client, ttl), nil
	case "mongo":
		db, err := database.InitDB(context.Background())
		if err != nil {
			return nil, err
		}
		return repository.NewMongoWizardRepo(db, ttl)
	case "memory":
		return repository.NewMemoryWizardRepo(ttl), nil
	}
	return nil, fmt.Errorf("unknown WIZARD_STORE %q", cfg.WizardStore)
}

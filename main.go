// File: aarogya/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aarogya/config"
	"aarogya/cron"
	"aarogya/database"
	catalogRepo "aarogya/database/repository/catalog"
	recordsRepo "aarogya/database/repository/records"
	schedulerRepo "aarogya/database/repository/scheduler"
	"aarogya/handlers"
	"aarogya/middleware"
	"aarogya/routes"
	"aarogya/services/booking"
	"aarogya/services/notification"
	"aarogya/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	scheduler := schedulerRepo.NewMongoSchedulerRepo()
	catalog := catalogRepo.NewMongoCatalogRepo()
	records := recordsRepo.NewMongoRecordRepo()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := scheduler.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
	}
	cancel()

	// Push notifications need Firebase credentials; fall back to log-only
	// delivery when they are absent so local setups still run.
	var notifSvc notification.NotificationService
	if _, err := os.Stat(config.AppConfig.FirebaseCredentialsFile); err == nil {
		utils.FirebaseInit()
		notifSvc = notification.NewFCMNotificationService()
	} else {
		logger.Sugar().Warn("main: firebase credentials not found, push notifications are log-only")
		notifSvc = &notification.LogNotificationService{}
	}

	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer taskClient.Close()
	cron.InitReminderWorker(notifSvc)

	// services.
	dispatcher := &booking.SideEffectDispatcher{
		Notification: notifSvc,
		Records:      records,
		Tasks:        taskClient,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:       scheduler,
		Catalog:    catalog,
		Dispatcher: dispatcher,
		Cache:      utils.GetCacheClient(),
		CacheTTL:   time.Duration(config.AppConfig.AvailabilityCacheTTL) * time.Second,
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)

	// Register routes and background health checks.
	routes.RegisterRoutes(router, bookingHandler)
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

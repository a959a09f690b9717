// File: hemovida/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hemovida/config"
	"hemovida/cron"
	"hemovida/database"
	appointmentRepoPkg "hemovida/database/repository/appointment"
	campaignRepoPkg "hemovida/database/repository/campaign"
	centerRepoPkg "hemovida/database/repository/center"
	userRepoPkg "hemovida/database/repository/user"
	"hemovida/handlers"
	"hemovida/middleware"
	"hemovida/routes"
	"hemovida/services/appointment"
	"hemovida/services/campaign"
	"hemovida/services/center"
	"hemovida/services/notification"
	"hemovida/services/updates"
	"hemovida/services/user"
	"hemovida/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	apptRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	centerRepo := centerRepoPkg.NewMongoCenterRepo()
	campaignRepo := campaignRepoPkg.NewMongoCampaignRepo()

	if err := center.SeedDefaultCenters(centerRepo); err != nil {
		logger.Sugar().Fatalf("main: failed to seed center directory: %v", err)
	}

	// services.
	hub := updates.NewHub()
	notificationService := notification.NewFCMNotificationService()
	reminderScheduler := cron.NewReminderScheduler()
	defer reminderScheduler.Close()

	userService := &user.DefaultUserService{
		Repo: userRepo,
	}
	directoryService := &center.DefaultDirectoryService{
		Repo: centerRepo,
	}
	appointmentService := &appointment.DefaultAppointmentService{
		Repo:      apptRepo,
		UserRepo:  userRepo,
		Directory: directoryService,
		Hub:       hub,
		Notifier:  notificationService,
		Reminders: reminderScheduler,
	}
	campaignService := &campaign.DefaultCampaignService{
		Repo: campaignRepo,
		Hub:  hub,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserSvc:     userService,
		ApptSvc:     appointmentService,
		CampaignSvc: campaignService,
		Directory:   directoryService,
		UserRepo:    userRepo,
		Hub:         hub,
		Logger:      logger,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the reminder worker.
	cron.InitReminderWorker(apptRepo, userRepo, notificationService)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

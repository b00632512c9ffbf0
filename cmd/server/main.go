package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"famlink/internal/config"
	"famlink/internal/database"
	"famlink/internal/handlers"
	"famlink/internal/push"
	"famlink/internal/repository"
	"famlink/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	callHomeRepo := repository.NewCallHomeRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	eventRepo := repository.NewEventRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Push dispatcher: FCM when configured, otherwise a logging no-op
	dispatcher := newDispatcher(cfg)

	// Email service (disabled without SES configuration)
	emailService, err := service.NewEmailService(cfg.SESRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenDuration)
	familyService := service.NewFamilyService(familyRepo)
	invitationService := service.NewInvitationService(invitationRepo, familyRepo, emailService, cfg.InvitationTTL)
	removalService := service.NewRemovalService(familyRepo)
	callHomeService := service.NewCallHomeService(callHomeRepo, userRepo, familyRepo, dispatcher)
	scheduleService := service.NewScheduleService(taskRepo, eventRepo, familyService)
	locationService := service.NewLocationService(locationRepo, userRepo, familyService)
	messageService := service.NewMessageService(messageRepo, familyService)

	// Initialize handlers
	middleware := handlers.NewMiddleware(authService)
	authHandler := handlers.NewAuthHandler(authService)
	familyHandler := handlers.NewFamilyHandler(familyService, removalService)
	invitationHandler := handlers.NewInvitationHandler(invitationService)
	callHomeHandler := handlers.NewCallHomeHandler(callHomeService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	locationHandler := handlers.NewLocationHandler(locationService)
	messageHandler := handlers.NewMessageHandler(messageService)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))

	// Account routes
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("PUT /api/auth/device-token", middleware.RequireAuth(authHandler.UpdateDeviceToken))

	// Family routes
	mux.HandleFunc("POST /api/families", middleware.RequireAuth(familyHandler.CreateFamily))
	mux.HandleFunc("GET /api/families/{familyID}", middleware.RequireAuth(familyHandler.GetFamily))
	mux.HandleFunc("DELETE /api/families/{familyID}/members/{userID}", middleware.RequireAuth(familyHandler.RemoveMember))

	// Invitation routes
	mux.HandleFunc("POST /api/families/{familyID}/invitations", middleware.RequireAuth(invitationHandler.Invite))
	mux.HandleFunc("GET /api/families/{familyID}/invitations", middleware.RequireAuth(invitationHandler.ListInvitations))
	mux.HandleFunc("POST /api/invitations/accept", middleware.RequireAuth(invitationHandler.Accept))
	mux.HandleFunc("POST /api/invitations/decline", middleware.RequireAuth(invitationHandler.Decline))

	// Call-home routes
	mux.HandleFunc("POST /api/families/{familyID}/call-home", middleware.RequireAuth(callHomeHandler.Request))
	mux.HandleFunc("POST /api/families/{familyID}/call-home/respond", middleware.RequireAuth(callHomeHandler.Respond))

	// Schedule routes
	mux.HandleFunc("POST /api/families/{familyID}/tasks", middleware.RequireAuth(scheduleHandler.CreateTask))
	mux.HandleFunc("GET /api/families/{familyID}/tasks", middleware.RequireAuth(scheduleHandler.ListTasks))
	mux.HandleFunc("PUT /api/tasks/{taskID}/done", middleware.RequireAuth(scheduleHandler.SetTaskDone))
	mux.HandleFunc("DELETE /api/tasks/{taskID}", middleware.RequireAuth(scheduleHandler.DeleteTask))
	mux.HandleFunc("POST /api/families/{familyID}/events", middleware.RequireAuth(scheduleHandler.CreateEvent))
	mux.HandleFunc("GET /api/families/{familyID}/events", middleware.RequireAuth(scheduleHandler.ListEvents))
	mux.HandleFunc("DELETE /api/events/{eventID}", middleware.RequireAuth(scheduleHandler.DeleteEvent))

	// Location routes
	mux.HandleFunc("POST /api/families/{familyID}/locations", middleware.RequireAuth(locationHandler.RecordEntry))
	mux.HandleFunc("GET /api/families/{familyID}/locations", middleware.RequireAuth(locationHandler.ListEntries))

	// Message routes
	mux.HandleFunc("POST /api/families/{familyID}/messages", middleware.RequireAuth(messageHandler.SendMessage))
	mux.HandleFunc("GET /api/families/{familyID}/messages", middleware.RequireAuth(messageHandler.ListMessages))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background invitation sweep
	go runInvitationSweep(invitationService, cfg.SweepInterval)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// newDispatcher picks the push backend from configuration
func newDispatcher(cfg *config.Config) push.Dispatcher {
	if cfg.FCMProjectID == "" || cfg.FCMCredentialsFile == "" {
		log.Println("Push dispatch disabled: FCM not configured")
		return push.NopDispatcher{}
	}

	dispatcher, err := push.NewFCMDispatcher(context.Background(), cfg.FCMProjectID, cfg.FCMCredentialsFile)
	if err != nil {
		log.Printf("Warning: failed to initialize FCM, push dispatch disabled: %v", err)
		return push.NopDispatcher{}
	}

	log.Printf("Push dispatch enabled: project=%s", cfg.FCMProjectID)
	return dispatcher
}

// runInvitationSweep periodically expires stale invitations and deletes
// terminal ones. An immediate pass runs at startup so a restarted server
// does not wait a full interval to catch up.
func runInvitationSweep(invitationService *service.InvitationService, interval time.Duration) {
	sweep := func() {
		result, err := invitationService.Sweep(time.Now())
		if err != nil {
			log.Printf("Invitation sweep failed: %v", err)
			return
		}
		log.Printf("Invitation sweep: deleted=%d expired=%d skipped=%d",
			result.Deleted, result.Expired, result.Skipped)
	}

	sweep()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		sweep()
	}
}

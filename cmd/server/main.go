package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/venturelink/backend/docs"
	"github.com/venturelink/backend/internal/audit"
	"github.com/venturelink/backend/internal/config"
	"github.com/venturelink/backend/internal/handlers"
	"github.com/venturelink/backend/internal/ledger"
	mW "github.com/venturelink/backend/internal/middleware"
	"github.com/venturelink/backend/internal/otp"
	"github.com/venturelink/backend/internal/services"
	"github.com/venturelink/backend/internal/storage"
)

// @title VentureLink Backend API
// @version 1.0
// @description API for the entrepreneur and investor networking platform
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg := config.Load(".env")
	otpCfg := config.LoadOTPConfig()

	// Initialize Swagger docs
	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.StorageDriver)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageDriver, err)
	}
	defer store.Close()

	redisClient := redisFor(ctx, store, cfg.StorageDriver, otpCfg.Mode)

	var verifier otp.Verifier
	switch {
	case otpCfg.Mode == config.OTPModeRedis && redisClient != nil:
		verifier = otp.NewRedisVerifier(redisClient, otpCfg.CodeLength, otpCfg.CodeTTL, otpCfg.KeyPrefix)
		log.Println("[OTP] Using Redis-issued codes")
	default:
		verifier = otp.NewStaticVerifier(otpCfg.DemoCode, otpCfg.CodeTTL)
		log.Println("[OTP] Using demo code verifier")
	}

	seed := ledger.BalanceTable{
		ledger.Investor:     cfg.SeedInvestor,
		ledger.Entrepreneur: cfg.SeedEntrepreneur,
	}
	ledgerService := services.NewLedgerService(store, seed, audit.NewLogger())
	if err := ledgerService.Load(ctx); err != nil {
		log.Fatalf("Failed to load ledger: %v", err)
	}

	authHandler := handlers.NewAuthHandler(services.NewAuthService(store, redisClient, verifier, otpCfg.CodeLength, cfg))
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	calendarHandler := handlers.NewCalendarHandler(services.NewCalendarService(store))
	documentHandler := handlers.NewDocumentHandler(services.NewDocumentService(store, cfg.ShareBaseURL))
	chatHandler := handlers.NewChatHandler(services.NewChatService(store))
	collabHandler := handlers.NewCollabHandler(services.NewCollabService(store))

	// Initialize auth middleware with Redis
	mW.InitAuthMiddleware(redisClient)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.RequestID)
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.Method("GET", "/health", handlers.NewHealthHandler(store))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints (no auth required)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/verify-otp", authHandler.VerifyOTP)
		r.Post("/auth/logout", authHandler.Logout)
		r.Post("/auth/password-strength", authHandler.PasswordStrength)
		r.Get("/documents/shared/{documentId}", documentHandler.GetShared)

		// Protected endpoints (auth required)
		r.Group(func(r chi.Router) {
			r.Use(mW.AuthMiddleware)

			r.Get("/auth/account", authHandler.Account)

			r.Post("/ledger/deposit", ledgerHandler.Deposit)
			r.Post("/ledger/withdraw", ledgerHandler.Withdraw)
			r.Post("/ledger/transfer", ledgerHandler.Transfer)
			r.Post("/ledger/funding", ledgerHandler.Fund)
			r.Get("/ledger/balances", ledgerHandler.Balances)
			r.Get("/ledger/history", ledgerHandler.History)
			r.Get("/ledger/reconcile", ledgerHandler.Reconcile)

			r.Post("/calendar/slots", calendarHandler.AddSlot)
			r.Get("/calendar/slots", calendarHandler.ListSlots)
			r.Delete("/calendar/slots/{slotId}", calendarHandler.DeleteSlot)
			r.Post("/calendar/meetings", calendarHandler.AddMeeting)
			r.Get("/calendar/meetings", calendarHandler.ListMeetings)
			r.Put("/calendar/meetings/{meetingId}/status", calendarHandler.UpdateMeetingStatus)
			r.Delete("/calendar/meetings/{meetingId}", calendarHandler.DeleteMeeting)

			r.Post("/documents", documentHandler.Add)
			r.Get("/documents", documentHandler.List)
			r.Delete("/documents/{documentId}", documentHandler.Delete)
			r.Post("/documents/{documentId}/share", documentHandler.Share)

			r.Get("/chat/conversations", chatHandler.Conversations)
			r.Get("/chat/{partnerId}/messages", chatHandler.Messages)
			r.Post("/chat/{partnerId}/messages", chatHandler.Send)
			r.Post("/chat/{partnerId}/read", chatHandler.MarkRead)

			r.Post("/collaborations", collabHandler.Create)
			r.Get("/collaborations", collabHandler.List)
			r.Put("/collaborations/{requestId}/status", collabHandler.UpdateStatus)
		})
	})

	// Start server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s (storage: %s)", cfg.Port, cfg.StorageDriver)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}

// redisFor returns the Redis client backing the token blacklist and OTP
// codes. The redis store's client is reused; otherwise a client is opened
// only when OTP_MODE asks for it. Nil means Redis is unavailable.
func redisFor(ctx context.Context, store storage.Store, driver, otpMode string) *redis.Client {
	if rs, ok := store.(*storage.RedisStore); ok {
		return rs.Client()
	}
	if otpMode != config.OTPModeRedis {
		return nil
	}
	client, err := storage.InitRedis(ctx)
	if err != nil {
		log.Printf("Warning: Redis unavailable with %s storage, falling back to demo OTP: %v", driver, err)
		return nil
	}
	return client
}

package main

import (
	"github.com/joho/godotenv"

	analyticshandler "astrodesk/internal/analytics/handler"
	analyticsrepository "astrodesk/internal/analytics/repository"
	analyticsservice "astrodesk/internal/analytics/service"
	authhandler "astrodesk/internal/auth/handler"
	authrepository "astrodesk/internal/auth/repository"
	authservice "astrodesk/internal/auth/service"
	bookinghandler "astrodesk/internal/bookings/handler"
	bookingrepository "astrodesk/internal/bookings/repository"
	bookingservice "astrodesk/internal/bookings/service"
	bookingvalidator "astrodesk/internal/bookings/validator"
	chathandler "astrodesk/internal/chat/handler"
	chatservice "astrodesk/internal/chat/service"
	healthhandler "astrodesk/internal/health/handler"
	inquiryhandler "astrodesk/internal/inquiries/handler"
	inquiryrepository "astrodesk/internal/inquiries/repository"
	inquiryservice "astrodesk/internal/inquiries/service"
	inquiryvalidator "astrodesk/internal/inquiries/validator"
	"astrodesk/pkg/app"
	"astrodesk/pkg/client"
	"astrodesk/pkg/config"
	"astrodesk/pkg/contracts"
	"astrodesk/pkg/events"
	"astrodesk/pkg/middleware"
	"astrodesk/pkg/token"
)

const ServiceName = "astrodesk"

func main() {
	// Missing .env is fine; the environment may carry everything already.
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.Log.Info("Starting astrodesk API server")
	cfg.SetMongo()

	publisher := events.New(cfg.KafkaBrokers, cfg.KafkaEventsTopic, cfg.Log)
	handlers := initHandlers(cfg, publisher)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, publisher, handlers...)
	serverApp.Run()
}

func initHandlers(cfg *config.Config, publisher events.Publisher) []contracts.Handler {
	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	auth := middleware.RequireAuth(tokens, cfg.Log)

	bookingRepo := bookingrepository.NewMongoBookingRepository(cfg)
	lockRepo := bookingrepository.NewSlotLockRepository(cfg)
	inquiryRepo := inquiryrepository.NewMongoInquiryRepository(cfg)
	adminRepo := authrepository.NewMongoAdminRepository(cfg)
	statsRepo := analyticsrepository.NewMongoStatsRepository(cfg)

	analyticsService := analyticsservice.NewAnalyticsService(statsRepo, bookingRepo, inquiryRepo, cfg)

	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		lockRepo,
		bookingvalidator.NewBookingValidator(cfg.Log),
		analyticsService,
		publisher,
		cfg,
	)
	inquiryService := inquiryservice.NewInquiryService(
		inquiryRepo,
		inquiryvalidator.NewInquiryValidator(cfg.Log),
		analyticsService,
		publisher,
		cfg,
	)
	authService := authservice.NewAuthService(adminRepo, tokens, cfg)

	groq := client.NewGroqClient(cfg.GroqBaseURL, cfg.GroqAPIKey, cfg.GroqModel, cfg.ChatTimeout)
	chatService := chatservice.NewChatService(groq, analyticsService, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		bookinghandler.NewBookingHandler(bookingService, auth, cfg.Log),
		inquiryhandler.NewInquiryHandler(inquiryService, auth, cfg.Log),
		authhandler.NewAuthHandler(authService, auth, cfg),
		chathandler.NewChatHandler(chatService, cfg.Log),
		analyticshandler.NewAnalyticsHandler(analyticsService, auth, cfg.Log),
		healthhandler.NewHealthHandler(cfg),
	}
}

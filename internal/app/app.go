package app

import (
	"errors"
	"fmt"
	"time"

	"gebeya_backend/internal/config"
	"gebeya_backend/internal/database"
	"gebeya_backend/internal/handlers"
	"gebeya_backend/internal/logger"
	"gebeya_backend/internal/middleware"
	"gebeya_backend/internal/models"
	"gebeya_backend/internal/pkg/email"
	"gebeya_backend/internal/pkg/sms"
	"gebeya_backend/internal/repositories"
	"gebeya_backend/internal/routes"
	"gebeya_backend/internal/services"
	"gebeya_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	// TranslateError maps driver errors onto gorm.ErrDuplicatedKey and
	// friends, which the repositories match on.
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
	logger.Info("Migrations applied")

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		logger.Info("Redis configured", "addr", cfg.Redis.Addr)
	} else {
		logger.Warn("REDIS_ADDR not set, rate limiting disabled")
	}

	serviceContainer := initializeServices(cfg, gormDB)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)

	apiLimiter := middleware.NewRateLimiter(redisClient, "api", 300, time.Minute)
	authLimiter := middleware.NewRateLimiter(redisClient, "auth", 20, time.Minute)

	routes.RegisterRoutes(ginRouter, appHandlers, apiLimiter, authLimiter)

	return ginRouter
}

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	AuthService         services.AuthService
	UserService         services.UserService
	ListingService      services.ListingService
	CategoryService     services.CategoryService
	ChatService         services.ChatService
	NotificationService services.NotificationService
	PlanService         services.PlanService
	PaymentService      services.PaymentService
	VerificationService services.VerificationService
	ContentService      services.ContentService
	AdminService        services.AdminService
	SystemConfigService services.SystemConfigService
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) *ServiceContainer {
	userRepo := repositories.NewUserRepository(gormDB)
	listingRepo := repositories.NewListingRepository(gormDB)
	categoryRepo := repositories.NewCategoryRepository(gormDB)
	chatRepo := repositories.NewChatRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	planRepo := repositories.NewPlanRepository(gormDB)
	paymentRepo := repositories.NewPaymentRepository(gormDB)
	settingRepo := repositories.NewSettingRepository(gormDB)
	announcementRepo := repositories.NewAnnouncementRepository(gormDB)
	locationRepo := repositories.NewLocationRepository(gormDB)
	emailTemplateRepo := repositories.NewEmailTemplateRepository(gormDB)

	var emailSender email.Sender
	emailConfig := email.Config{
		SMTPHost:  cfg.Email.SMTPHost,
		SMTPPort:  cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	}
	if emailConfig.Configured() {
		sender, err := email.NewSMTPSender(emailConfig, emailTemplateRepo)
		if err != nil {
			logger.Fatal("Failed to initialize email sender", "error", err)
		}
		emailSender = sender
	} else {
		logger.Warn("SMTP not configured, emails will be logged instead of sent")
		emailSender = &logEmailSender{}
	}

	var smsSender sms.Sender
	smsClient := sms.NewClient(cfg.SMS.APIKey, cfg.SMS.SenderID, cfg.SMS.BaseURL)
	if smsClient.Configured() {
		smsSender = smsClient
	} else {
		logger.Warn("SMS gateway not configured, messages will be logged instead of sent")
		smsSender = &logSMSSender{}
	}

	return &ServiceContainer{
		AuthService:         services.NewAuthService(userRepo, emailSender, smsSender),
		UserService:         services.NewUserService(userRepo),
		ListingService:      services.NewListingService(listingRepo, categoryRepo, notificationRepo),
		CategoryService:     services.NewCategoryService(categoryRepo),
		ChatService:         services.NewChatService(chatRepo, userRepo, notificationRepo),
		NotificationService: services.NewNotificationService(notificationRepo),
		PlanService:         services.NewPlanService(planRepo),
		PaymentService:      services.NewPaymentService(paymentRepo, userRepo, settingRepo, notificationRepo, nil),
		VerificationService: services.NewVerificationService(userRepo, notificationRepo),
		ContentService:      services.NewContentService(announcementRepo, locationRepo, emailTemplateRepo),
		AdminService:        services.NewAdminService(userRepo, listingRepo),
		SystemConfigService: services.NewSystemConfigService(settingRepo),
	}
}

func initializeHandlers(container *ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, container.AuthService),
		UserHandler:         handlers.NewUserHandler(baseHandler, container.UserService, container.ListingService, container.PaymentService),
		ListingHandler:      handlers.NewListingHandler(baseHandler, container.ListingService),
		CategoryHandler:     handlers.NewCategoryHandler(baseHandler, container.CategoryService),
		ChatHandler:         handlers.NewChatHandler(baseHandler, container.ChatService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, container.NotificationService),
		PlanHandler:         handlers.NewPlanHandler(baseHandler, container.PlanService),
		PaymentHandler:      handlers.NewPaymentHandler(baseHandler, container.PaymentService),
		VerificationHandler: handlers.NewVerificationHandler(baseHandler, container.VerificationService),
		ContentHandler:      handlers.NewContentHandler(baseHandler, container.ContentService),
		AdminHandler:        handlers.NewAdminHandler(baseHandler, container.AdminService, container.UserService, container.ListingService, container.SystemConfigService),
		HealthHandler:       handlers.NewHealthHandler(baseHandler),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin creates the bootstrap admin account on first run.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)

	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		FullName:     "Administrator",
		Email:        &adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleAdmin,
		AccountType:  models.AccountTypeIndividual,
		IsVerified:   true,
	}

	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("Created first admin user", "email", adminEmail)
	return nil
}

package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"lookhub/internal/auth"
	"lookhub/internal/broker"
	"lookhub/internal/config"
	"lookhub/internal/handlers"
	"lookhub/internal/imageprocessor"
	"lookhub/internal/importer"
	"lookhub/internal/logger"
	"lookhub/internal/middleware"
	"lookhub/internal/poster"
	"lookhub/internal/repositories"
	"lookhub/internal/routes"
	"lookhub/internal/services"
	"lookhub/internal/storage"
	"lookhub/internal/validator"
	"lookhub/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Infrastructure bundles the external systems the HTTP app depends on.
// Broker may be nil: publishing then answers 503 and /health reports it as disabled.
type Infrastructure struct {
	Storage  storage.Storage
	Broker   *broker.Broker
	Products services.ProductFetcher
}

// NewInfrastructure connects storage and the broker described by cfg.
func NewInfrastructure(ctx context.Context, cfg *config.Config) (*Infrastructure, error) {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	b := newBroker(cfg)
	if err := b.Ping(ctx); err != nil {
		logger.Warn("Broker unavailable, publishing is disabled", "addr", cfg.Redis.Addr, "error", err)
		b.Close()
		b = nil
	}

	return &Infrastructure{
		Storage:  storageInstance,
		Broker:   b,
		Products: importer.New(nil),
	}, nil
}

func (i *Infrastructure) Close() {
	if i.Broker != nil {
		if err := i.Broker.Close(); err != nil {
			logger.Warn("Failed to close broker", "error", err)
		}
	}
}

func newBroker(cfg *config.Config) *broker.Broker {
	return broker.New(broker.Config{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		UseTLS:   cfg.Redis.UseTLS,
	})
}

// Serve runs the HTTP server until ctx is cancelled. With withScheduler the producer and
// collector also run in this process.
func Serve(ctx context.Context, cfg *config.Config, withScheduler bool) error {
	gormDB, err := OpenDatabase(cfg)
	if err != nil {
		return err
	}
	defer closeDatabase(gormDB)

	infra, err := NewInfrastructure(ctx, cfg)
	if err != nil {
		return err
	}
	defer infra.Close()

	if withScheduler {
		if infra.Broker == nil {
			return errors.New("scheduler needs the broker, but it is unavailable")
		}
		scheduler, err := NewScheduler(cfg, gormDB, infra.Broker)
		if err != nil {
			return err
		}
		go scheduler.Start(ctx)
	}

	ginRouter := SetupRouter(cfg, gormDB, infra)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server startup error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, infra *Infrastructure) *gin.Engine {
	switch cfg.Server.Env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}
	apperrors.DebugErrors = cfg.Server.Env == "development"

	// 1. Инициализируем сервисы
	serviceContainer := initializeServices(cfg, infra)

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(cfg, serviceContainer, infra)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(cfg, gormDB)

	// 4. Делегируем регистрацию маршрутов пакету 'routes'
	routes.RegisterRoutes(ginRouter, appHandlers, middleware.APIAuth(serviceContainer.AuthService))

	return ginRouter
}

func initializeServices(cfg *config.Config, infra *Infrastructure) *services.ServiceContainer {
	// --- Инициализация репозиториев ---
	clothesRepo := repositories.NewClothesRepository()
	lookRepo := repositories.NewLookRepository()

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		logger.Warn("JWT_SECRET is not set, using a random secret: tokens will not survive a restart")
		secret = randomSecret()
	}
	tokens := auth.NewTokenManager(secret,
		time.Duration(cfg.Auth.APITokenTTL)*time.Minute,
		time.Duration(cfg.Auth.AdminTokenTTL)*time.Minute,
	)

	var queue services.LookSubmitter
	if infra.Broker != nil {
		queue = poster.NewQueue(infra.Broker)
	}

	// --- Инициализация сервисов ---
	clothesService := services.NewClothesService(clothesRepo, infra.Products, cfg.Server.APIHost)
	lookService := services.NewLookService(
		lookRepo,
		clothesRepo,
		infra.Storage,
		imageprocessor.NewProcessor(cfg.Upload.MaxImageSide),
		queue,
		cfg.Server.APIHost,
	)
	authService := services.NewAuthService(tokens, services.AuthConfig{
		APIKey:        cfg.Auth.APIKey,
		AdminUsername: cfg.Auth.AdminUsername,
		AdminPassword: cfg.Auth.AdminPassword,
	})

	return &services.ServiceContainer{
		ClothesService: clothesService,
		LookService:    lookService,
		AuthService:    authService,
		Storage:        infra.Storage,
	}
}

func initializeHandlers(cfg *config.Config, services *services.ServiceContainer, infra *Infrastructure) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	var brokerPinger handlers.Pinger
	if infra.Broker != nil {
		brokerPinger = infra.Broker
	}

	return &handlers.AppHandlers{
		AuthHandler:     handlers.NewAuthHandler(baseHandler, services.AuthService),
		ClothesHandler:  handlers.NewClothesHandler(baseHandler, services.ClothesService),
		LookHandler:     handlers.NewLookHandler(baseHandler, services.LookService, cfg.Upload.MaxSize),
		ImageHandler:    handlers.NewImageHandler(baseHandler, services.Storage),
		AdminHandler:    handlers.NewAdminHandler(baseHandler, services.AuthService, services.ClothesService, services.LookService, cfg.Auth.CookieSecure),
		FrontendHandler: handlers.NewFrontendHandler(baseHandler, services.LookService),
		HealthHandler:   handlers.NewHealthHandler(baseHandler, brokerPinger),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	router.Use(middleware.DBMiddleware(db))

	router.MaxMultipartMemory = 32 << 20
	router.SetHTMLTemplate(template.Must(handlers.LoadTemplates()))
	return router
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/contact-book/internal/config"
	"github.com/prperemyshlev/contact-book/internal/handler"
	"github.com/prperemyshlev/contact-book/internal/repository"
	"github.com/prperemyshlev/contact-book/internal/service"
	"github.com/prperemyshlev/contact-book/internal/utils"
	"github.com/prperemyshlev/contact-book/pkg/observability"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra     Infrastructure
	config    *config.Config
	router    *gin.Engine
	server    *http.Server
	mailQueue *service.MailQueue
}

func NewApp(infra Infrastructure, cfg *config.Config) (*App, error) {
	repos := repository.NewRepositories(infra.Postgres())

	jwtManager, err := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.Algorithm,
		cfg.JWT.AccessTokenExpiry.Duration,
		cfg.JWT.RefreshTokenExpiry.Duration,
		cfg.JWT.EmailTokenExpiry.Duration,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create jwt manager: %w", err)
	}

	authMetrics, err := observability.NewAuthMetrics(infra.MeterProvider().Meter(serviceName))
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	if err := handler.RegisterValidators(); err != nil {
		return nil, err
	}

	mailQueue := service.NewMailQueue(
		infra.Mailer(),
		jwtManager,
		authMetrics,
		infra.Logger(),
		cfg.Mail.Workers,
		cfg.Mail.Queue,
	)

	blacklistService := service.NewTokenBlacklistService(infra.Redis())
	rateLimiter := service.NewRateLimiter(infra.Redis())
	healthChecker := NewHealthChecker(infra)

	authService := service.NewAuthService(
		repos.User,
		jwtManager,
		blacklistService,
		mailQueue,
		authMetrics,
		infra.Logger(),
		cfg.Security.BCryptCost,
	)
	userService := service.NewUserService(repos.User, infra.Storage(), cfg.Security.BCryptCost)
	contactService := service.NewContactService(repos.Contact)

	handlers := routeHandlers{
		auth:    handler.NewAuthHandler(authService, cfg.Server.PublicURL),
		user:    handler.NewUserHandler(userService, cfg.Security.AvatarMaxBytes),
		contact: handler.NewContactHandler(contactService),
		health:  healthChecker,
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, cfg, handlers, authService, rateLimiter, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:     infra,
		config:    cfg,
		router:    router,
		server:    srv,
		mailQueue: mailQueue,
	}, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	a.mailQueue.Start()

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

// Shutdown stops the HTTP server, drains pending confirmation emails and
// then releases the infrastructure
func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	serverErr := a.server.Shutdown(ctx)
	queueErr := a.mailQueue.Stop(ctx)
	infraErr := a.infra.Shutdown(ctx)

	err := errors.Join(serverErr, queueErr, infraErr)
	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}

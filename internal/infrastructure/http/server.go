package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/nestly-app/payments-service/internal/adapter/handler/http"
	"github.com/nestly-app/payments-service/internal/config"
	"github.com/nestly-app/payments-service/internal/domain/model"
	"github.com/nestly-app/payments-service/internal/infrastructure/database"
	"github.com/nestly-app/payments-service/internal/middleware/auth"
	"github.com/nestly-app/payments-service/internal/usecase"
)

type Server struct {
	config *config.Config
	logger *zap.Logger
	echo   *echo.Echo
	repos  *database.Repositories
}

func NewServer(cfg *config.Config, logger *zap.Logger, repos *database.Repositories) *Server {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{"authorization", "x-client-info", "apikey", "content-type", "stripe-signature"},
	}))

	return &Server{
		config: cfg,
		logger: logger,
		echo:   e,
		repos:  repos,
	}
}

func (s *Server) Start() error {
	if err := s.setupRoutes(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() error {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	// Shared services
	notifier := usecase.NewNotificationService(s.repos.Notification, s.logger)
	paymentProcessor := usecase.NewPaymentEventProcessor(
		s.repos.ProcessedEvent,
		s.repos.Payment,
		s.repos.RentLedger,
		s.repos.Wallet,
		notifier,
		s.logger,
	)
	identityProcessor := usecase.NewIdentityEventProcessor(
		s.repos.ProcessedEvent,
		s.repos.Verification,
		s.repos.UserProfile,
		notifier,
		s.logger,
	)
	batchService := usecase.NewReportBatchService(
		s.repos.Reporting,
		s.repos.UserProfile,
		s.repos.RentLedger,
		s.logger,
	)

	// Webhook endpoints (provider-authenticated, outside API versioning)
	rentWebhook := handlers.NewStripeWebhookHandler(
		s.logger, s.config.Service.StripeWebhookSecret, model.EventSourceStripe, paymentProcessor)
	padWebhook := handlers.NewStripeWebhookHandler(
		s.logger, s.config.Service.StripePADWebhookSecret, model.EventSourceStripePAD, paymentProcessor)
	kycWebhook, err := handlers.NewKYCWebhookHandler(
		s.logger, s.config.Service.KYC.AllowedCIDRs, identityProcessor)
	if err != nil {
		return fmt.Errorf("failed to build KYC webhook handler: %w", err)
	}

	s.echo.POST("/webhooks/stripe", rentWebhook.Handle)
	s.echo.POST("/webhooks/stripe/pad", padWebhook.Handle)
	s.echo.POST("/webhooks/kyc", kycWebhook.Handle)

	// API v1 routes (require JWT authentication)
	jwtConfig := auth.JWTConfig{
		Secret: s.config.Service.JWTSecret,
		Logger: s.logger,
	}

	v1 := s.echo.Group("/api/v1", auth.JWTMiddleware(jwtConfig))

	paymentHandler := handlers.NewPaymentHandler(s.logger, s.repos.Payment)
	walletHandler := handlers.NewWalletHandler(s.logger, s.repos.Wallet)
	batchHandler := handlers.NewReportBatchHandler(s.logger, batchService)

	v1.GET("/payments/:intentID", paymentHandler.GetPayment)
	v1.GET("/wallet", walletHandler.GetWallet)
	v1.POST("/internal/report-batches", batchHandler.Trigger)

	return nil
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lumiere-studio/salon-booking/internal/config"
	dbpkg "github.com/lumiere-studio/salon-booking/internal/db"
	domain "github.com/lumiere-studio/salon-booking/internal/domain/slot"
	"github.com/lumiere-studio/salon-booking/internal/handlers"
	"github.com/lumiere-studio/salon-booking/internal/infra/backup"
	"github.com/lumiere-studio/salon-booking/internal/infra/hold"
	"github.com/lumiere-studio/salon-booking/internal/infra/mailer"
	"github.com/lumiere-studio/salon-booking/internal/infra/payment"
	"github.com/lumiere-studio/salon-booking/internal/logging"
	"github.com/lumiere-studio/salon-booking/internal/metrics"
	"github.com/lumiere-studio/salon-booking/internal/middleware"
	"github.com/lumiere-studio/salon-booking/internal/notification"
	"github.com/lumiere-studio/salon-booking/internal/routes"
	"github.com/lumiere-studio/salon-booking/internal/usecase/catalog"
	"github.com/lumiere-studio/salon-booking/internal/usecase/reservation"
)

func main() {

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// ======================================================
	// INFRA
	// ======================================================
	store, err := dbpkg.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open slot store", zap.Error(err))
	}
	repo := store.Repo

	var holds domain.HoldStore = hold.NoopStore{}
	redisClient, err := dbpkg.NewRedis(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to connect redis", zap.Error(err))
	}
	if redisClient != nil {
		holds = hold.NewRedisStore(redisClient, cfg.HoldTTL)
		defer redisClient.Close()
	} else {
		logger.Info("REDIS_ADDR not set, payment holds disabled")
	}

	gateway, err := newGateway(cfg)
	if err != nil {
		logger.Fatal("failed to configure payment provider", zap.Error(err))
	}

	var sender notification.Sender = notification.NoopSender{Log: logger}
	if cfg.MailEnabled() {
		sender = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:          cfg.SMTPHost,
			Port:          cfg.SMTPPort,
			Username:      cfg.SMTPUser,
			Password:      cfg.SMTPPassword,
			From:          cfg.MailFrom,
			StudioName:    cfg.StudioName,
			StudioAddress: cfg.StudioAddress,
		})
	} else {
		logger.Info("SMTP not configured, confirmation emails disabled")
	}
	dispatcher := notification.NewDispatcher(sender, logger)

	var uploader catalog.Uploader
	if cfg.BackupEnabled() {
		s3, err := backup.NewS3Uploader(backup.Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			logger.Fatal("failed to configure backup", zap.Error(err))
		}
		uploader = s3
	}

	if cfg.AdminSecret == "" && cfg.AdminSecretBcrypt == "" {
		logger.Warn("no admin secret configured, admin routes will reject every request")
	}

	metrics.Register()

	// ======================================================
	// USE CASES
	// ======================================================
	listSlots := catalog.NewListSlots(repo)
	checkout := reservation.NewRequestPaymentSession(repo, gateway, holds, reservation.CheckoutSettings{
		Amount:      cfg.DepositAmount,
		Currency:    cfg.DepositCurrency,
		FrontendURL: cfg.FrontendURL,
	}, logger)
	confirm := reservation.NewConfirmReservation(repo, holds, dispatcher, logger)

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger))

	routes.RegisterRoutes(router, routes.Deps{
		Public: handlers.NewPublicHandler(listSlots, checkout, confirm, logger),
		Admin: handlers.NewAdminHandler(
			listSlots,
			catalog.NewAddSlot(repo, logger),
			catalog.NewDeleteSlot(repo, logger),
			catalog.NewExportSlots(repo, uploader, logger),
			logger,
		),
		AdminGate:   middleware.NewAdminGate(cfg.AdminSecret, cfg.AdminSecretBcrypt),
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimitPerMin, logger),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", zap.String("addr", srv.Addr), zap.String("store", cfg.StoreBackend), zap.String("payments", cfg.PaymentProvider))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("server is shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	// No more confirms can arrive; flush pending emails.
	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Warn("pending confirmation emails dropped", zap.Error(err))
	}

	closeCtx, cancelClose := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelClose()
	if err := store.Close(closeCtx); err != nil {
		logger.Warn("close slot store", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newGateway(cfg *config.Config) (domain.PaymentGateway, error) {
	switch cfg.PaymentProvider {
	case config.ProviderStripe:
		if cfg.StripeSecretKey == "" {
			return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
		}
		return payment.NewStripe(cfg.StripeSecretKey), nil
	case config.ProviderMercadoPago:
		if cfg.MercadoPagoAccessToken == "" {
			return nil, fmt.Errorf("MERCADOPAGO_ACCESS_TOKEN is required")
		}
		mp, err := payment.NewMercadoPago(cfg.MercadoPagoAccessToken)
		if err != nil {
			return nil, err
		}
		return mp, nil
	}
	return nil, fmt.Errorf("unknown payment provider %q", cfg.PaymentProvider)
}

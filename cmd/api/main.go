package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/casamaria/storefront-backend/api/routes"
	authsvc "github.com/casamaria/storefront-backend/internal/auth"
	cartsvc "github.com/casamaria/storefront-backend/internal/cart"
	catalogsvc "github.com/casamaria/storefront-backend/internal/catalog"
	checkoutsvc "github.com/casamaria/storefront-backend/internal/checkout"
	chatsvc "github.com/casamaria/storefront-backend/internal/chat"
	mediasvc "github.com/casamaria/storefront-backend/internal/media"
	reviewsvc "github.com/casamaria/storefront-backend/internal/reviews"
	settingssvc "github.com/casamaria/storefront-backend/internal/settings"
	"github.com/casamaria/storefront-backend/internal/storage"
	"github.com/casamaria/storefront-backend/pkg/auth/session"
	"github.com/casamaria/storefront-backend/pkg/config"
	"github.com/casamaria/storefront-backend/pkg/db"
	"github.com/casamaria/storefront-backend/pkg/genai"
	"github.com/casamaria/storefront-backend/pkg/geocode"
	"github.com/casamaria/storefront-backend/pkg/logger"
	"github.com/casamaria/storefront-backend/pkg/metrics"
	"github.com/casamaria/storefront-backend/pkg/migrate"
	"github.com/casamaria/storefront-backend/pkg/money"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.Storage, logg)
	if err != nil {
		logg.Error(ctx, "failed to open storage", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeAll(dbClient); err != nil {
			logg.Error(ctx, "error closing storage", err)
		}
	}()

	sqlDB, err := dbClient.DB().DB()
	if err != nil {
		logg.Error(ctx, "failed to unwrap sql db", err)
		os.Exit(1)
	}
	if err := migrate.Up(ctx, sqlDB); err != nil {
		logg.Error(ctx, "failed to run migrations", err)
		os.Exit(1)
	}

	store, err := storage.New(dbClient, logg, cfg.Storage.MaxValueBytes)
	if err != nil {
		logg.Error(ctx, "failed to create store", err)
		os.Exit(1)
	}

	sessions, err := session.NewManager(store)
	if err != nil {
		logg.Error(ctx, "failed to create session manager", err)
		os.Exit(1)
	}

	catalogService, err := catalogsvc.NewService(ctx, store, logg)
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}
	reviewService, err := reviewsvc.NewService(ctx, store, logg)
	if err != nil {
		logg.Error(ctx, "failed to create review service", err)
		os.Exit(1)
	}
	settingsService, err := settingssvc.NewService(ctx, store, logg)
	if err != nil {
		logg.Error(ctx, "failed to create settings service", err)
		os.Exit(1)
	}
	authService, err := authsvc.NewService(ctx, store, sessions, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	moneyFmt, err := money.NewFormatter(cfg.Store.Locale, cfg.Store.CurrencyPrefix)
	if err != nil {
		logg.Error(ctx, "failed to create money formatter", err)
		os.Exit(1)
	}
	checkoutFormatter, err := checkoutsvc.NewFormatter(cfg.Store.SiteName, cfg.Store.WhatsAppPhone, moneyFmt)
	if err != nil {
		logg.Error(ctx, "failed to create checkout formatter", err)
		os.Exit(1)
	}

	cartManager := cartsvc.NewManager(cfg.Cart.TTL)
	normalizer := mediasvc.NewNormalizer(cfg.Media)

	var chatService *chatsvc.Service
	if cfg.Chat.APIKey != "" {
		chatClient, err := genai.NewClient(
			cfg.Chat.APIKey,
			genai.WithBaseURL(cfg.Chat.BaseURL),
			genai.WithModel(cfg.Chat.Model),
			genai.WithHTTPClient(&http.Client{Timeout: cfg.Chat.Timeout}),
		)
		if err != nil {
			logg.Error(ctx, "failed to create chat client", err)
			os.Exit(1)
		}
		chatService, err = chatsvc.NewService(chatClient, catalogService, logg)
		if err != nil {
			logg.Error(ctx, "failed to create chat service", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(ctx, "chat api key not set, assistant disabled")
	}

	geocodeClient := geocode.NewClient(
		geocode.WithBaseURL(cfg.Geocode.BaseURL),
		geocode.WithUserAgent(cfg.Geocode.UserAgent),
		geocode.WithHTTPClient(&http.Client{Timeout: cfg.Geocode.Timeout}),
	)

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.NewRouter(routes.Deps{
		Config:          cfg,
		Logger:          logg,
		DB:              dbClient,
		Sessions:        sessions,
		Catalog:         catalogService,
		Carts:           cartManager,
		Checkout:        checkoutFormatter,
		Money:           moneyFmt,
		Reviews:         reviewService,
		Settings:        settingsService,
		Auth:            authService,
		Media:           normalizer,
		Chat:            chatService,
		Geocode:         geocodeClient,
		Metrics:         httpMetrics,
		MetricsGatherer: registry,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

type closer interface {
	Close() error
}

func closeAll(closers ...closer) error {
	var err error
	for _, c := range closers {
		if c != nil {
			err = multierr.Append(err, c.Close())
		}
	}
	return err
}

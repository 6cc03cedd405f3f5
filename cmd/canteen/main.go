package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/yourorg/canteen-companion/internal/cart"
	"github.com/yourorg/canteen-companion/internal/client"
	"github.com/yourorg/canteen-companion/internal/config"
	"github.com/yourorg/canteen-companion/internal/controller"
	"github.com/yourorg/canteen-companion/internal/model"
	"github.com/yourorg/canteen-companion/internal/poller"
	"github.com/yourorg/canteen-companion/internal/session"
	"github.com/yourorg/canteen-companion/internal/ui"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	noDesktop := flag.Bool("no-desktop", false, "disable native desktop notifications")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set up logger
	logger, err := createLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Session token for the signed-in user
	sess, err := session.New(cfg.Auth.Token, cfg.Auth.TokenFile, logger)
	if err != nil {
		logger.Fatal("Failed to load session", zap.Error(err))
	}
	if sess.ExpiresSoon(24 * time.Hour) {
		logger.Warn("session token expires soon, sign in again on the web app")
	}

	// Backend client
	api := client.New(client.Config{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.API.Timeout,
		MaxRetries: cfg.API.MaxRetries,
		CSRFToken:  cfg.Auth.CSRFToken,
		Tokens:     sess,
	}, logger)

	// Route table; fall back to the known layout when the backend is
	// unreachable so navigation keeps working.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 15*time.Second)
	routes, err := api.Routes(startupCtx)
	cancelStartup()
	if err != nil {
		logger.Warn("could not fetch route table, using defaults", zap.Error(err))
		routes = model.DefaultRoutes()
	}

	// Cart store rehydrated from the last snapshot
	storage := cart.NewFileStorage(cfg.Cart.Path)
	store := cart.NewStore(storage, decimal.NewFromFloat(cfg.Cart.ServiceFeeRate), logger)

	// Presentation layer
	toaster := ui.NewToaster(os.Stdout, cfg.UI.ToastDuration)
	prompter := ui.NewPrompter(os.Stdin, os.Stdout)

	// Notification poller: deliver to the desktop and the banner stack,
	// and keep the unread badge on the server-reported count.
	notifPoller := poller.New(api, cfg.Poller.Interval, time.Now(), logger)
	notifPoller.AddSink(ui.NewDesktopNotifier(!*noDesktop, logger))
	notifPoller.AddSink(ui.NewBannerSink(toaster))
	notifPoller.SetUnreadCounter(ui.NewUnreadBadge(func(count int) {
		if count > 0 {
			logger.Info("unread notifications", zap.Int("count", count))
		}
	}))

	ctrl := controller.New(controller.Options{
		API:       api,
		Cart:      store,
		Poller:    notifPoller,
		Toaster:   toaster,
		Prompter:  prompter,
		Routes:    routes,
		Currency:  cfg.UI.Currency,
		Out:       os.Stdout,
		IdleAfter: cfg.Poller.IdleAfter,
		Logger:    logger,
	})

	// Run until the user quits or we get a signal
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("Shutting down...")
		cancel()
	}()

	err = ctrl.Run(ctx)

	notifPoller.Stop()
	toaster.Close()

	if err != nil && err != context.Canceled {
		logger.Fatal("Session ended with error", zap.Error(err))
	}
	logger.Info("Goodbye")
}

func createLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	// Parse log level
	var zapLevel zap.AtomicLevel
	switch cfg.Level {
	case "debug":
		zapLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	encoding := cfg.Format
	if encoding != "json" {
		encoding = "console"
	}

	zapCfg := zap.Config{
		Level:            zapLevel,
		Development:      false,
		Encoding:         encoding,
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return zapCfg.Build()
}

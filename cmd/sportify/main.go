package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/omarshaarawi/sportify/internal/api/products"
	"github.com/omarshaarawi/sportify/internal/api/sportsdb"
	"github.com/omarshaarawi/sportify/internal/auth"
	"github.com/omarshaarawi/sportify/internal/bot"
	"github.com/omarshaarawi/sportify/internal/config"
	"github.com/omarshaarawi/sportify/internal/events"
	"github.com/omarshaarawi/sportify/internal/favorites"
	"github.com/omarshaarawi/sportify/internal/logging"
	"github.com/omarshaarawi/sportify/internal/metrics"
	"github.com/omarshaarawi/sportify/internal/repository"
	"github.com/omarshaarawi/sportify/internal/repository/bolt"
	"github.com/omarshaarawi/sportify/internal/repository/memory"
	"github.com/omarshaarawi/sportify/internal/scheduler"
	"github.com/omarshaarawi/sportify/internal/service"
	"github.com/omarshaarawi/sportify/internal/theme"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger, logFile := logging.New(cfg.Log)
	defer logFile.Close()
	slog.SetDefault(logger)

	store, closeStore, err := openStore(cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStore()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(registry)

	sportsClient := sportsdb.NewClient(cfg.SportsAPI, recorder)
	sportsAPI := sportsdb.NewAPI(sportsClient)

	sportsService := service.NewSportsService(service.Options{
		Directory:     sportsAPI,
		Resolver:      events.NewResolver(sportsAPI, recorder),
		Favorites:     favorites.NewStore(store),
		Themes:        theme.NewPreferences(store),
		Catalog:       products.NewClient(cfg.DummyAPI),
		Clock:         clockwork.NewRealClock(),
		DefaultLeague: cfg.SportsAPI.DefaultLeagueID,
	})

	telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot, sportsService, auth.NewService(store), auth.NewSessions())
	if err != nil {
		return err
	}

	sched, err := scheduler.NewScheduler(cfg.Digest, sportsService, telegramBot.SendMessage)
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/", healthCheckHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: cfg.Server.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := telegramBot.Start(ctx); err != nil {
			slog.Error("Error running telegram bot", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Error stopping HTTP server", "error", err)
	}

	return nil
}

// openStore uses bbolt when a path is configured and memory otherwise.
func openStore(cfg config.Storage) (repository.Store, func(), error) {
	if cfg.Path == "" {
		return memory.NewRepository(), func() {}, nil
	}

	db, err := bolt.Open(cfg.Path)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("Using on-disk storage", "path", cfg.Path)
	return db, func() {
		if err := db.Close(); err != nil {
			slog.Error("Error closing storage", "error", err)
		}
	}, nil
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/jmorales/seatscout/internal/cache"
	"github.com/jmorales/seatscout/internal/catalog"
	"github.com/jmorales/seatscout/internal/config"
	"github.com/jmorales/seatscout/internal/creds"
	"github.com/jmorales/seatscout/internal/database"
	"github.com/jmorales/seatscout/internal/history"
	"github.com/jmorales/seatscout/internal/listings"
	"github.com/jmorales/seatscout/internal/poller"
	"github.com/jmorales/seatscout/internal/server"
	"github.com/jmorales/seatscout/internal/stream"
	"github.com/jmorales/seatscout/internal/token"
	"github.com/jmorales/seatscout/internal/track"
	"github.com/jmorales/seatscout/internal/vendor"
	"github.com/jmorales/seatscout/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/seatscout.local.yaml", "path to config file")
	flag.Parse()

	// Local .env files override nothing in CI; missing files are fine.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting seatscout",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"env", cfg.Instance.Env,
		"database_driver", cfg.Database.Driver,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Tracking store and optional history pool.
	var pool *pgxpool.Pool
	var trackStore track.Store

	switch cfg.Database.Driver {
	case "postgres":
		logger.Info("connecting to database",
			"host", cfg.Database.Postgres.Host,
			"port", cfg.Database.Postgres.Port,
			"database", cfg.Database.Postgres.Name,
		)
		pool, err = database.Connect(ctx, cfg.Database.Postgres)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		trackStore = track.NewPostgresStore(pool)
	case "sqlite":
		trackStore, err = track.NewSQLiteStore(ctx, cfg.Database.SQLitePath)
		if err != nil {
			logger.Error("failed to open sqlite store", "error", err, "path", cfg.Database.SQLitePath)
			os.Exit(1)
		}
	}
	defer trackStore.Close()

	// Vendor credentials, token cache, and clients.
	credStore := creds.FromConfig(cfg.Vendors)
	tokenCache := token.NewCache(credStore, map[string]token.Endpoint{
		vendor.StubHub:      {URL: cfg.Vendors.StubHub.TokenURL, Scope: cfg.Vendors.StubHub.Scope},
		vendor.Ticketmaster: {URL: cfg.Vendors.Ticketmaster.TokenURL, Scope: cfg.Vendors.Ticketmaster.Scope},
	}, token.WithLogger(logger))

	var fetchers []listings.Fetcher
	if cfg.Vendors.StubHub.ClientID != "" {
		client := vendor.NewClient(vendor.StubHub, cfg.Vendors.StubHub.BaseURL, tokenCache,
			vendor.WithTimeout(cfg.Vendors.StubHub.Timeout),
			vendor.WithLogger(logger),
		)
		fetchers = append(fetchers, &listings.StubHubSource{Client: client})
	}
	if cfg.Vendors.Ticketmaster.ClientID != "" {
		client := vendor.NewClient(vendor.Ticketmaster, cfg.Vendors.Ticketmaster.BaseURL, tokenCache,
			vendor.WithTimeout(cfg.Vendors.Ticketmaster.Timeout),
			vendor.WithAPIKey(cfg.Vendors.Ticketmaster.APIKey),
			vendor.WithLogger(logger),
		)
		fetchers = append(fetchers, &listings.TicketmasterSource{Client: client})
	}
	if len(fetchers) == 0 {
		logger.Warn("no vendor credentials configured, serving demo prices only")
	}

	// Listing cache: Redis when configured, in-process otherwise.
	var listingCache cache.Cache
	if cfg.Cache.Redis.Addr != "" {
		listingCache, err = cache.NewRedis(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		logger.Info("redis cache connected", "addr", cfg.Cache.Redis.Addr)
	} else {
		listingCache = cache.NewMemory()
	}
	defer listingCache.Close()

	cat := catalog.New(pool, logger)
	pricesSvc := listings.NewService(fetchers, cat, listingCache, cfg.Cache.TTL, logger)

	// History writer only runs against Postgres.
	var historyWriter *history.Writer
	var historyReader *history.Reader
	if pool != nil {
		historyWriter = history.NewWriter(history.DefaultWriterConfig(), pool, logger)
		if err := historyWriter.Start(ctx); err != nil {
			logger.Error("failed to start history writer", "error", err)
			os.Exit(1)
		}
		historyReader = history.NewReader(pool)
	}

	hub := stream.NewHub(logger)

	// Poller sinks are interfaces; a typed nil would dodge the nil checks.
	var recorder poller.Recorder
	if historyWriter != nil {
		recorder = historyWriter
	}
	pricePoller := poller.New(poller.Config{
		Interval:    cfg.Poller.Interval,
		Concurrency: cfg.Poller.Concurrency,
		Timeout:     cfg.Poller.Timeout,
	}, trackStore, pricesSvc, recorder, hub, logger)
	if err := pricePoller.Start(ctx); err != nil {
		logger.Error("failed to start poller", "error", err)
		os.Exit(1)
	}

	var historySource server.HistorySource
	if historyReader != nil {
		historySource = historyReader
	}
	handlers := server.NewHandlers(pricesSvc, cat, trackStore, historySource, logger)
	router := server.NewRouter(server.RouterConfig{
		Handlers:       handlers,
		Stream:         hub.ServeWS,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
	})

	srv := server.New(cfg.Server.Port, router, logger)
	srvErr := srv.Start()

	logger.Info("seatscout running",
		"instance_id", cfg.Instance.ID,
		"port", cfg.Server.Port,
		"vendors", len(fetchers),
	)

	select {
	case <-ctx.Done():
	case err := <-srvErr:
		if err != nil {
			logger.Error("http server failed", "error", err)
			cancel()
		}
	}

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Warn("http server shutdown error", "error", err)
	}
	if err := pricePoller.Stop(shutdownCtx); err != nil {
		logger.Warn("poller shutdown error", "error", err)
	}
	if historyWriter != nil {
		if err := historyWriter.Stop(shutdownCtx); err != nil {
			logger.Warn("history writer shutdown error", "error", err)
		}
	}

	logger.Info("seatscout stopped")
}

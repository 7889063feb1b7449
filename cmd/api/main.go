package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "seller_lens/internal/adapters/http_server"
	"seller_lens/internal/adapters/observability"
	redisad "seller_lens/internal/adapters/redis"
	"seller_lens/internal/adapters/web"
	"seller_lens/internal/app"
	"seller_lens/internal/domain"
	"seller_lens/internal/shared"
	"seller_lens/internal/storage/fixture"
	mysqlrepo "seller_lens/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	repo, closeRepo := openRepo(ctx, cfg)
	defer closeRepo()

	// a nil Cache keeps the query service on the store alone
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, continuing; reads fall back to the store")
		}
		defer rc.Close()
		cache = rc
	}
	q := app.NewQueryService(repo, cache, cfg.CacheTTL)

	pages, err := web.New()
	if err != nil {
		log.Fatal().Err(err).Msg("page templates failed")
	}

	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Q:                q,
		Pages:            pages,
		DefaultSellerID:  cfg.DefaultSellerID,
		DefaultProductID: cfg.DefaultProductID,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("store", cfg.Store).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openRepo picks the catalogue store named by STORE.
func openRepo(ctx context.Context, cfg shared.Config) (domain.CatalogRepository, func()) {
	if cfg.Store == shared.StoreMySQL {
		if cfg.MySQLMigrate {
			if err := mysqlrepo.Migrate(cfg.MySQLDSN); err != nil {
				log.Fatal().Err(err).Msg("migrations failed")
			}
		}
		db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("database connection failed")
		}
		log.Info().Msg("database connection ok")
		return mysqlrepo.New(db), func() { _ = db.Close() }
	}

	cat := fixture.Default()
	if cfg.CatalogFile != "" {
		c, err := fixture.LoadFile(cfg.CatalogFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.CatalogFile).Msg("catalog file failed")
		}
		cat = c
	}
	log.Info().Int("sellers", len(cat.Sellers)).Int("reviews", len(cat.Reviews)).Msg("serving in-memory catalog")
	return fixture.New(cat), func() {}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"seller_lens/internal/adapters/feed"
	"seller_lens/internal/adapters/observability"
	redisad "seller_lens/internal/adapters/redis"
	"seller_lens/internal/app"
	"seller_lens/internal/domain"
	"seller_lens/internal/shared"
	"seller_lens/internal/storage/fixture"
	mysqlrepo "seller_lens/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	observability.Serve(cfg.MetricsAddr, observability.InitRegistry())

	if cfg.MySQLMigrate {
		if err := mysqlrepo.Migrate(cfg.MySQLDSN); err != nil {
			log.Fatal().Err(err).Msg("migrations failed")
		}
	}
	db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()
	repo := mysqlrepo.New(db)

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		cache = rc
	}

	if cfg.FeedBase == "" {
		seed(ctx, cfg, repo, cache)
		return
	}

	client, err := feed.New(cfg.FeedBase, cfg.FeedKey, cfg.FeedRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize feed client")
	}
	ing := app.NewIngestionService(client, repo, cache)

	log.Info().
		Str("base", cfg.FeedBase).
		Int("workers", cfg.Workers).
		Int("sellers", len(cfg.SellerIDs)).
		Int("products", len(cfg.ProductIDs)).
		Msg("ingestor starting")

	sem := semaphore.NewWeighted(int64(cfg.Workers))

	// sellers before products so listings link to known sellers
	run(ctx, sem, "seller", cfg.SellerIDs, func(id int64) (app.Outcome, error) {
		return ing.IngestSeller(ctx, id)
	})
	run(ctx, sem, "product", cfg.ProductIDs, func(id int64) (app.Outcome, error) {
		return ing.IngestProduct(ctx, id, cfg.ReviewCount)
	})
	log.Info().Msg("ingestion completed")
}

// run ingests ids with at most sem's weight in flight and waits for all.
func run(ctx context.Context, sem *semaphore.Weighted, kind string, ids []int64, fn func(int64) (app.Outcome, error)) {
	var wg sync.WaitGroup
	for _, id := range ids {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("ingest interrupted")
			break
		}

		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			defer sem.Release(1)

			out, err := fn(id)
			if err != nil {
				observability.ObserveIngest(kind, "error")
				log.Warn().Str("kind", kind).Int64("id", id).Err(err).Msg("ingest failed")
				return
			}
			observability.ObserveIngest(kind, string(out))
		}(id)
	}
	wg.Wait()
}

// seed copies the compiled-in catalogue, or CATALOG_FILE, into MySQL.
func seed(ctx context.Context, cfg shared.Config, repo domain.CatalogRepository, cache domain.Cache) {
	cat := fixture.Default()
	if cfg.CatalogFile != "" {
		c, err := fixture.LoadFile(cfg.CatalogFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.CatalogFile).Msg("catalog file failed")
		}
		cat = c
	}
	if err := app.NewIngestionService(nil, repo, cache).Seed(ctx, cat); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

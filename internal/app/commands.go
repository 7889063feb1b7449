package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"seller_lens/internal/domain"
)

type IngestionService struct {
	feed  domain.FeedClient
	repo  domain.CatalogRepository
	cache domain.Cache
}

func NewIngestionService(f domain.FeedClient, r domain.CatalogRepository, cache domain.Cache) *IngestionService {
	return &IngestionService{feed: f, repo: r, cache: cache}
}

// Outcome labels the result of one ingest call.
type Outcome string

const (
	OutcomeOK   Outcome = "ok"
	OutcomeMiss Outcome = "miss"
)

// missStatus maps the feed's known refusal errors to the status recorded in
// the miss log. Anything else is unexpected.
func missStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, true
	}
	return 0, false
}

func (s *IngestionService) IngestSeller(ctx context.Context, id int64) (Outcome, error) {
	l := log.With().Str("run_id", uuid.NewString()).Str("kind", "seller").Int64("id", id).Logger()

	p, err := s.feed.GetSeller(ctx, id)
	if err != nil {
		if st, ok := missStatus(err); ok {
			_ = s.repo.LogMiss(ctx, "seller", id, st, err.Error())
			s.del(ctx, sellerKey(id))
			l.Info().Int("status", st).Msg("seller miss")
			return OutcomeMiss, nil
		}
		return "", err
	}

	sl := mapSeller(p)
	if sl.ID == 0 {
		sl.ID = id
	}
	if err := s.repo.UpsertSeller(ctx, sl); err != nil {
		return "", fmt.Errorf("upsert seller %d: %w", id, err)
	}
	s.del(ctx, sellerKey(id))
	l.Info().Msg("seller ingested")
	return OutcomeOK, nil
}

// IngestProduct upserts the product first, then its reviews. Review refusals
// are logged as misses without failing the product.
func (s *IngestionService) IngestProduct(ctx context.Context, id int64, reviewCount int) (Outcome, error) {
	l := log.With().Str("run_id", uuid.NewString()).Str("kind", "product").Int64("id", id).Logger()

	p, err := s.feed.GetProduct(ctx, id)
	if err != nil {
		if st, ok := missStatus(err); ok {
			_ = s.repo.LogMiss(ctx, "product", id, st, err.Error())
			s.del(ctx, productKey(id), reviewsKey(id))
			l.Info().Int("status", st).Msg("product miss")
			return OutcomeMiss, nil
		}
		return "", err
	}

	pr := mapProduct(p)
	if pr.ID == 0 {
		pr.ID = id
	}
	if err := s.repo.UpsertProduct(ctx, pr); err != nil {
		return "", fmt.Errorf("upsert product %d: %w", id, err)
	}
	s.del(ctx, productKey(id))

	revs, err := s.feed.GetReviews(ctx, id, reviewCount)
	if err != nil {
		if st, ok := missStatus(err); ok {
			_ = s.repo.LogMiss(ctx, "reviews", id, st, err.Error())
			s.del(ctx, reviewsKey(id))
			l.Info().Int("status", st).Msg("reviews miss")
			return OutcomeOK, nil
		}
		return "", err
	}
	mapped := mapReviews(id, revs)
	if len(mapped) > 0 {
		if err := s.repo.UpsertReviews(ctx, mapped); err != nil {
			return "", fmt.Errorf("upsert reviews for %d: %w", id, err)
		}
	}
	// even an empty result drops the stale list
	s.del(ctx, reviewsKey(id))
	l.Info().Int("reviews", len(mapped)).Int("dropped", len(revs)-len(mapped)).Msg("product ingested")
	return OutcomeOK, nil
}

// Seed copies a whole catalogue into the repository, parents first.
func (s *IngestionService) Seed(ctx context.Context, c domain.Catalog) error {
	for _, v := range c.Sellers {
		if err := s.repo.UpsertSeller(ctx, v); err != nil {
			return fmt.Errorf("seed seller %d: %w", v.ID, err)
		}
		s.del(ctx, sellerKey(v.ID))
	}
	for _, v := range c.Products {
		if err := s.repo.UpsertProduct(ctx, v); err != nil {
			return fmt.Errorf("seed product %d: %w", v.ID, err)
		}
		s.del(ctx, productKey(v.ID), reviewsKey(v.ID))
	}
	if len(c.Reviews) > 0 {
		if err := s.repo.UpsertReviews(ctx, c.Reviews); err != nil {
			return fmt.Errorf("seed reviews: %w", err)
		}
	}
	log.Info().Int("sellers", len(c.Sellers)).Int("products", len(c.Products)).
		Int("reviews", len(c.Reviews)).Msg("catalog seeded")
	return nil
}

func (s *IngestionService) del(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	for _, k := range keys {
		_ = s.cache.Del(ctx, k)
	}
}

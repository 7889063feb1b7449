package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"seller_lens/internal/analysis"
	"seller_lens/internal/domain"
)

type QueryService struct {
	repo     domain.CatalogRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

// NewQueryService wires the read side. A nil cache reads straight from the repo.
func NewQueryService(r domain.CatalogRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

type SellerView struct {
	Seller domain.Seller           `json:"seller"`
	Stars  []analysis.StarFill     `json:"stars"`
	Trust  analysis.TrustBreakdown `json:"trust"`
}

type ReviewCard struct {
	Review     domain.Review       `json:"review"`
	Badge      analysis.Badge      `json:"badge"`
	Reasons    []analysis.Reason   `json:"reasons"`
	Confidence *int                `json:"confidence,omitempty"` // nil for an unknown classification
	Stars      []analysis.StarFill `json:"stars"`
	Excerpt    string              `json:"excerpt"`
	Truncated  bool                `json:"truncated"`
}

type ReviewsPage struct {
	Product    domain.Product   `json:"product"`
	Filter     analysis.Filter  `json:"filter"`
	Sort       analysis.SortKey `json:"sort"`
	Query      string           `json:"q,omitempty"`
	Items      []ReviewCard     `json:"items"`
	Matched    int              `json:"matched"`
	NextCursor *string          `json:"next_cursor,omitempty"`
	Stats      analysis.Stats   `json:"stats"`
}

func (s *QueryService) GetSeller(ctx context.Context, id int64) (SellerView, error) {
	sl, err := s.seller(ctx, id)
	if err != nil {
		return SellerView{}, err
	}
	return SellerView{
		Seller: sl,
		Stars:  analysis.Stars(sl.Rating),
		Trust:  analysis.PresentProfile(sl.Trust),
	}, nil
}

func (s *QueryService) Trust(ctx context.Context, sellerID int64) (analysis.TrustBreakdown, error) {
	sl, err := s.seller(ctx, sellerID)
	if err != nil {
		return analysis.TrustBreakdown{}, err
	}
	return analysis.PresentProfile(sl.Trust), nil
}

// ReviewsPage lists one page of cards. Stats always cover the product's whole
// collection, independent of filter, search and paging.
func (s *QueryService) ReviewsPage(ctx context.Context, productID int64, o analysis.ListOptions) (ReviewsPage, error) {
	p, err := s.product(ctx, productID)
	if err != nil {
		return ReviewsPage{}, err
	}
	all, err := s.reviews(ctx, productID)
	if err != nil {
		return ReviewsPage{}, err
	}
	pg, err := analysis.Apply(all, o)
	if err != nil {
		return ReviewsPage{}, err
	}

	out := ReviewsPage{
		Product:    p,
		Filter:     o.Filter,
		Sort:       o.Sort,
		Query:      o.Query,
		Items:      make([]ReviewCard, 0, len(pg.Items)),
		Matched:    pg.Matched,
		NextCursor: pg.NextCursor,
		Stats:      analysis.Aggregate(all),
	}
	if out.Filter == "" {
		out.Filter = analysis.FilterAll
	}
	if out.Sort == "" {
		out.Sort = analysis.SortNewest
	}
	for _, r := range pg.Items {
		out.Items = append(out.Items, card(r))
	}
	return out, nil
}

func (s *QueryService) Stats(ctx context.Context, productID int64) (analysis.Stats, error) {
	if _, err := s.product(ctx, productID); err != nil {
		return analysis.Stats{}, err
	}
	all, err := s.reviews(ctx, productID)
	if err != nil {
		return analysis.Stats{}, err
	}
	return analysis.Aggregate(all), nil
}

// Explain returns the full card of one review of the product.
func (s *QueryService) Explain(ctx context.Context, productID, reviewID int64) (ReviewCard, error) {
	all, err := s.reviews(ctx, productID)
	if err != nil {
		return ReviewCard{}, err
	}
	for _, r := range all {
		if r.ID == reviewID {
			return card(r), nil
		}
	}
	return ReviewCard{}, domain.ErrNotFound
}

func card(r domain.Review) ReviewCard {
	c := ReviewCard{
		Review:  r,
		Reasons: analysis.Explain(r.Classification, r.Flags),
		Stars:   analysis.Stars(float64(r.Rating)),
	}
	if c.Reasons == nil {
		c.Reasons = []analysis.Reason{}
	}
	c.Badge, _ = analysis.BadgeFor(r.Classification)
	if conf, ok := analysis.Confidence(r.Classification); ok {
		c.Confidence = &conf
	}
	c.Excerpt, c.Truncated = analysis.Excerpt(r.Content, analysis.ExcerptRunes)
	return c
}

/********** cached repo reads **********/

func sellerKey(id int64) string  { return fmt.Sprintf("seller:%d", id) }
func productKey(id int64) string { return fmt.Sprintf("product:%d", id) }
func reviewsKey(id int64) string { return fmt.Sprintf("reviews:%d", id) }

func (s *QueryService) seller(ctx context.Context, id int64) (domain.Seller, error) {
	var v domain.Seller
	if s.cached(ctx, sellerKey(id), &v) {
		return v, nil
	}
	v, err := s.repo.GetSeller(ctx, id)
	if err != nil {
		return domain.Seller{}, err
	}
	s.store(ctx, sellerKey(id), v)
	return v, nil
}

func (s *QueryService) product(ctx context.Context, id int64) (domain.Product, error) {
	var v domain.Product
	if s.cached(ctx, productKey(id), &v) {
		return v, nil
	}
	v, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	s.store(ctx, productKey(id), v)
	return v, nil
}

func (s *QueryService) reviews(ctx context.Context, productID int64) ([]domain.Review, error) {
	var v []domain.Review
	if s.cached(ctx, reviewsKey(productID), &v) {
		return v, nil
	}
	rs, err := s.repo.ListReviews(ctx, productID)
	if err != nil {
		return nil, err
	}
	// copy so callers never share the repo's backing array
	v = make([]domain.Review, len(rs))
	copy(v, rs)
	s.store(ctx, reviewsKey(productID), v)
	return v, nil
}

// cached reports a hit; cache errors count as a miss.
func (s *QueryService) cached(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	ok, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return false
	}
	return ok
}

func (s *QueryService) store(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

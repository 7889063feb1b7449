package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"seller_lens/internal/analysis"
	"seller_lens/internal/app"
	"seller_lens/internal/domain"
	"seller_lens/internal/storage/fixture"
)

type fakeFeed struct {
	sellers    map[int64]map[string]any
	products   map[int64]map[string]any
	reviews    map[int64][]map[string]any
	reviewsErr error
}

func (f *fakeFeed) GetSeller(ctx context.Context, id int64) (map[string]any, error) {
	if v, ok := f.sellers[id]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("seller %d: %w", id, domain.ErrNotFound)
}

func (f *fakeFeed) GetProduct(ctx context.Context, id int64) (map[string]any, error) {
	if v, ok := f.products[id]; ok {
		return v, nil
	}
	return nil, domain.ErrForbidden
}

func (f *fakeFeed) GetReviews(ctx context.Context, id int64, count int) ([]map[string]any, error) {
	if f.reviewsErr != nil {
		return nil, f.reviewsErr
	}
	return f.reviews[id], nil
}

func TestIngestProduct_UpsertsAndInvalidates(t *testing.T) {
	feed := &fakeFeed{
		products: map[int64]map[string]any{7: {"title": "Desk Fan", "seller_id": "1"}},
		reviews: map[int64][]map[string]any{7: {
			{
				"review_id": 70.0, "author": "Ana", "rating": 5.0, "text": "good good good",
				"created_at": "2025-02-01T10:00:00Z", "label": "Botted",
				"flags": map[string]any{"repeatedKeywords": []any{"good", "good", "good"}, "starReviewMismatch": true},
			},
			{"author": "Ben", "rating": "4", "text": "Works fine.", "date": "2025-02-02", "classification": "real"},
			{"author": "Cy", "rating": 9.0, "text": "out of scale"},
		}},
	}
	repo := fixture.New(fixture.Catalog{})
	cache := &fakeCache{}
	svc := app.NewIngestionService(feed, repo, cache)

	out, err := svc.IngestProduct(context.Background(), 7, 10)
	if err != nil || out != app.OutcomeOK {
		t.Fatalf("ingest: %v %v", out, err)
	}

	p, err := repo.GetProduct(context.Background(), 7)
	if err != nil || p.Name != "Desk Fan" || p.SellerID != 1 {
		t.Fatalf("unexpected product: %+v %v", p, err)
	}
	rs, _ := repo.ListReviews(context.Background(), 7)
	if len(rs) != 2 {
		t.Fatalf("expected 2 reviews (one dropped), got %d", len(rs))
	}
	var botted domain.Review
	for _, r := range rs {
		if r.ID == 70 {
			botted = r
		}
	}
	f, ok := botted.Flags.(domain.BottedFlags)
	if !ok || len(f.RepeatedKeywords) != 3 || botted.Date != "2025-02-01" {
		t.Fatalf("unexpected mapped review: %+v", botted)
	}

	wantDel := map[string]bool{"product:7": false, "reviews:7": false}
	for _, k := range cache.dels {
		if _, ok := wantDel[k]; ok {
			wantDel[k] = true
		}
	}
	for k, seen := range wantDel {
		if !seen {
			t.Fatalf("expected %s to be invalidated, dels=%v", k, cache.dels)
		}
	}
}

func TestIngest_MissesAreLogged(t *testing.T) {
	repo := fixture.New(fixture.Catalog{})
	svc := app.NewIngestionService(&fakeFeed{}, repo, nil)
	ctx := context.Background()

	if out, err := svc.IngestSeller(ctx, 5); err != nil || out != app.OutcomeMiss {
		t.Fatalf("seller: %v %v", out, err)
	}
	if out, err := svc.IngestProduct(ctx, 6, 10); err != nil || out != app.OutcomeMiss {
		t.Fatalf("product: %v %v", out, err)
	}

	m := repo.Misses()
	if len(m) != 2 || m[0].Kind != "seller" || m[0].Status != 404 || m[1].Kind != "product" || m[1].Status != 403 {
		t.Fatalf("unexpected misses: %+v", m)
	}
}

func TestIngestProduct_UnexpectedReviewErrorSurfaces(t *testing.T) {
	feed := &fakeFeed{
		products:   map[int64]map[string]any{1: {"name": "Fan"}},
		reviewsErr: errors.New("remote 502"),
	}
	svc := app.NewIngestionService(feed, fixture.New(fixture.Catalog{}), nil)
	if _, err := svc.IngestProduct(context.Background(), 1, 10); err == nil {
		t.Fatalf("expected error to surface")
	}
}

func TestIngestSeller_MapsProfile(t *testing.T) {
	feed := &fakeFeed{sellers: map[int64]map[string]any{
		3: {
			"seller_name": "Acme", "rating": "4,5", "positive_percent": "91%", "verified": true,
			"trust": map[string]any{
				"score": 82.0,
				"checks": []any{map[string]any{
					"name": "New Seller Risk", "status": "warning", "value": 0.21, "threshold": 0.2,
				}},
			},
		},
	}}
	repo := fixture.New(fixture.Catalog{})
	svc := app.NewIngestionService(feed, repo, nil)
	if _, err := svc.IngestSeller(context.Background(), 3); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	q := app.NewQueryService(repo, nil, time.Minute)
	v, err := q.GetSeller(context.Background(), 3)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v.Seller.Name != "Acme" || v.Seller.Rating != 4.5 || v.Seller.PositivePercent != 91 {
		t.Fatalf("unexpected seller: %+v", v.Seller)
	}
	if v.Trust.Band.Color != "yellow" || len(v.Trust.Checks) != 1 || v.Trust.Checks[0].Tone != "yellow" {
		t.Fatalf("unexpected trust: %+v", v.Trust)
	}
}

func TestSeed_CopiesCatalog(t *testing.T) {
	target := fixture.New(fixture.Catalog{})
	svc := app.NewIngestionService(nil, target, nil)
	if err := svc.Seed(context.Background(), fixture.Default()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	q := app.NewQueryService(target, nil, time.Minute)
	st, err := q.Stats(context.Background(), fixture.ProductID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Total != 8 || st.AverageRatingText() != "4.1" {
		t.Fatalf("unexpected stats: %+v", st)
	}
	if _, err := q.ReviewsPage(context.Background(), fixture.ProductID, analysis.ListOptions{Sort: analysis.SortHelpful}); err != nil {
		t.Fatalf("page: %v", err)
	}
}

package fixture_test

import (
	"context"
	"errors"
	"testing"

	"seller_lens/internal/domain"
	"seller_lens/internal/storage/fixture"
)

func TestDefaultCatalog_Shape(t *testing.T) {
	c := fixture.Default()
	if len(c.Sellers) != 1 || len(c.Products) != 1 || len(c.Reviews) != 8 {
		t.Fatalf("unexpected catalog sizes: %d sellers, %d products, %d reviews",
			len(c.Sellers), len(c.Products), len(c.Reviews))
	}
	ids := map[int64]bool{}
	for _, r := range c.Reviews {
		if ids[r.ID] {
			t.Fatalf("duplicate review id %d", r.ID)
		}
		ids[r.ID] = true
		if r.Flags == nil || r.Flags.Classification() != r.Classification {
			t.Fatalf("review %d: flags variant does not match %q", r.ID, r.Classification)
		}
	}
}

func TestStore_ListReviewsOrderedAndIsolated(t *testing.T) {
	s := fixture.NewDefault()
	ctx := context.Background()

	rs, err := s.ListReviews(ctx, fixture.ProductID)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	for i := 1; i < len(rs); i++ {
		if rs[i-1].ID >= rs[i].ID {
			t.Fatalf("reviews not ordered by id: %d then %d", rs[i-1].ID, rs[i].ID)
		}
	}

	// mutating the returned slice must not leak into the store
	rs[0].Title = "changed"
	again, _ := s.ListReviews(ctx, fixture.ProductID)
	if again[0].Title == "changed" {
		t.Fatalf("store returned aliased review data")
	}
}

func TestStore_NotFound(t *testing.T) {
	s := fixture.NewDefault()
	ctx := context.Background()
	if _, err := s.GetSeller(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for seller, got %v", err)
	}
	if _, err := s.GetProduct(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for product, got %v", err)
	}
	if _, err := s.ListReviews(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for reviews, got %v", err)
	}
}

func TestStore_UpsertAndMisses(t *testing.T) {
	s := fixture.New(fixture.Catalog{})
	ctx := context.Background()

	if err := s.UpsertProduct(ctx, domain.Product{ID: 7, SellerID: 3, Name: "Lamp"}); err != nil {
		t.Fatalf("UpsertProduct: %v", err)
	}
	err := s.UpsertReviews(ctx, []domain.Review{
		{ID: 11, ProductID: 7, Rating: 4, Classification: domain.ClassReal, Flags: domain.RealFlags{}},
	})
	if err != nil {
		t.Fatalf("UpsertReviews: %v", err)
	}
	if err := s.UpsertReviews(ctx, []domain.Review{{ProductID: 7}}); err == nil {
		t.Fatalf("expected error for review without id")
	}
	rs, err := s.ListReviews(ctx, 7)
	if err != nil || len(rs) != 1 {
		t.Fatalf("unexpected reviews: %+v err=%v", rs, err)
	}

	_ = s.LogMiss(ctx, "seller", 3, 404, "not found")
	if m := s.Misses(); len(m) != 1 || m[0].Status != 404 {
		t.Fatalf("unexpected misses: %+v", m)
	}

	snap := s.Snapshot()
	if len(snap.Products) != 1 || len(snap.Reviews) != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

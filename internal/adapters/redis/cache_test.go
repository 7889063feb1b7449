package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "seller_lens/internal/adapters/redis"
	"seller_lens/internal/domain"
	"seller_lens/internal/storage/fixture"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetGetDel(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	var miss domain.Product
	if ok, err := c.Get(ctx, "product:1", &miss); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	in := domain.Product{ID: 1, SellerID: 1, Name: "Leclerc Fan"}
	if err := c.Set(ctx, "product:1", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL("product:1"); ttl != time.Minute {
		t.Fatalf("unexpected ttl %v", ttl)
	}

	var out domain.Product
	if ok, err := c.Get(ctx, "product:1", &out); !ok || err != nil || out != in {
		t.Fatalf("unexpected get: %+v ok=%v err=%v", out, ok, err)
	}

	if err := c.Del(ctx, "product:1"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if mr.Exists("product:1") {
		t.Fatalf("key should be gone")
	}
}

func TestCache_ReviewsKeepFlagVariants(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "reviews:1", fixture.Default().Reviews, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	var out []domain.Review
	if ok, err := c.Get(ctx, "reviews:1", &out); !ok || err != nil {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(out) != 8 {
		t.Fatalf("expected 8 reviews, got %d", len(out))
	}
	if _, ok := out[2].Flags.(domain.SuspiciousFlags); !ok {
		t.Fatalf("expected SuspiciousFlags, got %T", out[2].Flags)
	}
}

func TestCache_CorruptValueIsAnError(t *testing.T) {
	c, mr := newCache(t)
	_ = mr.Set("seller:1", "{not json")

	var v domain.Seller
	if ok, err := c.Get(context.Background(), "seller:1", &v); ok || err == nil {
		t.Fatalf("expected decode error, got ok=%v err=%v", ok, err)
	}
}

package shared_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"seller_lens/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir()) // no .env here
	t.Setenv("STORE", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("CACHE_TTL_SECONDS", "")

	c := shared.Load()
	if c.Store != shared.StoreFixture || c.RedisAddr != "" || c.CacheTTL != 15*time.Minute {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.DefaultSellerID != 1 || c.DefaultProductID != 1 || !c.MySQLMigrate {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoad_DotEnvAndOverrides(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("STORE=mysql\nINGEST_PRODUCT_IDS=3, 4,x,5\nFEED_RPS=9\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("FEED_RPS", "2") // real env wins
	t.Cleanup(func() {
		os.Unsetenv("STORE")
		os.Unsetenv("INGEST_PRODUCT_IDS")
	})

	c := shared.Load()
	if c.Store != shared.StoreMySQL || c.FeedRPS != 2 {
		t.Fatalf("unexpected config: %+v", c)
	}
	if len(c.ProductIDs) != 3 || c.ProductIDs[2] != 5 {
		t.Fatalf("unexpected ids: %v", c.ProductIDs)
	}
}

func TestLoad_UnknownStoreFallsBack(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE", "postgres")
	if c := shared.Load(); c.Store != shared.StoreFixture {
		t.Fatalf("expected fixture, got %s", c.Store)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	StoreFixture = "fixture"
	StoreMySQL   = "mysql"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	LogFile     string

	Store        string // fixture|mysql
	CatalogFile  string
	MySQLDSN     string
	MySQLMigrate bool

	RedisAddr string // empty disables the cache
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	FeedBase    string
	FeedKey     string
	FeedRPS     int
	Workers     int
	ReviewCount int
	SellerIDs   []int64
	ProductIDs  []int64

	DefaultSellerID  int64
	DefaultProductID int64
}

// Load reads the environment, after merging a .env file from the working
// directory when one exists. Real environment variables win over .env.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg(".env could not be read")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		LogFile:     env("LOG_FILE", ""),

		Store:        strings.ToLower(env("STORE", StoreFixture)),
		CatalogFile:  env("CATALOG_FILE", ""),
		MySQLDSN:     env("MYSQL_DSN", "root:root@tcp(localhost:3306)/seller_lens?parseTime=true&charset=utf8mb4&loc=UTC&multiStatements=true"),
		MySQLMigrate: envBool("MYSQL_MIGRATE", true),

		RedisAddr: env("REDIS_ADDR", ""),
		RedisPass: env("REDIS_PASSWORD", ""),
		RedisDB:   atoi("REDIS_DB", 0),
		CacheTTL:  time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,

		FeedBase:    env("FEED_BASE_URL", ""),
		FeedKey:     env("FEED_API_KEY", ""),
		FeedRPS:     atoi("FEED_RPS", 5),
		Workers:     atoi("INGEST_WORKERS", 8),
		ReviewCount: atoi("INGEST_REVIEW_COUNT", 100),
		SellerIDs:   ParseIDs(os.Getenv("INGEST_SELLER_IDS")),
		ProductIDs:  ParseIDs(os.Getenv("INGEST_PRODUCT_IDS")),

		DefaultSellerID:  int64(atoi("DEFAULT_SELLER_ID", 1)),
		DefaultProductID: int64(atoi("DEFAULT_PRODUCT_ID", 1)),
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.Store != StoreFixture && c.Store != StoreMySQL {
		log.Warn().Str("store", c.Store).Msg("unknown STORE, using fixture")
		c.Store = StoreFixture
	}
	if c.FeedBase != "" && c.FeedKey == "" {
		log.Warn().Msg("FEED_API_KEY is empty")
	}
	return c
}

// ParseIDs reads a comma separated id list, skipping blanks and junk.
func ParseIDs(s string) []int64 {
	var out []int64
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n <= 0 {
			log.Warn().Str("id", p).Msg("skipping invalid id")
			continue
		}
		out = append(out, n)
	}
	return out
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

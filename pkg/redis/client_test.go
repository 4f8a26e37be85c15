package redis

import (
	"testing"
	"time"

	"github.com/andriansp/smartdesa-backend/pkg/config"
)

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error when neither url nor address set")
	}
}

func TestOptionsFromConfigParsesURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{
		URL:         "redis://:pass@localhost:6379/2",
		PoolSize:    12,
		DialTimeout: 3 * time.Second,
	})
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Addr != "localhost:6379" {
		t.Fatalf("unexpected addr %s", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("unexpected db %d", opts.DB)
	}
	if opts.PoolSize != 12 {
		t.Fatalf("pool size fallback not applied: %d", opts.PoolSize)
	}
}

func TestOptionsFromConfigAddressFallback(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{Address: "127.0.0.1:6380", Password: "secret", DB: 1})
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Addr != "127.0.0.1:6380" || opts.Password != "secret" || opts.DB != 1 {
		t.Fatalf("unexpected opts: %+v", opts)
	}
}

func TestCacheKeyNamespacing(t *testing.T) {
	c := &Client{}
	key := c.CacheKey("popular_content", "village", "bayan")
	if key != "sd:cache:popular_content:village:bayan" {
		t.Fatalf("unexpected key %s", key)
	}
	if c.CacheKey() != "sd:cache" {
		t.Fatalf("unexpected empty-part key %s", c.CacheKey())
	}
}

func TestClientGuardsUninitializedStore(t *testing.T) {
	c := &Client{}
	if err := c.Ping(t.Context()); err == nil {
		t.Fatal("expected error from uninitialized client")
	}
	if _, err := c.Get(t.Context(), "k"); err == nil {
		t.Fatal("expected error from uninitialized client")
	}
}

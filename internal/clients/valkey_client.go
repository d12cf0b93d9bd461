package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

const VALKEY_CACHE_PREFIX = "sov:source_cache:"

type ValkeyConfig struct {
	Address  string
	Password string
	UseTLS   bool
}

// ValkeyClient caches fetched source outcomes so repeated queries do not burn
// API quota.
type ValkeyClient struct {
	Client valkey.Client
	cfg    ValkeyConfig
	mu     sync.Mutex
}

func newValkey(cfg ValkeyConfig) (valkey.Client, error) {
	opts := valkey.ClientOption{
		InitAddress:      []string{cfg.Address},
		Password:         cfg.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}
	return client, nil
}

func NewValkeyClient(cfg ValkeyConfig) (*ValkeyClient, error) {
	client, err := newValkey(cfg)
	if err != nil {
		return nil, err
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey", slog.String("address", cfg.Address))
	return &ValkeyClient{Client: client, cfg: cfg}, nil
}

func (vc *ValkeyClient) recreateClient() {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	slog.Warn("[ValkeyClient] Attempting to recreate Valkey client...")
	client, err := newValkey(vc.cfg)
	if err != nil {
		slog.Error("[ValkeyClient] Recreate failed", slog.String("error", err.Error()))
		return
	}
	vc.Client.Close()
	vc.Client = client
	slog.Info("[ValkeyClient] Successfully reconnected to valkey")
}

func (vc *ValkeyClient) client() valkey.Client {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.Client
}

func (vc *ValkeyClient) Close() {
	vc.client().Close()
}

func (vc *ValkeyClient) Ping(ctx context.Context) bool {
	c := vc.client()
	if err := c.Do(ctx, c.B().Ping().Build()).Error(); err != nil {
		slog.Warn("[ValkeyClient] Ping failed", slog.String("error", err.Error()))
		return false
	}
	return true
}

// Get returns the cached value for key. Misses and errors both report false.
func (vc *ValkeyClient) Get(ctx context.Context, key string) ([]byte, bool) {
	res := vc.DoWithRetry(ctx, func(c valkey.Client) valkey.Completed {
		return c.B().Get().Key(VALKEY_CACHE_PREFIX + key).Build()
	}, 3)

	if err := res.Error(); err != nil {
		if !valkey.IsValkeyNil(err) {
			slog.Warn("[ValkeyClient] Cache read failed",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
		return nil, false
	}

	data, err := res.AsBytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (vc *ValkeyClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	build := func(c valkey.Client) valkey.Completed {
		set := c.B().Set().Key(VALKEY_CACHE_PREFIX + key).Value(valkey.BinaryString(value))
		if secs := int64(ttl.Seconds()); secs > 0 {
			return set.ExSeconds(secs).Build()
		}
		return set.Build()
	}

	if err := vc.DoWithRetry(ctx, build, 3).Error(); err != nil {
		return fmt.Errorf("[ValkeyClient] failed to cache %s: %w", key, err)
	}
	return nil
}

// DoWithRetry rebuilds the command on every attempt since valkey recycles
// completed commands after they are sent.
func (vc *ValkeyClient) DoWithRetry(ctx context.Context, build func(valkey.Client) valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		c := vc.client()
		result = c.Do(ctx, build(c))
		err := result.Error()
		if err == nil || valkey.IsValkeyNil(err) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))

		if isConnectionError(err) {
			vc.recreateClient()
		}
		time.Sleep(250 * time.Millisecond)
	}

	return result
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}

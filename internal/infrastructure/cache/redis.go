package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"sync/atomic"
	"time"

	"jobboard/internal/config"

	"github.com/redis/go-redis/v9"
)

// NoExpiry stores a value until it is overwritten.
const NoExpiry time.Duration = 0

var ErrUnavailable = errors.New("redis unavailable")

// Redis is a JSON cache over go-redis. When the server cannot be reached at
// startup it degrades: reads miss and writes fail with ErrUnavailable.
type Redis struct {
	client *redis.Client
	logger *log.Logger

	warnedUnavailable atomic.Bool
}

func NewRedis(cfg config.RedisConfig, logger *log.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Printf("[Cache] Redis unavailable, bypassing cache: addr=%s err=%v", client.Options().Addr, err)
		}
		_ = client.Close()
		return &Redis{client: nil, logger: logger}
	}

	return &Redis{client: client, logger: logger}
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Printf("[Cache] Redis error, continuing without cache: %v", err)
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return ErrUnavailable
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}

// GetJSON decodes the value at key into out. A missing key, or an unavailable
// server, reports found=false without error.
func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnUnavailableOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

// SetManyJSON encodes every value first and then writes all keys in one
// MULTI/EXEC, so readers see either all old values or all new ones.
func (r *Redis) SetManyJSON(ctx context.Context, values map[string]any, ttl time.Duration) error {
	if r.isUnavailable() {
		return ErrUnavailable
	}
	if ttl < 0 {
		ttl = NoExpiry
	}

	encoded := make(map[string][]byte, len(values))
	for k, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		encoded[k] = b
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, b := range encoded {
			pipe.Set(ctx, k, b, ttl)
		}
		return nil
	})
	if err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

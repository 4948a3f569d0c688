package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/bootstrap"
)

type AdapterRedis struct {
	client *redis.Client
	cfg    *bootstrap.Config
	log    *zap.SugaredLogger
}

func NewAdapterRedis(cfg *bootstrap.Config, log *zap.SugaredLogger) *AdapterRedis {
	return &AdapterRedis{
		cfg: cfg,
		log: log,
	}
}

// Init connects to REDIS_URL, either a bare host:port or a redis:// URL.
func (a *AdapterRedis) Init(ctx context.Context) error {
	opts, err := redis.ParseURL(a.cfg.RedisUrl)
	if err != nil {
		opts = &redis.Options{Addr: a.cfg.RedisUrl}
	}
	a.client = redis.NewClient(opts)

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := a.client.Ping(ctxPing).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	a.log.Infof("connected to Redis at %s", opts.Addr)
	return nil
}

func (a *AdapterRedis) GetClient() *redis.Client {
	return a.client
}

func (a *AdapterRedis) Close(ctx context.Context) error {
	if a.client != nil {
		return a.client.Close()
	}
	return nil
}

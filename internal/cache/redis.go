package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"CryptoSentinel/internal/model"
)

// CoinListKey holds the JSON-encoded CoinGecko coin list.
const CoinListKey = "coingecko:coins:list"

// RedisCache stores the coin list in Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}

	log.Printf("[INFO] redis cache connected: %s", addr)
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) GetCoinList(ctx context.Context) ([]model.Coin, bool, error) {
	data, err := c.client.Get(ctx, CoinListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get coin list: %w", err)
	}
	var coins []model.Coin
	if err := json.Unmarshal(data, &coins); err != nil {
		return nil, false, fmt.Errorf("decode coin list: %w", err)
	}
	return coins, true, nil
}

func (c *RedisCache) SetCoinList(ctx context.Context, coins []model.Coin, ttl time.Duration) error {
	data, err := json.Marshal(coins)
	if err != nil {
		return fmt.Errorf("encode coin list: %w", err)
	}
	if err := c.client.Set(ctx, CoinListKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("set coin list: %w", err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

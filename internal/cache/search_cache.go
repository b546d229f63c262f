package cache

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/brainless/travlyng/internal/model"

	"github.com/go-redis/redis/v8"
)

// SearchCache кэширует результаты сквозного поиска в Redis.
// Значение nil безопасно: все операции превращаются в no-op, и поиск
// идет напрямую в базу.
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClient создает клиент Redis из переменных окружения REDIS_ADDR,
// REDIS_PASSWORD и REDIS_DB. Возвращает nil, если адрес не задан.
func NewClient() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	db, err := strconv.Atoi(os.Getenv("REDIS_DB"))
	if err != nil {
		db = 0
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})
}

// NewSearchCache создает кэш поиска. При client == nil возвращает nil.
func NewSearchCache(client *redis.Client, ttl time.Duration) *SearchCache {
	if client == nil {
		return nil
	}
	return &SearchCache{client: client, ttl: ttl}
}

func key(q string) string {
	return "search:" + q
}

// Get возвращает закэшированные результаты поиска по запросу q.
func (c *SearchCache) Get(ctx context.Context, q string) ([]model.SearchResult, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key(q)).Result()
	if err != nil {
		return nil, false
	}
	results := []model.SearchResult{}
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		return nil, false
	}
	return results, true
}

// Set сохраняет результаты поиска по запросу q. Ошибки кэша не влияют на
// результат поиска и только логируются.
func (c *SearchCache) Set(ctx context.Context, q string, results []model.SearchResult) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(q), raw, c.ttl).Err(); err != nil {
		log.Printf("Не удалось сохранить результаты поиска в кэш: %v", err)
	}
}

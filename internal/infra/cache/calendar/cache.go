package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SlotsKey ключ списка слотов салона в Redis
const SlotsKey = "salon:calendar:slots"

// SlotsStore общий интерфейс Cache и Noop
type SlotsStore interface {
	Get(ctx context.Context) ([]string, error)
	Set(ctx context.Context, slots []string) error
	Invalidate(ctx context.Context) error
}

// Cache кэш календаря слотов в Redis
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewCache(client redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает слоты из кэша или ErrCacheMiss
func (c *Cache) Get(ctx context.Context) ([]string, error) {
	raw, err := c.client.Get(ctx, SlotsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get: %v", ErrCache, err)
	}

	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		// Битое значение считаем промахом, его перезапишет следующий Set
		return nil, ErrCacheMiss
	}
	return slots, nil
}

// Set сохраняет слоты с TTL
func (c *Cache) Set(ctx context.Context, slots []string) error {
	raw, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("%w: Set - encode: %v", ErrCache, err)
	}
	if err := c.client.Set(ctx, SlotsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %v", ErrCache, err)
	}
	return nil
}

// Invalidate удаляет слоты из кэша
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, SlotsKey).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate: %v", ErrCache, err)
	}
	return nil
}

// Noop кэш-заглушка для работы без Redis: всегда промах
type Noop struct{}

func (Noop) Get(context.Context) ([]string, error) { return nil, ErrCacheMiss }
func (Noop) Set(context.Context, []string) error { return nil }
func (Noop) Invalidate(context.Context) error { return nil }

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "workshop-booking:"

// Cache JSON кэш поверх Redis. Нулевой или nil кэш всегда промахивается.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New создает кэш с временем жизни записей ttl
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) enabled() bool {
	return c != nil && c.rdb != nil && c.ttl > 0
}

// Get читает значение в out. false при промахе или любой ошибке Redis.
func (c *Cache) Get(ctx context.Context, key string, out any) bool {
	if !c.enabled() {
		return false
	}
	val, err := c.rdb.Get(ctx, FullKey(key)).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(val, out); err != nil {
		return false
	}
	return true
}

// Set записывает значение. Ошибки записи не мешают основному потоку.
func (c *Cache) Set(ctx context.Context, key string, val any) {
	if !c.enabled() {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, FullKey(key), data, c.ttl).Err()
}

// Delete удаляет ключи
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if !c.enabled() || len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, FullKey(k))
	}
	return c.rdb.Del(ctx, full...).Err()
}

// FullKey ключ в Redis с префиксом сервиса
func FullKey(key string) string {
	return keyPrefix + key
}

// DealershipConfigKey ключ конфигурации дилера
func DealershipConfigKey(dealershipID int64) string {
	return fmt.Sprintf("dealership:%d:config", dealershipID)
}

// ServiceKey ключ услуги дилера
func ServiceKey(dealershipID, serviceID int64) string {
	return fmt.Sprintf("dealership:%d:service:%d", dealershipID, serviceID)
}

package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"igcatalog/internal/model"
)

const (
	listCacheKey = "products:recent"
	listCacheTTL = 30 * time.Second
)

// Cache guarda a listagem de produtos em Redis por um TTL curto para não
// bater no Postgres a cada refresh da vitrine.
type Cache struct {
	Client *redis.Client
}

func (c *Cache) GetProducts(ctx context.Context) ([]model.Product, bool) {
	val, err := c.Client.Get(ctx, listCacheKey).Result()
	if err != nil {
		return nil, false
	}

	var products []model.Product
	if err := json.Unmarshal([]byte(val), &products); err != nil {
		return nil, false
	}

	return products, true
}

func (c *Cache) SetProducts(ctx context.Context, products []model.Product) {
	b, err := json.Marshal(products)
	if err != nil {
		return
	}
	c.Client.Set(ctx, listCacheKey, b, listCacheTTL)
}

// Invalidate derruba a listagem cacheada depois que um pipeline grava
// produtos novos.
func (c *Cache) Invalidate(ctx context.Context) {
	c.Client.Del(ctx, listCacheKey)
}

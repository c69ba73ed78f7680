// Package catalog is a redis read-through cache in front of the product and
// category stores. Redis being down or unconfigured never breaks reads; the
// cache falls through to the underlying store.
package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ronautumn/hhnyc-api/models"
	"github.com/ronautumn/hhnyc-api/store"
)

const (
	productsKey   = "catalog:products"
	categoriesKey = "catalog:categories"
)

type Cache struct {
	products   store.ProductStore
	categories store.CategoryStore
	rdb        *redis.Client
	ttl        time.Duration
	log        *zap.SugaredLogger
}

// New wraps the given stores. A nil redis client disables caching and every
// call passes straight through.
func New(products store.ProductStore, categories store.CategoryStore, rdb *redis.Client, ttl time.Duration, log *zap.SugaredLogger) *Cache {
	return &Cache{products: products, categories: categories, rdb: rdb, ttl: ttl, log: log}
}

func (c *Cache) getCached(ctx context.Context, key string, out any) bool {
	if c.rdb == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debugw("catalog cache read failed", "key", key, "error", err)
		}
		return false
	}
	return json.Unmarshal(data, out) == nil
}

func (c *Cache) setCached(ctx context.Context, key string, in any) {
	if c.rdb == nil {
		return
	}
	data, err := json.Marshal(in)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Debugw("catalog cache write failed", "key", key, "error", err)
	}
}

func (c *Cache) invalidate(ctx context.Context, keys ...string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Debugw("catalog cache invalidation failed", "keys", keys, "error", err)
	}
}

// -------- store.ProductStore --------

func (c *Cache) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if c.getCached(ctx, productsKey, &products) {
		return products, nil
	}
	products, err := c.products.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	c.setCached(ctx, productsKey, products)
	return products, nil
}

func (c *Cache) GetProduct(ctx context.Context, id string) (models.Product, error) {
	return c.products.GetProduct(ctx, id)
}

func (c *Cache) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	created, err := c.products.CreateProduct(ctx, p)
	if err == nil {
		c.invalidate(ctx, productsKey)
	}
	return created, err
}

func (c *Cache) UpdateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	updated, err := c.products.UpdateProduct(ctx, p)
	if err == nil {
		c.invalidate(ctx, productsKey)
	}
	return updated, err
}

func (c *Cache) DeleteProduct(ctx context.Context, id string) error {
	err := c.products.DeleteProduct(ctx, id)
	if err == nil {
		c.invalidate(ctx, productsKey)
	}
	return err
}

// -------- store.CategoryStore --------

func (c *Cache) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if c.getCached(ctx, categoriesKey, &categories) {
		return categories, nil
	}
	categories, err := c.categories.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	c.setCached(ctx, categoriesKey, categories)
	return categories, nil
}

func (c *Cache) CreateCategory(ctx context.Context, cat models.Category) (models.Category, error) {
	created, err := c.categories.CreateCategory(ctx, cat)
	if err == nil {
		c.invalidate(ctx, categoriesKey)
	}
	return created, err
}

func (c *Cache) UpdateCategory(ctx context.Context, cat models.Category) (models.Category, error) {
	updated, err := c.categories.UpdateCategory(ctx, cat)
	if err == nil {
		c.invalidate(ctx, categoriesKey)
	}
	return updated, err
}

func (c *Cache) DeleteCategory(ctx context.Context, id string) error {
	err := c.categories.DeleteCategory(ctx, id)
	if err == nil {
		c.invalidate(ctx, categoriesKey)
	}
	return err
}

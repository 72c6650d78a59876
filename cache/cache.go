package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/supakorn-kn/peponi-admin/metrics"
	"github.com/supakorn-kn/peponi-admin/models"
	"github.com/supakorn-kn/peponi-admin/objects"
)

// Model caches list pages of an underlying model for a short time.
// Every successful mutation through it drops all cached pages so the following fetch sees the change.
type Model[T objects.Record] struct {
	models.Model[T]

	entity  string
	pages   *expirable.LRU[string, models.PaginationData[T]]
	metrics *metrics.Metrics

	// generation counts invalidations. A search started before one must not refill the purged pages.
	mu         sync.Mutex
	generation uint64
}

func New[T objects.Record](entity string, source models.Model[T], size int, ttl time.Duration, m *metrics.Metrics) *Model[T] {

	return &Model[T]{
		Model:   source,
		entity:  entity,
		pages:   expirable.NewLRU[string, models.PaginationData[T]](size, nil, ttl),
		metrics: m,
	}
}

func (c *Model[T]) Capabilities() models.Capabilities {

	return models.CapabilitiesOf(c.Model)
}

func (c *Model[T]) Search(ctx context.Context, q models.ListQuery) (models.PaginationData[T], error) {

	key, err := queryKey(q)
	if err != nil {
		return c.Model.Search(ctx, q)
	}

	if cached, ok := c.pages.Get(key); ok {

		c.metrics.CacheLookup(c.entity, true)
		return cached, nil
	}

	c.metrics.CacheLookup(c.entity, false)

	c.mu.Lock()
	generation := c.generation
	c.mu.Unlock()

	result, err := c.Model.Search(ctx, q)
	if err != nil {
		return result, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		slog.Debug("list page outdated by a mutation is not cached", "entity", c.entity)
		return result, nil
	}

	c.pages.Add(key, result)
	return result, nil
}

func (c *Model[T]) Insert(ctx context.Context, item T) (T, error) {

	created, err := c.Model.Insert(ctx, item)
	if err == nil {
		c.Invalidate()
	}

	return created, err
}

func (c *Model[T]) Update(ctx context.Context, item T) error {

	err := c.Model.Update(ctx, item)
	if err == nil {
		c.Invalidate()
	}

	return err
}

func (c *Model[T]) Delete(ctx context.Context, itemID int64) error {

	err := c.Model.Delete(ctx, itemID)
	if err == nil {
		c.Invalidate()
	}

	return err
}

func (c *Model[T]) SetStatus(ctx context.Context, itemID int64, status int) error {

	err := c.Model.SetStatus(ctx, itemID, status)
	if err == nil {
		c.Invalidate()
	}

	return err
}

// Invalidate drops every cached page.
func (c *Model[T]) Invalidate() {

	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++

	slog.Debug("list cache invalidated", "entity", c.entity, "pages", c.pages.Len())
	c.pages.Purge()
}

// Len returns how many pages are cached.
func (c *Model[T]) Len() int {
	return c.pages.Len()
}

func queryKey(q models.ListQuery) (string, error) {

	q.Search = q.Term()

	raw, err := json.Marshal(q)
	if err != nil {
		return "", err
	}

	return string(raw), nil
}

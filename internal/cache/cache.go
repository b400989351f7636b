// Package cache keeps single articles in Redis so repeated GET /articles/:id
// requests skip the database.
//
// Articles are never updated after creation, so entries only expire by TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/deppfellow/articles-api/internal/model"
	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the article is not cached.
var ErrMiss = errors.New("cache miss")

const keyPrefix = "articles:"

// ArticleCache stores articles by id.
type ArticleCache interface {
	Get(ctx context.Context, id int64) (*model.Article, error)
	Set(ctx context.Context, article *model.Article) error
}

// Key is the redis key for an article id.
func Key(id int64) string {
	return keyPrefix + strconv.FormatInt(id, 10)
}

// RedisArticleCache is an ArticleCache backed by go-redis.
type RedisArticleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisArticleCache(client *redis.Client, ttl time.Duration) *RedisArticleCache {
	return &RedisArticleCache{client: client, ttl: ttl}
}

func (c *RedisArticleCache) Get(ctx context.Context, id int64) (*model.Article, error) {
	raw, err := c.client.Get(ctx, Key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("get cached article %d: %w", id, err)
	}

	var article model.Article
	if err := json.Unmarshal(raw, &article); err != nil {
		return nil, fmt.Errorf("decode cached article %d: %w", id, err)
	}
	return &article, nil
}

func (c *RedisArticleCache) Set(ctx context.Context, article *model.Article) error {
	raw, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("encode article %d: %w", article.ID, err)
	}

	if err := c.client.Set(ctx, Key(article.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache article %d: %w", article.ID, err)
	}
	return nil
}

// Noop never stores anything. It stands in when redis is not configured.
type Noop struct{}

func (Noop) Get(context.Context, int64) (*model.Article, error) { return nil, ErrMiss }

func (Noop) Set(context.Context, *model.Article) error { return nil }

// New returns a redis cache, or Noop when client is nil.
func New(client *redis.Client, ttl time.Duration) ArticleCache {
	if client == nil {
		return Noop{}
	}
	return NewRedisArticleCache(client, ttl)
}

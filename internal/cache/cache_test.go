package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/deppfellow/articles-api/internal/cache"
	"github.com/deppfellow/articles-api/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	require.Equal(t, "articles:42", cache.Key(42))
}

func TestNew_NilClientIsNoop(t *testing.T) {
	c := cache.New(nil, time.Minute)
	require.IsType(t, cache.Noop{}, c)

	require.NoError(t, c.Set(context.Background(), &model.Article{ID: 1}))

	_, err := c.Get(context.Background(), 1)
	require.ErrorIs(t, err, cache.ErrMiss)
}

func TestRedisArticleCache_RoundTrip(t *testing.T) {
	addr := os.Getenv("ARTICLES_TEST_REDIS_ADDRESS")
	if addr == "" {
		t.Skip("ARTICLES_TEST_REDIS_ADDRESS not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	c := cache.New(client, time.Minute)

	id := time.Now().UnixNano()
	t.Cleanup(func() { client.Del(ctx, cache.Key(id)) })

	_, err := c.Get(ctx, id)
	require.ErrorIs(t, err, cache.ErrMiss)

	desc := "cached"
	in := &model.Article{ID: id, Title: "t", Description: &desc, Published: true, CreatedAt: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, c.Set(ctx, in))

	out, err := c.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, in.Title, out.Title)
	require.Equal(t, *in.Description, *out.Description)
	require.True(t, in.CreatedAt.Equal(out.CreatedAt))
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/articles-api/internal/cache"
	"github.com/deppfellow/articles-api/internal/errs"
	"github.com/deppfellow/articles-api/internal/lib/metrics"
	"github.com/deppfellow/articles-api/internal/model"
	"github.com/deppfellow/articles-api/internal/repository"
	"github.com/rs/zerolog"
)

// ArticleService exposes the article operations the HTTP layer needs.
//
// Store errors other than not-found are returned unchanged so the global
// error handler can classify the driver error.
type ArticleService struct {
	store  repository.ArticleStore
	cache  cache.ArticleCache
	logger *zerolog.Logger
}

func NewArticleService(store repository.ArticleStore, articleCache cache.ArticleCache, logger *zerolog.Logger) *ArticleService {
	if articleCache == nil {
		articleCache = cache.Noop{}
	}
	return &ArticleService{
		store:  store,
		cache:  articleCache,
		logger: logger,
	}
}

func (s *ArticleService) Create(ctx context.Context, in model.CreateArticleInput) (*model.Article, error) {
	article, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.log(ctx).Info().
		Int64("article_id", article.ID).
		Bool("published", article.Published).
		Msg("article created")

	return article, nil
}

// log prefers the request-scoped logger carried by ctx.
func (s *ArticleService) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return s.logger
}

func (s *ArticleService) ListPublished(ctx context.Context) ([]model.Article, error) {
	return s.store.FindMany(ctx, model.PublishedOnly())
}

func (s *ArticleService) ListDrafts(ctx context.Context) ([]model.Article, error) {
	return s.store.FindMany(ctx, model.DraftsOnly())
}

// Get returns one article by id, consulting the cache first.
// A missing article is a 404 *errs.HTTPError.
func (s *ArticleService) Get(ctx context.Context, id int64) (*model.Article, error) {
	cached, err := s.cache.Get(ctx, id)
	switch {
	case err == nil:
		metrics.RecordCacheLookup("hit")
		return cached, nil
	case errors.Is(err, cache.ErrMiss):
		metrics.RecordCacheLookup("miss")
	default:
		metrics.RecordCacheLookup("error")
		s.log(ctx).Warn().Err(err).Int64("article_id", id).Msg("article cache read failed")
	}

	article, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return nil, errs.NewNotFoundError(fmt.Sprintf("Article with id %d does not exist", id), false, nil)
		}
		return nil, err
	}

	if err := s.cache.Set(ctx, article); err != nil {
		s.log(ctx).Warn().Err(err).Int64("article_id", id).Msg("article cache write failed")
	}

	return article, nil
}

func (s *ArticleService) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}

// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"time"

	"github.com/deppfellow/articles-api/internal/cache"
	"github.com/deppfellow/articles-api/internal/repository"
	"github.com/deppfellow/articles-api/internal/server"
)

type Services struct {
	Articles *ArticleService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	articleCache := cache.New(s.Redis, time.Duration(s.Config.Redis.CacheTTL)*time.Second)

	return &Services{
		Articles: NewArticleService(repos.Articles, articleCache, s.Logger),
	}
}

// Package repository handles all interactions with the database.
//
// It contains the raw SQL for the article table and exposes it through the
// ArticleStore interface, one implementation per supported driver. Driver
// errors are returned unchanged; translating them is the HTTP layer's job.
package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/articles-api/internal/model"
	"github.com/deppfellow/articles-api/internal/server"
)

// ErrArticleNotFound is returned by FindByID when no row matches.
// It wraps the driver's own no-rows error.
var ErrArticleNotFound = errors.New("article not found")

// ArticleStore is the Persistence Gateway's CRUD surface for articles.
type ArticleStore interface {
	Create(ctx context.Context, in model.CreateArticleInput) (*model.Article, error)
	FindMany(ctx context.Context, filter model.ArticleFilter) ([]model.Article, error)
	FindByID(ctx context.Context, id int64) (*model.Article, error)
	Count(ctx context.Context) (int64, error)
}

// Repositories is a container for all repository instances.
type Repositories struct {
	Articles ArticleStore
}

// NewRepositories picks the article store matching the database driver the server opened.
func NewRepositories(s *server.Server) *Repositories {
	var articles ArticleStore
	if s.DB.Pool != nil {
		articles = NewPostgresArticleStore(s.DB.Pool)
	} else {
		articles = NewSQLiteArticleStore(s.DB.SQL)
	}

	return &Repositories{
		Articles: articles,
	}
}

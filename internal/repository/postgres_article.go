package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/articles-api/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the slice of the pgx API the postgres store needs.
// *pgxpool.Pool, *pgx.Conn and pgx.Tx all satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const articleColumns = `id, title, description, body, published, created_at, updated_at`

// PostgresArticleStore implements ArticleStore on top of a pgx pool.
type PostgresArticleStore struct {
	db DBTX
}

func NewPostgresArticleStore(db DBTX) *PostgresArticleStore {
	return &PostgresArticleStore{db: db}
}

func (s *PostgresArticleStore) Create(ctx context.Context, in model.CreateArticleInput) (*model.Article, error) {
	args := pgx.NamedArgs{
		"title":       in.Title,
		"description": in.Description,
		"body":        in.Body,
		"published":   in.Published,
	}

	query := `
INSERT INTO articles (title, description, body, published)
VALUES (@title, @description, @body, @published)
RETURNING ` + articleColumns

	if in.ID > 0 {
		args["id"] = in.ID
		query = `
INSERT INTO articles (id, title, description, body, published)
VALUES (@id, @title, @description, @body, @published)
RETURNING ` + articleColumns
	}

	rows, err := s.db.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	article, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Article])
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	return article, nil
}

func (s *PostgresArticleStore) FindMany(ctx context.Context, filter model.ArticleFilter) ([]model.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles`
	args := pgx.NamedArgs{}

	if filter.Published != nil {
		query += ` WHERE published = @published`
		args["published"] = *filter.Published
	}
	query += ` ORDER BY id`

	rows, err := s.db.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}

	articles, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Article])
	if err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}

	if articles == nil {
		articles = []model.Article{}
	}
	return articles, nil
}

func (s *PostgresArticleStore) FindByID(ctx context.Context, id int64) (*model.Article, error) {
	rows, err := s.db.Query(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("find article %d: %w", id, err)
	}

	article, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Article])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %w", ErrArticleNotFound, err)
		}
		return nil, fmt.Errorf("find article %d: %w", id, err)
	}

	return article, nil
}

func (s *PostgresArticleStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

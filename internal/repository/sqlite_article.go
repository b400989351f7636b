package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/deppfellow/articles-api/internal/model"
)

// SQLiteArticleStore implements ArticleStore over database/sql.
//
// SQLite cannot report declared column types for RETURNING rows, so Create
// inserts first and reads the row back through FindByID.
type SQLiteArticleStore struct {
	db *sql.DB
}

func NewSQLiteArticleStore(db *sql.DB) *SQLiteArticleStore {
	return &SQLiteArticleStore{db: db}
}

func (s *SQLiteArticleStore) Create(ctx context.Context, in model.CreateArticleInput) (*model.Article, error) {
	var (
		res sql.Result
		err error
	)

	if in.ID > 0 {
		res, err = s.db.ExecContext(ctx,
			`INSERT INTO articles (id, title, description, body, published) VALUES (?, ?, ?, ?, ?)`,
			in.ID, in.Title, in.Description, in.Body, in.Published)
	} else {
		res, err = s.db.ExecContext(ctx,
			`INSERT INTO articles (title, description, body, published) VALUES (?, ?, ?, ?)`,
			in.Title, in.Description, in.Body, in.Published)
	}
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create article: last insert id: %w", err)
	}

	return s.FindByID(ctx, id)
}

func (s *SQLiteArticleStore) FindMany(ctx context.Context, filter model.ArticleFilter) ([]model.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles`
	var args []any

	if filter.Published != nil {
		query += ` WHERE published = ?`
		args = append(args, *filter.Published)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]model.Article, 0)
	for rows.Next() {
		var a model.Article
		if err := scanArticle(rows, &a); err != nil {
			return nil, fmt.Errorf("find articles: scan: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}

	return articles, nil
}

func (s *SQLiteArticleStore) FindByID(ctx context.Context, id int64) (*model.Article, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)

	var a model.Article
	if err := scanArticle(row, &a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %w", ErrArticleNotFound, err)
		}
		return nil, fmt.Errorf("find article %d: %w", id, err)
	}

	return &a, nil
}

func (s *SQLiteArticleStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner, a *model.Article) error {
	return row.Scan(&a.ID, &a.Title, &a.Description, &a.Body, &a.Published, &a.CreatedAt, &a.UpdatedAt)
}

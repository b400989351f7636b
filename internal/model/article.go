// Package model holds the article entity and the request payloads that create or query it.
package model

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Article is the sole persisted entity: a titled piece of content that is
// either published or a draft. Title is unique across all articles.
type Article struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	Body        string    `json:"body" db:"body"`
	Published   bool      `json:"published" db:"published"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// ArticleFilter narrows FindMany. A nil Published matches every article.
type ArticleFilter struct {
	Published *bool
}

// PublishedOnly and DraftsOnly are the two filters the HTTP surface uses.
func PublishedOnly() ArticleFilter {
	published := true
	return ArticleFilter{Published: &published}
}

func DraftsOnly() ArticleFilter {
	published := false
	return ArticleFilter{Published: &published}
}

// CreateArticleInput is what the store needs to insert a row.
// A positive ID is written as-is; zero lets the database assign one.
type CreateArticleInput struct {
	ID          int64
	Title       string
	Description *string
	Body        string
	Published   bool
}

var validate = validator.New()

// CreateArticleRequest is the POST /articles payload.
// Unknown fields, including id, are dropped by the binder.
type CreateArticleRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=300"`
	Body        string  `json:"body"`
	Published   bool    `json:"published"`
}

func (r *CreateArticleRequest) Validate() error {
	return validate.Struct(r)
}

// Input converts the request into a store insert.
func (r *CreateArticleRequest) Input() CreateArticleInput {
	return CreateArticleInput{
		Title:       r.Title,
		Description: r.Description,
		Body:        r.Body,
		Published:   r.Published,
	}
}

// GetArticleRequest binds the :id path parameter.
type GetArticleRequest struct {
	ID int64 `param:"id" validate:"required,gt=0"`
}

func (r *GetArticleRequest) Validate() error {
	return validate.Struct(r)
}

// ListArticlesRequest carries nothing; it exists so list routes share the typed pipeline.
type ListArticlesRequest struct{}

func (r *ListArticlesRequest) Validate() error {
	return nil
}

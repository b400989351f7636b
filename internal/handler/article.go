package handler

import (
	"net/http"

	"github.com/deppfellow/articles-api/internal/model"
	"github.com/deppfellow/articles-api/internal/server"
	"github.com/deppfellow/articles-api/internal/service"
	"github.com/labstack/echo/v4"
)

// ArticleHandler serves the /articles routes.
type ArticleHandler struct {
	Handler
	articles *service.ArticleService
}

func NewArticleHandler(s *server.Server, articles *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{
		Handler:  NewHandler(s),
		articles: articles,
	}
}

// ListPublished handles GET /articles.
func (h *ArticleHandler) ListPublished() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *model.ListArticlesRequest) ([]model.Article, error) {
		return h.articles.ListPublished(c.Request().Context())
	}, http.StatusOK)
}

// ListDrafts handles GET /articles/drafts.
func (h *ArticleHandler) ListDrafts() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *model.ListArticlesRequest) ([]model.Article, error) {
		return h.articles.ListDrafts(c.Request().Context())
	}, http.StatusOK)
}

// Get handles GET /articles/:id.
func (h *ArticleHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.GetArticleRequest) (*model.Article, error) {
		return h.articles.Get(c.Request().Context(), req.ID)
	}, http.StatusOK)
}

// Create handles POST /articles.
func (h *ArticleHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.CreateArticleRequest) (*model.Article, error) {
		return h.articles.Create(c.Request().Context(), req.Input())
	}, http.StatusCreated)
}

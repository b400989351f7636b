package router

import (
	"github.com/deppfellow/articles-api/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerArticleRoutes(r *echo.Echo, h *handler.Handlers) {
	articles := r.Group("/articles")

	articles.GET("", h.Articles.ListPublished())
	articles.POST("", h.Articles.Create())
	articles.GET("/drafts", h.Articles.ListDrafts())
	articles.GET("/:id", h.Articles.Get())
}

package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/LegalLens/internal/application/statute_search"
)

// SearchHandler exposes statute and precedent ranking.
type SearchHandler struct {
	svc          statute_search.Service
	defaultLimit int
}

func NewSearchHandler(svc statute_search.Service, defaultLimit int) *SearchHandler {
	if defaultLimit < 1 {
		defaultLimit = 15
	}
	return &SearchHandler{svc: svc, defaultLimit: defaultLimit}
}

type searchFunc func(ctx context.Context, query string, limit int) (*statute_search.SearchResult, error)

// Statutes handles GET /api/v1/statutes/search?q=&limit=&format=.
func (h *SearchHandler) Statutes(c *gin.Context) {
	h.search(c, h.svc.SearchStatutes)
}

// Precedents handles GET /api/v1/precedents/search?q=&limit=&format=.
func (h *SearchHandler) Precedents(c *gin.Context) {
	h.search(c, h.svc.SearchPrecedents)
}

// search answers with JSON, or with the rendered text when format=text.
func (h *SearchHandler) search(c *gin.Context, fn searchFunc) {
	limit, err := queryLimit(c, h.defaultLimit)
	if err != nil {
		respondError(c, err)
		return
	}
	res, err := fn(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if c.Query("format") == "text" {
		c.String(http.StatusOK, res.Text)
		return
	}
	c.JSON(http.StatusOK, res)
}

package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/turtacn/LegalLens/pkg/types/legal"
)

// SearchResult is a ranked answer from the statute or precedent endpoint.
type SearchResult struct {
	Corpus        string              `json:"corpus"`
	Query         string              `json:"query"`
	Limit         int                 `json:"limit"`
	CorpusVersion string              `json:"corpus_version"`
	Matches       []legal.RankedMatch `json:"matches"`
	Cases         []legal.CaseRecord  `json:"cases,omitempty"`
	Text          string              `json:"text"`
	Cached        bool                `json:"cached"`
}

// HealthStatus is the liveness payload.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// SearchStatutes ranks statute sections against query. A limit of 0 uses the
// server default.
func (c *Client) SearchStatutes(ctx context.Context, query string, limit int) (*SearchResult, error) {
	return c.search(ctx, "/api/v1/statutes/search", query, limit)
}

// SearchPrecedents ranks historical cases against query.
func (c *Client) SearchPrecedents(ctx context.Context, query string, limit int) (*SearchResult, error) {
	return c.search(ctx, "/api/v1/precedents/search", query, limit)
}

func (c *Client) search(ctx context.Context, path, query string, limit int) (*SearchResult, error) {
	var out SearchResult
	if err := c.get(ctx, path+"?"+searchParams(query, limit).Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func searchParams(query string, limit int) url.Values {
	params := url.Values{}
	params.Set("q", query)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	return params
}

func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.get(ctx, "/healthz", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

package client

import (
	"context"

	"github.com/turtacn/LegalLens/pkg/types/legal"
)

// ExtractResult is one extracted case record and the dataset buckets it falls into.
type ExtractResult struct {
	Record     legal.CaseRecord `json:"record"`
	Categories []legal.Category `json:"categories"`
}

// BatchItem is the per-judgment outcome of ExtractBatch. Error holds the
// error code of a rejected judgment.
type BatchItem struct {
	Index      int               `json:"index"`
	Record     *legal.CaseRecord `json:"record,omitempty"`
	Categories []legal.Category  `json:"categories,omitempty"`
	Error      string            `json:"error,omitempty"`
}

type BatchResult struct {
	Items     []BatchItem `json:"items"`
	Succeeded int         `json:"succeeded"`
	Rejected  int         `json:"rejected"`
}

// ExtractCase turns one judgment into a case record.
func (c *Client) ExtractCase(ctx context.Context, in legal.JudgmentInput) (*ExtractResult, error) {
	var out ExtractResult
	if err := c.post(ctx, "/api/v1/cases/extract", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExtractBatch extracts many judgments in one call. Items come back in input order.
func (c *Client) ExtractBatch(ctx context.Context, in []legal.JudgmentInput) (*BatchResult, error) {
	body := struct {
		Judgments []legal.JudgmentInput `json:"judgments"`
	}{Judgments: in}
	var out BatchResult
	if err := c.post(ctx, "/api/v1/cases/extract/batch", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/LegalLens/internal/application/casebuild"
	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalLens/pkg/errors"
	"github.com/turtacn/LegalLens/pkg/types/legal"
)

// DefaultMaxBatch bounds the judgments accepted by one batch request.
const DefaultMaxBatch = 500

// CaseHandler exposes case record extraction.
type CaseHandler struct {
	svc      casebuild.Service
	maxBatch int
	logger   logging.Logger
}

func NewCaseHandler(svc casebuild.Service, maxBatch int, logger logging.Logger) *CaseHandler {
	if maxBatch < 1 {
		maxBatch = DefaultMaxBatch
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &CaseHandler{svc: svc, maxBatch: maxBatch, logger: logger}
}

// ExtractResponse is one built record.
type ExtractResponse struct {
	Record     legal.CaseRecord `json:"record"`
	Categories []legal.Category `json:"categories"`
}

// BatchRequest is the body of POST /cases/extract/batch.
type BatchRequest struct {
	Judgments []legal.JudgmentInput `json:"judgments"`
}

// BatchItem is one slot of a batch response. A rejected judgment carries
// its error code instead of a record.
type BatchItem struct {
	Index      int               `json:"index"`
	Record     *legal.CaseRecord `json:"record,omitempty"`
	Categories []legal.Category  `json:"categories,omitempty"`
	Error      string            `json:"error,omitempty"`
}

type BatchResponse struct {
	Items     []BatchItem `json:"items"`
	Succeeded int         `json:"succeeded"`
	Rejected  int         `json:"rejected"`
}

// Extract handles POST /api/v1/cases/extract.
func (h *CaseHandler) Extract(c *gin.Context) {
	var in legal.JudgmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "invalid judgment body"))
		return
	}
	res, err := h.svc.Build(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ExtractResponse{Record: res.Record, Categories: res.Categories()})
}

// ExtractBatch handles POST /api/v1/cases/extract/batch.
func (h *CaseHandler) ExtractBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "invalid batch body"))
		return
	}
	if len(req.Judgments) == 0 {
		respondError(c, errors.New(errors.ErrCodeExtractEmptyInput, "batch has no judgments"))
		return
	}
	if len(req.Judgments) > h.maxBatch {
		respondError(c, errors.Newf(errors.ErrCodeBadRequest, "batch holds %d judgments, maximum is %d", len(req.Judgments), h.maxBatch))
		return
	}

	results, err := h.svc.BuildBatch(c.Request.Context(), req.Judgments)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := BatchResponse{Items: make([]BatchItem, len(results))}
	for i, r := range results {
		item := BatchItem{Index: i}
		if r.Err != nil {
			item.Error = string(errors.GetCode(r.Err))
			resp.Rejected++
		} else {
			rec := r.Result.Record
			item.Record = &rec
			item.Categories = r.Result.Categories()
			resp.Succeeded++
		}
		resp.Items[i] = item
	}
	c.JSON(http.StatusOK, resp)
}

package errors

import (
	"net/http"
	"strings"
)

// ErrorCode identifies a failure category. Codes are "<MODULE>_<NNN>".
type ErrorCode string

func (c ErrorCode) String() string { return string(c) }

// Common codes.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeMessageQueue       ErrorCode = "COMMON_014"
	ErrCodeStorage            ErrorCode = "COMMON_015"
	ErrCodeNotImplemented     ErrorCode = "COMMON_016"
)

// Corpus module codes.
const (
	ErrCodeCorpusNotLoaded    ErrorCode = "CORPUS_001"
	ErrCodeCorpusLoadFailed   ErrorCode = "CORPUS_002"
	ErrCodeCorpusInvalidEntry ErrorCode = "CORPUS_003"
)

// Extraction module codes.
const (
	ErrCodeExtractEmptyInput  ErrorCode = "EXTRACT_001"
	ErrCodeExtractBatchFailed ErrorCode = "EXTRACT_002"
	ErrCodeExtractBadPayload  ErrorCode = "EXTRACT_003"
)

// Ranking module codes.
const (
	ErrCodeRankInvalidLimit      ErrorCode = "RANK_001"
	ErrCodeRankCorpusUnavailable ErrorCode = "RANK_002"
)

// Dataset module codes.
const (
	ErrCodeDatasetWriteFailed ErrorCode = "DATASET_001"
	ErrCodeDatasetReadFailed  ErrorCode = "DATASET_002"
)

// Short aliases used by factory helpers.
const (
	CodeOK           = ErrorCode("OK")
	CodeUnknown      = ErrorCode("UNKNOWN")
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
)

var codeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeMessageQueue:       http.StatusInternalServerError,
	ErrCodeStorage:            http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeCorpusNotLoaded:    http.StatusServiceUnavailable,
	ErrCodeCorpusLoadFailed:   http.StatusInternalServerError,
	ErrCodeCorpusInvalidEntry: http.StatusUnprocessableEntity,

	ErrCodeExtractEmptyInput:  http.StatusBadRequest,
	ErrCodeExtractBatchFailed: http.StatusInternalServerError,
	ErrCodeExtractBadPayload:  http.StatusBadRequest,

	ErrCodeRankInvalidLimit:      http.StatusBadRequest,
	ErrCodeRankCorpusUnavailable: http.StatusServiceUnavailable,

	ErrCodeDatasetWriteFailed: http.StatusInternalServerError,
	ErrCodeDatasetReadFailed:  http.StatusInternalServerError,
}

var codeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeCacheError:         "cache error",
	ErrCodeMessageQueue:       "message queue error",
	ErrCodeStorage:            "object storage error",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeCorpusNotLoaded:    "statute corpus not loaded",
	ErrCodeCorpusLoadFailed:   "failed to load statute corpus",
	ErrCodeCorpusInvalidEntry: "invalid corpus entry",

	ErrCodeExtractEmptyInput:  "no judgments supplied",
	ErrCodeExtractBatchFailed: "batch extraction failed",
	ErrCodeExtractBadPayload:  "malformed judgment payload",

	ErrCodeRankInvalidLimit:      "limit must be positive and within the configured maximum",
	ErrCodeRankCorpusUnavailable: "ranker corpus unavailable",

	ErrCodeDatasetWriteFailed: "failed to write dataset",
	ErrCodeDatasetReadFailed:  "failed to read dataset",
}

// HTTPStatusForCode returns the HTTP status for code, 500 when unmapped.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := codeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the stock message for code.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := codeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

func IsClientError(code ErrorCode) bool {
	s := HTTPStatusForCode(code)
	return s >= 400 && s < 500
}

func IsServerError(code ErrorCode) bool {
	s := HTTPStatusForCode(code)
	return s >= 500 && s < 600
}

// ModuleForCode returns the prefix before the underscore, e.g. "RANK".
func ModuleForCode(code ErrorCode) string {
	prefix, _, found := strings.Cut(string(code), "_")
	if !found || prefix == "" {
		return "UNKNOWN"
	}
	return prefix
}

package chi

import "github.com/huntly/leadsearch/internal/domain"

// errorCode identifies an API error class for clients.
type errorCode string

const (
	codeBadRequest        errorCode = "bad_request"
	codeInvalidQuery      errorCode = "invalid_query"
	codeLeadNotFound      errorCode = "lead_not_found"
	codeJobNotFound       errorCode = "job_not_found"
	codeCorpusUnavailable errorCode = "corpus_unavailable"
	codeUnauthorized      errorCode = "unauthorized"
	codeInternalError     errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type searchRequest struct {
	Query   string         `json:"query"`
	Filters domain.Filters `json:"filters"`
	SortBy  string         `json:"sort_by"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
	UserID  int64          `json:"user_id"`
}

type searchResponse struct {
	Results []domain.SearchResult `json:"results"`
	Count   int                   `json:"count"`
	Query   string                `json:"query"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
}

type suggestionsResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

type invalidateResponse struct {
	Invalidated int `json:"invalidated"`
}

type indexLeadResponse struct {
	LeadID  int64 `json:"lead_id"`
	Indexed bool  `json:"indexed"`
}

type removeLeadResponse struct {
	LeadID  int64 `json:"lead_id"`
	Removed bool  `json:"removed"`
}

type bulkIndexRequest struct {
	LeadIDs []int64 `json:"lead_ids"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

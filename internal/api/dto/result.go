package dto

import (
	"encoding/json"
	"encoding/xml"

	"github.com/martijn/resultsapi/internal/core/domain"
)

// CreateResultRequest is the body of POST /api/v1/results.
// Fields are raw so missing, null and mistyped values can be told apart.
type CreateResultRequest struct {
	Result *json.RawMessage `json:"result"`
	Time   *string          `json:"time"`
	User   *string          `json:"user"` // owner email
}

// UpdateResultRequest is the body of PUT /api/v1/results/{id}; absent fields are kept.
type UpdateResultRequest struct {
	Result *json.RawMessage `json:"result"`
	Time   *string          `json:"time"`
}

type ResultOwner struct {
	ID    int64  `json:"id" xml:"id"`
	Email string `json:"email" xml:"email"`
}

type ResultResponse struct {
	ID     int64       `json:"id" xml:"id"`
	Result int64       `json:"result" xml:"result"`
	User   ResultOwner `json:"user" xml:"user"`
	Time   string      `json:"time" xml:"time"`
}

// ResultEnvelope wraps a single result: {"result": {...}}.
type ResultEnvelope struct {
	XMLName xml.Name       `json:"-" xml:"response"`
	Result  ResultResponse `json:"result" xml:"result"`
}

type ResultItem struct {
	Result ResultResponse `json:"result" xml:"result"`
}

// ResultListResponse is the collection body: {"results": [{"result": {...}}, ...]}.
type ResultListResponse struct {
	XMLName xml.Name     `json:"-" xml:"results"`
	Results []ResultItem `json:"results" xml:"item"`
}

func ToResultResponse(r *domain.Result) ResultResponse {
	return ResultResponse{
		ID:     r.ID,
		Result: r.Value,
		User: ResultOwner{
			ID:    r.UserID,
			Email: r.Owner,
		},
		Time: r.FormattedTime(),
	}
}

func NewResultEnvelope(r *domain.Result) ResultEnvelope {
	return ResultEnvelope{Result: ToResultResponse(r)}
}

func NewResultListResponse(results []*domain.Result) ResultListResponse {
	items := make([]ResultItem, len(results))
	for i, r := range results {
		items[i] = ResultItem{Result: ToResultResponse(r)}
	}
	return ResultListResponse{Results: items}
}

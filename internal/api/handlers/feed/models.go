package feed

import (
	"github.com/m04kA/SMC-FieldService/internal/domain"
	feedUC "github.com/m04kA/SMC-FieldService/internal/usecase/feed"
)

// FeedRequest HTTP request model
type FeedRequest struct {
	Filters []feedUC.FilterSpec `json:"filters"`
	Search  string              `json:"search"`
}

// FeedResponse HTTP response model
type FeedResponse struct {
	Tasks []domain.Task `json:"tasks"`
	Total int           `json:"total"`
	Found int           `json:"found"`
}

func (r *FeedRequest) ToUseCaseRequest() feedUC.Request {
	return feedUC.Request{Filters: r.Filters, Search: r.Search}
}

func FromUseCaseResponse(resp *feedUC.Response) *FeedResponse {
	tasks := resp.Tasks
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return &FeedResponse{Tasks: tasks, Total: resp.Total, Found: len(tasks)}
}

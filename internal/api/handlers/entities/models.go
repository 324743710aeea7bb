package entities

import "github.com/m04kA/SMC-FieldService/internal/service/entitylist"

// PageResponse HTTP response model
type PageResponse[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

func FromPage[T any](p *entitylist.Page[T]) *PageResponse[T] {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	return &PageResponse[T]{
		Items: items,
		Page:  p.Page,
		Size:  p.Size,
		Total: p.Total,
		Pages: p.Pages,
	}
}

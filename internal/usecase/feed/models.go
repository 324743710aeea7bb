package feed

import "github.com/m04kA/SMC-FieldService/internal/domain"

// Request запрос ленты
type Request struct {
	Filters []FilterSpec
	Search  string
}

// Response отфильтрованная лента
type Response struct {
	Tasks []domain.Task
	Total int // задач до фильтрации
}

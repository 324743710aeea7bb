package entitylist

// Schema описание сущности списка
type Schema[T any] struct {
	Name       string         // имя для логов
	Key        func(T) int64  // ID сущности
	SearchText func(T) string // текст, по которому идет поиск
}

// Page страница списка
type Page[T any] struct {
	Items []T
	Page  int // номер страницы, с 1
	Size  int
	Total int // элементов после поиска
	Pages int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

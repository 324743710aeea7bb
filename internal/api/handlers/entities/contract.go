package entities

import (
	"context"

	"github.com/m04kA/SMC-FieldService/internal/service/entitylist"
)

// EntityList список сущностей справочника с пагинацией и оптимистичной правкой
type EntityList[T any] interface {
	Page(ctx context.Context, page, size int, search string) (*entitylist.Page[T], error)
	Get(id int64) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Edit(ctx context.Context, item T) (T, error)
	Delete(ctx context.Context, id int64) error
	Refresh(ctx context.Context) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

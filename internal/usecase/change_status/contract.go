package change_status

import (
	"context"
	"io"

	"github.com/m04kA/SMC-FieldService/internal/domain"
)

// TaskClient интерфейс клиента API для задач
type TaskClient interface {
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	UpdateTask(ctx context.Context, task domain.Task) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	CompleteTask(ctx context.Context, id int64) error
	ConsumeInventory(ctx context.Context, id int64, usage []domain.InventoryUsage) error
	ListTaskPhotos(ctx context.Context, id int64) ([]domain.Photo, error)
	UploadTaskPhoto(ctx context.Context, id int64, filename string, content io.Reader) (*domain.Photo, error)
}

// InventoryClient интерфейс клиента API для остатков склада
type InventoryClient interface {
	ListInventory(ctx context.Context) ([]domain.InventoryItem, error)
}

// OpenDrafts форма и локальный черновик, которые надо сбросить вместе с задачей
type OpenDrafts interface {
	Forget(ctx context.Context, taskID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

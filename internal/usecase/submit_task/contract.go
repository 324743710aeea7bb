package submit_task

import (
	"context"

	"github.com/m04kA/SMC-FieldService/internal/domain"
	"github.com/m04kA/SMC-FieldService/internal/usecase/taskform"
)

// FormStore хранилище редактируемой формы
type FormStore interface {
	State() taskform.State
	Dispatch(action taskform.Action) taskform.State
}

// TaskClient интерфейс клиента API для задач
type TaskClient interface {
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	CreateTask(ctx context.Context, task domain.Task) (*domain.Task, error)
	UpdateTask(ctx context.Context, task domain.Task) (*domain.Task, error)
}

// InventoryClient интерфейс клиента API для остатков склада
type InventoryClient interface {
	ListInventory(ctx context.Context) ([]domain.InventoryItem, error)
}

// DraftCache локальный кеш черновика, очищается после отправки
type DraftCache interface {
	ClearCache(ctx context.Context) error
}

// Metrics интерфейс для метрик отправки формы
type Metrics interface {
	ObserveSubmission(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package drafts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldService/internal/domain"
	"github.com/m04kA/SMC-FieldService/internal/usecase/taskform"
)

// KVStore локальное key-value хранилище
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// TaskClient интерфейс клиента API для серверных черновиков
type TaskClient interface {
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	CreateTask(ctx context.Context, task domain.Task) (*domain.Task, error)
	UpdateTask(ctx context.Context, task domain.Task) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// FormStore хранилище редактируемой формы
type FormStore interface {
	State() taskform.State
	Dispatch(action taskform.Action) taskform.State
	Load(state taskform.State) taskform.State
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

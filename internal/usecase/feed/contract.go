package feed

import (
	"context"

	"github.com/m04kA/SMC-FieldService/internal/domain"
)

// ParticipantSource источник задач участника (GET /task-participants/{id})
type ParticipantSource interface {
	TaskParticipants(ctx context.Context, employeeID int64) ([]int64, error)
}

// TaskSource источник ленты задач
type TaskSource interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package calendar

import (
	"context"

	"github.com/m04kA/SMC-FieldService/internal/domain"
)

// FieldAPIClient интерфейс клиента API для календаря
type FieldAPIClient interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	UserTasks(ctx context.Context) ([]domain.Task, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
	TaskDatesWithGracefulDegradation(ctx context.Context) ([]domain.DayStatus, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

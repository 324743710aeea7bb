package calendar

import (
	"context"

	calendarUC "github.com/m04kA/SMC-FieldService/internal/usecase/calendar"
)

type CalendarUseCase interface {
	Execute(ctx context.Context, req calendarUC.Request) (*calendarUC.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

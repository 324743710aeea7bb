package form

import (
	"context"

	"github.com/m04kA/SMC-FieldService/internal/usecase/selection"
	submitTask "github.com/m04kA/SMC-FieldService/internal/usecase/submit_task"
	"github.com/m04kA/SMC-FieldService/internal/usecase/taskform"
)

type FormStore interface {
	State() taskform.State
	Dispatch(action taskform.Action) taskform.State
}

type SelectionUseCase interface {
	Execute(ctx context.Context, req selection.Request) (taskform.State, error)
}

type SubmitUseCase interface {
	Execute(ctx context.Context) (*submitTask.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

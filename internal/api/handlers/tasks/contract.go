package tasks

import (
	"context"

	"github.com/m04kA/SMC-FieldService/internal/domain"
	changeStatus "github.com/m04kA/SMC-FieldService/internal/usecase/change_status"
)

type ChangeStatusUseCase interface {
	StartWork(ctx context.Context, taskID int64) (*domain.Task, error)
	Complete(ctx context.Context, req changeStatus.CompleteRequest) (*domain.Task, error)
	Cancel(ctx context.Context, taskID int64) (*domain.Task, error)
	Delete(ctx context.Context, taskID int64) error
	Photos(ctx context.Context, taskID int64) ([]domain.Photo, error)
	UploadPhoto(ctx context.Context, req changeStatus.UploadPhotoRequest) (*domain.Photo, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

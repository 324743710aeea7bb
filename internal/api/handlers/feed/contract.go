package feed

import (
	"context"

	feedUC "github.com/m04kA/SMC-FieldService/internal/usecase/feed"
)

type FeedUseCase interface {
	Execute(ctx context.Context, req feedUC.Request) (*feedUC.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

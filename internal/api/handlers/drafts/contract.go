package drafts

import (
	"context"

	"github.com/m04kA/SMC-FieldService/internal/service/drafts/models"
)

type DraftService interface {
	Save(ctx context.Context) (*models.Record, error)
	Load(ctx context.Context, taskID int64) (*models.Record, error)
	Pending(ctx context.Context) (*models.Record, error)
	Reconcile(ctx context.Context) (*models.Record, error)
	Discard(ctx context.Context, deleteRemote bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

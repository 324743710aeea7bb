package session

import (
	"context"

	"github.com/m04kA/SMC-FieldService/internal/integrations/fieldapi"
	sessionService "github.com/m04kA/SMC-FieldService/internal/service/session"
)

type SessionManager interface {
	Login(ctx context.Context, username, password string) (*sessionService.Session, error)
	Register(ctx context.Context, req fieldapi.RegisterRequest) (*sessionService.Session, error)
	Logout(ctx context.Context) error
	Current() (*sessionService.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

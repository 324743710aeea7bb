package session

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldService/internal/integrations/fieldapi"
)

// KVStore локальное key-value хранилище
type KVStore interface {
	GetMany(ctx context.Context, keys ...string) (map[string]string, error)
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}

// AuthClient интерфейс клиента API для авторизации
type AuthClient interface {
	Login(ctx context.Context, username, password string) (*fieldapi.LoginResponse, error)
	Register(ctx context.Context, req fieldapi.RegisterRequest) (*fieldapi.LoginResponse, error)
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

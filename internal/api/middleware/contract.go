package middleware

import (
	"time"

	"github.com/m04kA/SMC-FieldService/internal/service/session"
)

// HTTPMetrics интерфейс сборщика метрик входящих запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

// SessionProvider источник текущей сессии
type SessionProvider interface {
	Current() (*session.Session, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package fieldapi

import "time"

// TokenSource источник токена текущей сессии
type TokenSource interface {
	Token() string
}

// Observer сборщик метрик исходящих запросов
type Observer interface {
	ObserveAPIRequest(method, endpoint string, status int, duration time.Duration)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

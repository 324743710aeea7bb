package fieldapi

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldService/pkg/outcome"
)

var (
	// ErrInternal возвращается при внутренних ошибках клиента (сборка запроса, сериализация)
	ErrInternal = errors.New("fieldapi client: internal error")

	// ErrNetwork возвращается при транспортной ошибке или таймауте
	ErrNetwork = errors.New("fieldapi client: network error")

	// ErrServer возвращается при ответе сервера с кодом не 2xx
	ErrServer = errors.New("fieldapi client: server error")

	// ErrInvalidResponse возвращается при некорректном теле ответа
	ErrInvalidResponse = errors.New("fieldapi client: invalid response")

	// ErrNotFound возвращается при 404
	ErrNotFound = errors.New("fieldapi client: not found")

	// ErrUnauthorized возвращается при 401/403, токен отсутствует или истек
	ErrUnauthorized = errors.New("fieldapi client: unauthorized")
)

// StatusError ответ сервера с неожиданным кодом
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status code %d: %s", e.Method, e.Path, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrServer
}

// Classify сводит ошибку клиента к типу результата для UI
func Classify(err error) outcome.Kind {
	switch {
	case err == nil:
		return outcome.KindSuccess
	case errors.Is(err, ErrNetwork):
		return outcome.KindNetworkError
	default:
		return outcome.KindServerError
	}
}

// ToResult превращает ошибку клиента в типизированный результат
func ToResult(err error) outcome.Result {
	switch Classify(err) {
	case outcome.KindSuccess:
		return outcome.Success()
	case outcome.KindNetworkError:
		return outcome.Network(err)
	default:
		return outcome.Server(err)
	}
}

package taskform

import "errors"

var (
	// ErrUnknownAction возвращается при неизвестном типе действия
	ErrUnknownAction = errors.New("taskform: unknown action type")

	// ErrUnknownField возвращается, когда SET_FIELD_VALUE ссылается на несуществующее поле
	ErrUnknownField = errors.New("taskform: unknown form field")

	// ErrInvalidPayload возвращается при некорректном payload действия
	ErrInvalidPayload = errors.New("taskform: invalid action payload")
)

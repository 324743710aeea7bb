package calendar

import "errors"

var (
	// ErrInvalidDate возвращается при некорректной дате в запросе
	ErrInvalidDate = errors.New("calendar: invalid date")

	// ErrInvalidRange возвращается, когда начало диапазона позже конца
	ErrInvalidRange = errors.New("calendar: invalid date range")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("calendar: internal error")
)

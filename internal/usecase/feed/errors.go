package feed

import "errors"

var (
	// ErrUnknownFilter возвращается при неизвестном типе фильтра
	ErrUnknownFilter = errors.New("feed: unknown filter type")

	// ErrInvalidFilter возвращается при некорректных параметрах фильтра
	ErrInvalidFilter = errors.New("feed: invalid filter")

	// ErrParticipantsLookup возвращается, если не удалось получить задачи участника
	ErrParticipantsLookup = errors.New("feed: failed to resolve participant tasks")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("feed: internal error")
)

package selection

import "errors"

var (
	// ErrUnknownOperation возвращается при неизвестной операции выбора
	ErrUnknownOperation = errors.New("selection: unknown operation")

	// ErrItemNotFound возвращается, когда позиции нет на складе
	ErrItemNotFound = errors.New("selection: inventory item not found")

	// ErrInternal возвращается при ошибке загрузки справочников
	ErrInternal = errors.New("selection: internal error")
)

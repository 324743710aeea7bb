package entitylist

import "errors"

var (
	// ErrNotFound возвращается, когда сущности нет в списке
	ErrNotFound = errors.New("entitylist: entity not found")

	// ErrInvalidPage возвращается при некорректных параметрах страницы
	ErrInvalidPage = errors.New("entitylist: invalid page parameters")

	// ErrInternal возвращается при ошибке удаленного источника
	ErrInternal = errors.New("entitylist: internal error")
)

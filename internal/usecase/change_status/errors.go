package change_status

import "errors"

var (
	// ErrTaskNotFound возвращается, когда задача не найдена
	ErrTaskNotFound = errors.New("change_status: task not found")

	// ErrIllegalTransition возвращается при недопустимой смене статуса
	ErrIllegalTransition = errors.New("change_status: illegal status transition")

	// ErrInsufficientStock возвращается, когда расход превышает остаток на складе
	ErrInsufficientStock = errors.New("change_status: inventory usage exceeds stock")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("change_status: invalid input data")

	// ErrPhotoTooLarge возвращается, когда фото больше допустимого размера
	ErrPhotoTooLarge = errors.New("change_status: photo is too large")

	// ErrPhotosNotAllowed возвращается, когда к задаче в текущем статусе нельзя прикладывать фото
	ErrPhotosNotAllowed = errors.New("change_status: photos are not allowed for task in this status")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("change_status: internal error")
)

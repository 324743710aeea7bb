package submit_task

import "errors"

var (
	// ErrSubmitInProgress возвращается при повторной отправке до завершения предыдущей
	ErrSubmitInProgress = errors.New("submit_task: submission already in progress")

	// ErrNotSubmittable возвращается, когда задачу в текущем статусе нельзя отправить
	ErrNotSubmittable = errors.New("submit_task: task cannot be submitted in its current status")
)

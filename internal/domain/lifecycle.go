package domain

import (
	"errors"
	"fmt"
)

// ErrIllegalTransition возвращается при недопустимой смене статуса задачи
var ErrIllegalTransition = errors.New("domain: illegal task status transition")

// transitions допустимые переходы статусов
// Переход в тот же нетерминальный статус означает редактирование без смены статуса
var transitions = map[TaskStatus][]TaskStatus{
	StatusAbsent:     {StatusDraft, StatusNew},
	StatusDraft:      {StatusDraft, StatusNew, StatusCancelled},
	StatusNew:        {StatusNew, StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusInProgress, StatusDone, StatusCancelled},
	StatusDone:       nil,
	StatusCancelled:  nil,
}

// CanTransition проверяет допустимость перехода from -> to
func CanTransition(from, to TaskStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition возвращает новый статус или ErrIllegalTransition
func Transition(from, to TaskStatus) (TaskStatus, error) {
	if !from.IsKnown() || !to.IsKnown() {
		return from, fmt.Errorf("%w: unknown status %q -> %q", ErrIllegalTransition, from, to)
	}
	if !CanTransition(from, to) {
		return from, fmt.Errorf("%w: %q -> %q", ErrIllegalTransition, displayStatus(from), displayStatus(to))
	}
	return to, nil
}

// NextStatuses возвращает статусы, в которые можно перейти из текущего
func NextStatuses(from TaskStatus) []TaskStatus {
	next := make([]TaskStatus, 0, len(transitions[from]))
	for _, s := range transitions[from] {
		if s != from {
			next = append(next, s)
		}
	}
	return next
}

func displayStatus(s TaskStatus) string {
	if s == StatusAbsent {
		return "отсутствует"
	}
	return string(s)
}

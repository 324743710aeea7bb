package domain

import (
	"github.com/m04kA/SMC-FieldService/pkg/types"
)

// TaskStatus статус задачи
type TaskStatus string

const (
	StatusAbsent     TaskStatus = ""           // отсутствует: задача еще не сохранялась
	StatusDraft      TaskStatus = "черновик"   // сохранена, но не заполнена полностью
	StatusNew        TaskStatus = "новая"      // отправлена в работу
	StatusInProgress TaskStatus = "в процессе" // исполнитель приступил к работе
	StatusDone       TaskStatus = "выполнено"  // терминальный
	StatusCancelled  TaskStatus = "отменено"   // терминальный
)

// Task задача (выезд) в системе
type Task struct {
	ID             int64            `json:"id"`
	Status         TaskStatus       `json:"status"`
	ServiceIDs     []int64          `json:"serviceIds"`
	PaymentMethod  string           `json:"paymentMethod"`
	Cost           float64          `json:"cost"`
	StartDate      string           `json:"startDate"` // yyyy-MM-dd, сервер может вернуть RFC3339
	EndDate        string           `json:"endDate"`
	StartTime      types.TimeString `json:"startTime"`
	EndTime        types.TimeString `json:"endTime"`
	ResponsibleID  int64            `json:"responsibleId"`
	ParticipantIDs []int64          `json:"participantIds"`

	// Клиент денормализован в задаче
	ClientID      int64   `json:"clientId"`
	ClientName    string  `json:"clientName"`
	ClientAddress Address `json:"clientAddress"`
	ClientPhone   string  `json:"clientPhone"`

	Description string           `json:"description"`
	Inventory   []InventoryUsage `json:"inventory"`
	Photos      []Photo          `json:"photos"`
}

// IsActive возвращает true для задач, которые еще надо выполнить
func (t *Task) IsActive() bool {
	return t.Status.IsActive()
}

// IsDraft возвращает true для черновика
func (t *Task) IsDraft() bool {
	return t.Status == StatusDraft
}

// CanBeCancelled возвращает true, если задачу можно отменить
func (t *Task) CanBeCancelled() bool {
	return CanTransition(t.Status, StatusCancelled)
}

// CanBeEdited возвращает true, если задачу можно редактировать через форму
func (t *Task) CanBeEdited() bool {
	return !t.Status.IsTerminal()
}

// IsTerminal возвращает true для конечных статусов
func (s TaskStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusCancelled
}

// IsActive возвращает true для статусов, отмечаемых в календаре
func (s TaskStatus) IsActive() bool {
	return s == StatusNew || s == StatusInProgress
}

// IsKnown проверяет, что статус входит в перечисление
func (s TaskStatus) IsKnown() bool {
	switch s {
	case StatusAbsent, StatusDraft, StatusNew, StatusInProgress, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// DayOf возвращает календарный день yyyy-MM-dd из даты или даты-времени
// Сравнение строковое, без перевода часовых поясов
func DayOf(date string) string {
	if len(date) >= len(DateFormat) {
		return date[:len(DateFormat)]
	}
	return date
}

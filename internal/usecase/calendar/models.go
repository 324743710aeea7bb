package calendar

import "github.com/m04kA/SMC-FieldService/internal/domain"

// Request запрос экрана календаря
type Request struct {
	Date     string // выбранный день YYYY-MM-DD
	From     string // начало видимого диапазона, пусто - без ограничения
	To       string // конец видимого диапазона, пусто - без ограничения
	OnlyMine bool   // только задачи текущего пользователя (/user_tasks)
}

// ClientGroup задачи одного клиента за день
// ClientID = 0 для задач без привязки к клиенту, такие группируются по имени
type ClientGroup struct {
	ClientID   int64
	ClientName string
	Tasks      []domain.Task
}

// Response модель ответа календаря
type Response struct {
	Date       string
	Groups     []ClientGroup
	MarkedDays []string
	Degraded   bool // отметки недоступны, показаны только задачи дня
}

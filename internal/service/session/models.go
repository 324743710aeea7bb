package session

import "time"

// Session текущая сессия пользователя
// Пароль в сессии не хранится
type Session struct {
	Token     string
	UserID    int64
	Username  string
	Position  string
	ExpiresAt *time.Time // nil, если токен не JWT или в нем нет exp
}

// Expired проверяет срок действия на момент now
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

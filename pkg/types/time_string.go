package types

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

const (
	timeLayout        = "15:04"
	timeLayoutSeconds = "15:04:05"
)

// TimeString время суток в формате HH:MM
// Пустая строка означает "время не задано"
type TimeString string

// NewTimeStringFromString разбирает HH:MM или HH:MM:SS и нормализует к HH:MM
func NewTimeStringFromString(s string) (TimeString, error) {
	if s == "" {
		return "", nil
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		t, err = time.Parse(timeLayoutSeconds, s)
		if err != nil {
			return "", ErrInvalidTimeString
		}
	}
	return TimeString(t.Format(timeLayout)), nil
}

func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes возвращает количество минут от начала суток
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, ErrInvalidTimeString
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// Before сравнивает два времени, оба должны быть заданы
func (t TimeString) Before(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

func (t *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidTimeString
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

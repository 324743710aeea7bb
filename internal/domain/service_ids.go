package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidServiceIDs возвращается, если строка с ID услуг содержит не числа
var ErrInvalidServiceIDs = errors.New("domain: invalid service id list")

const serviceIDsSeparator = ", "

// ParseServiceIDs разбирает строку вида "1, 2, 3"
// Пустая строка дает пустой список
func ParseServiceIDs(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int64{}, nil
	}

	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidServiceIDs, part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// FormatServiceIDs собирает строку "1, 2, 3" для API
func FormatServiceIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, serviceIDsSeparator)
}

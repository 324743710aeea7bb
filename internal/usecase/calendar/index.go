package calendar

import (
	"sort"

	"github.com/m04kA/SMC-FieldService/internal/domain"
)

// DayKey ключ дня для даты начала задачи
// Сравнение строковое, часовой пояс не пересчитывается
func DayKey(startDate string) string {
	return domain.DayOf(startDate)
}

// GroupByClient группирует задачи дня по ID клиента
// Имя клиента берется из справочника, при его отсутствии из задачи
func GroupByClient(tasks []domain.Task, day string, clients []domain.Client) []ClientGroup {
	names := make(map[int64]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.FullName
	}

	type groupKey struct {
		id   int64
		name string
	}

	groups := make(map[groupKey]*ClientGroup)
	order := make([]groupKey, 0)

	for _, t := range tasks {
		if DayKey(t.StartDate) != day {
			continue
		}

		key := groupKey{id: t.ClientID}
		name := t.ClientName
		if t.ClientID != 0 {
			if dirName, ok := names[t.ClientID]; ok && dirName != "" {
				name = dirName
			}
		} else {
			key.name = t.ClientName
		}

		g, ok := groups[key]
		if !ok {
			g = &ClientGroup{ClientID: t.ClientID, ClientName: name}
			groups[key] = g
			order = append(order, key)
		}
		g.Tasks = append(g.Tasks, t)
	}

	result := make([]ClientGroup, 0, len(order))
	for _, key := range order {
		g := groups[key]
		sort.SliceStable(g.Tasks, func(i, j int) bool {
			return g.Tasks[i].StartTime < g.Tasks[j].StartTime
		})
		result = append(result, *g)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].ClientName != result[j].ClientName {
			return result[i].ClientName < result[j].ClientName
		}
		return result[i].ClientID < result[j].ClientID
	})
	return result
}

// MarkedDays дни диапазона [from, to], в которых есть активная задача
// Пустая граница диапазона означает отсутствие ограничения
func MarkedDays(dates []domain.DayStatus, from, to string) []string {
	seen := make(map[string]struct{})
	for _, d := range dates {
		if !d.Status.IsActive() {
			continue
		}
		day := DayKey(d.Date)
		if day == "" {
			continue
		}
		if from != "" && day < from {
			continue
		}
		if to != "" && day > to {
			continue
		}
		seen[day] = struct{}{}
	}

	days := make([]string, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

package feed

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-FieldService/internal/domain"
)

const defaultParticipantConcurrency = 4

// Engine применяет фильтры ленты последовательно (логическое И)
type Engine struct {
	participants ParticipantSource
	concurrency  int
}

// NewEngine создает движок фильтров
// concurrency ограничивает число параллельных запросов задач участников
func NewEngine(participants ParticipantSource, concurrency int) *Engine {
	if concurrency <= 0 {
		concurrency = defaultParticipantConcurrency
	}
	return &Engine{
		participants: participants,
		concurrency:  concurrency,
	}
}

// Apply оставляет задачи, прошедшие все фильтры и строку поиска
// Пустой список фильтров и пустой поиск возвращают все задачи
func (e *Engine) Apply(ctx context.Context, tasks []domain.Task, filters []Filter, search string) ([]domain.Task, error) {
	result := append([]domain.Task(nil), tasks...)

	for _, f := range filters {
		pred, err := e.predicate(ctx, f)
		if err != nil {
			return nil, err
		}
		result = keep(result, pred)
	}

	if term := strings.ToLower(strings.TrimSpace(search)); term != "" {
		result = keep(result, func(t domain.Task) bool { return matchesSearch(t, term) })
	}

	return result, nil
}

func (e *Engine) predicate(ctx context.Context, f Filter) (func(domain.Task) bool, error) {
	switch f := f.(type) {
	case StatusFilter:
		set := toSet(f.Statuses)
		return func(t domain.Task) bool { return len(set) == 0 || set[t.Status] }, nil

	case ClientFilter:
		set := toSet(f.ClientIDs)
		return func(t domain.Task) bool { return len(set) == 0 || set[t.ClientID] }, nil

	case ResponsibleFilter:
		set := toSet(f.EmployeeIDs)
		return func(t domain.Task) bool { return len(set) == 0 || set[t.ResponsibleID] }, nil

	case PaymentMethodFilter:
		set := toSet(f.Methods)
		return func(t domain.Task) bool { return len(set) == 0 || set[t.PaymentMethod] }, nil

	case DateRangeFilter:
		return func(t domain.Task) bool {
			day := domain.DayOf(t.StartDate)
			if f.From != "" && day < f.From {
				return false
			}
			if f.To != "" && day > f.To {
				return false
			}
			return true
		}, nil

	case ParticipantsFilter:
		if len(f.EmployeeIDs) == 0 {
			return func(domain.Task) bool { return true }, nil
		}
		ids, err := e.participantTasks(ctx, f.EmployeeIDs)
		if err != nil {
			return nil, err
		}
		return func(t domain.Task) bool { return ids[t.ID] }, nil

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownFilter, f)
	}
}

// participantTasks пересечение множеств задач всех выбранных участников
func (e *Engine) participantTasks(ctx context.Context, employeeIDs []int64) (map[int64]bool, error) {
	sets := make([][]int64, len(employeeIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, id := range employeeIDs {
		i, id := i, id
		g.Go(func() error {
			taskIDs, err := e.participants.TaskParticipants(gctx, id)
			if err != nil {
				return fmt.Errorf("%w: employee id=%d: %w", ErrParticipantsLookup, id, err)
			}
			sets[i] = taskIDs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return intersect(sets), nil
}

func intersect(sets [][]int64) map[int64]bool {
	if len(sets) == 0 {
		return map[int64]bool{}
	}
	result := make(map[int64]bool, len(sets[0]))
	for _, id := range sets[0] {
		result[id] = true
	}
	for _, set := range sets[1:] {
		next := make(map[int64]bool, len(result))
		for _, id := range set {
			if result[id] {
				next[id] = true
			}
		}
		result = next
	}
	return result
}

func matchesSearch(t domain.Task, term string) bool {
	fields := []string{t.Description, t.ClientName, t.ClientAddress.Encode(), t.ClientPhone}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func keep(tasks []domain.Task, pred func(domain.Task) bool) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}

func toSet[T comparable](values []T) map[T]bool {
	set := make(map[T]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

package feed

import (
	"context"
	"fmt"
)

// UseCase use case ленты задач с фильтрами
type UseCase struct {
	tasks  TaskSource
	engine *Engine
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(tasks TaskSource, engine *Engine, logger Logger) *UseCase {
	return &UseCase{
		tasks:  tasks,
		engine: engine,
		logger: logger,
	}
}

// Execute загружает задачи и применяет фильтры
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Разбираем фильтры до похода в сеть
	filters, err := ParseFilters(req.Filters)
	if err != nil {
		uc.logger.Warn("Feed: invalid filters: %v", err)
		return nil, err
	}

	// 2. Загружаем ленту
	tasks, err := uc.tasks.ListTasks(ctx)
	if err != nil {
		uc.logger.Error("Feed: failed to list tasks: %v", err)
		return nil, fmt.Errorf("%w: list tasks: %w", ErrInternal, err)
	}

	// 3. Применяем фильтры и поиск
	filtered, err := uc.engine.Apply(ctx, tasks, filters, req.Search)
	if err != nil {
		uc.logger.Error("Feed: failed to apply filters: %v", err)
		return nil, err
	}

	uc.logger.Info("Feed: %d of %d tasks after %d filters", len(filtered), len(tasks), len(filters))
	return &Response{Tasks: filtered, Total: len(tasks)}, nil
}

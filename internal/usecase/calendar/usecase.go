package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldService/internal/domain"
	"github.com/m04kA/SMC-FieldService/internal/integrations/fieldapi"
)

// UseCase use case экрана календаря
type UseCase struct {
	api    FieldAPIClient
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(api FieldAPIClient, logger Logger) *UseCase {
	return &UseCase{
		api:    api,
		logger: logger,
	}
}

// Execute возвращает группы задач выбранного дня и отметки диапазона
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация дат
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("Calendar: invalid request date=%s from=%s to=%s: %v", req.Date, req.From, req.To, err)
		return nil, err
	}

	// 2. Задачи
	var (
		tasks []domain.Task
		err   error
	)
	if req.OnlyMine {
		tasks, err = uc.api.UserTasks(ctx)
	} else {
		tasks, err = uc.api.ListTasks(ctx)
	}
	if err != nil {
		uc.logger.Error("Calendar: failed to list tasks: %v", err)
		return nil, fmt.Errorf("%w: list tasks: %w", ErrInternal, err)
	}

	// 3. Справочник клиентов для имен групп
	clients, err := uc.api.ListClients(ctx)
	if err != nil {
		uc.logger.Error("Calendar: failed to list clients: %v", err)
		return nil, fmt.Errorf("%w: list clients: %w", ErrInternal, err)
	}

	// 4. Отметки дней, без них экран все равно рисуется
	resp := &Response{Date: req.Date}
	dates, err := uc.api.TaskDatesWithGracefulDegradation(ctx)
	switch {
	case errors.Is(err, fieldapi.ErrServiceDegraded):
		uc.logger.Warn("Calendar: task dates unavailable, rendering without marks")
		resp.Degraded = true
	case err != nil:
		uc.logger.Error("Calendar: failed to get task dates: %v", err)
		return nil, fmt.Errorf("%w: task dates: %w", ErrInternal, err)
	}

	resp.Groups = GroupByClient(tasks, req.Date, clients)
	resp.MarkedDays = MarkedDays(dates, req.From, req.To)
	return resp, nil
}

func validateRequest(req Request) error {
	for _, d := range []string{req.Date, req.From, req.To} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(domain.DateFormat, d); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDate, d)
		}
	}
	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}
	if req.From != "" && req.To != "" && req.From > req.To {
		return ErrInvalidRange
	}
	return nil
}

package submit_task

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/m04kA/SMC-FieldService/internal/domain"
	"github.com/m04kA/SMC-FieldService/internal/integrations/fieldapi"
	"github.com/m04kA/SMC-FieldService/internal/usecase/taskform"
	"github.com/m04kA/SMC-FieldService/pkg/outcome"
)

// UseCase use case отправки формы задачи
type UseCase struct {
	form      FormStore
	tasks     TaskClient
	inventory InventoryClient
	drafts    DraftCache
	metrics   Metrics
	logger    Logger
	inFlight  atomic.Bool
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	form FormStore,
	tasks TaskClient,
	inventory InventoryClient,
	drafts DraftCache,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		form:      form,
		tasks:     tasks,
		inventory: inventory,
		drafts:    drafts,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute проверяет и отправляет форму
// Ошибки проверки и сети возвращаются в Response.Result, форма при этом не меняется
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	// 1. Одна отправка за раз
	if !uc.inFlight.CompareAndSwap(false, true) {
		uc.logger.Warn("SubmitTask: rejected, previous submission is still in flight")
		return nil, ErrSubmitInProgress
	}
	defer uc.inFlight.Store(false)

	state := uc.form.State()
	uc.logger.Info("SubmitTask: task id=%d, status=%q", state.ID, state.Status)

	// 2. Проверка полей
	if fieldErrors := taskform.Validate(state); len(fieldErrors) > 0 {
		result := outcome.Validation(fieldErrors)
		uc.logger.Warn("SubmitTask: validation failed for fields %v", result.Fields())
		return uc.finish(result, nil), nil
	}

	// 3. Статус берется с сервера: задачу могли отменить или закрыть, пока форма была открыта
	current := domain.StatusAbsent
	if !state.IsNew() {
		server, err := uc.tasks.GetTask(ctx, state.ID)
		if err != nil {
			uc.logger.Error("SubmitTask: failed to get task id=%d: %v", state.ID, err)
			return uc.finish(fieldapi.ToResult(err), nil), nil
		}
		current = server.Status
	}

	// Новая задача и черновик становятся "новая", остальные сохраняют статус
	target := domain.StatusNew
	if current == domain.StatusNew || current == domain.StatusInProgress {
		target = current
	}
	if _, err := domain.Transition(current, target); err != nil {
		uc.logger.Warn("SubmitTask: task id=%d: %v", state.ID, err)
		return nil, fmt.Errorf("%w: %w", ErrNotSubmittable, err)
	}

	// 4. Инвентарь по актуальным остаткам склада
	if len(state.SelectedInventory) > 0 {
		items, err := uc.inventory.ListInventory(ctx)
		if err != nil {
			uc.logger.Error("SubmitTask: failed to list inventory: %v", err)
			return uc.finish(fieldapi.ToResult(err), nil), nil
		}
		if fieldErrors := taskform.ValidateStock(state.SelectedInventory, items); len(fieldErrors) > 0 {
			result := outcome.Validation(fieldErrors)
			uc.logger.Warn("SubmitTask: inventory exceeds stock for task id=%d", state.ID)
			return uc.finish(result, nil), nil
		}
	}

	task := state.ToTask()
	task.Status = target

	// 5. Отправка ровно один раз, POST/PUT не повторяются
	var (
		saved *domain.Task
		err   error
	)
	if state.IsNew() {
		saved, err = uc.tasks.CreateTask(ctx, task)
	} else {
		saved, err = uc.tasks.UpdateTask(ctx, task)
	}
	if err != nil {
		uc.logger.Error("SubmitTask: failed to save task id=%d: %v", state.ID, err)
		return uc.finish(fieldapi.ToResult(err), nil), nil
	}

	// 6. Форма сброшена, черновик больше не нужен
	uc.form.Dispatch(taskform.ResetForm{})
	if err := uc.drafts.ClearCache(ctx); err != nil {
		uc.logger.Warn("SubmitTask: task id=%d saved but draft cache not cleared: %v", saved.ID, err)
	}

	uc.logger.Info("SubmitTask: task id=%d saved with status %q", saved.ID, saved.Status)
	return uc.finish(outcome.Success(), saved), nil
}

func (uc *UseCase) finish(result outcome.Result, task *domain.Task) *Response {
	uc.metrics.ObserveSubmission(string(result.Kind))
	return &Response{Result: result, Task: task}
}

package change_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldService/internal/domain"
	"github.com/m04kA/SMC-FieldService/internal/integrations/fieldapi"
)

// UseCase use case смены статуса задачи и фотоотчета
type UseCase struct {
	tasks     TaskClient
	inventory InventoryClient
	drafts    OpenDrafts
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(tasks TaskClient, inventory InventoryClient, drafts OpenDrafts, logger Logger) *UseCase {
	return &UseCase{
		tasks:     tasks,
		inventory: inventory,
		drafts:    drafts,
		logger:    logger,
	}
}

// StartWork переводит задачу в работу
func (uc *UseCase) StartWork(ctx context.Context, taskID int64) (*domain.Task, error) {
	return uc.changeStatus(ctx, "StartWork", taskID, domain.StatusInProgress)
}

// Cancel отменяет задачу
func (uc *UseCase) Cancel(ctx context.Context, taskID int64) (*domain.Task, error) {
	task, err := uc.changeStatus(ctx, "Cancel", taskID, domain.StatusCancelled)
	if err != nil {
		return nil, err
	}
	uc.forget(ctx, "Cancel", taskID)
	return task, nil
}

// Complete списывает материалы и завершает задачу
func (uc *UseCase) Complete(ctx context.Context, req CompleteRequest) (*domain.Task, error) {
	uc.logger.Info("Complete: task id=%d, inventory lines=%d", req.TaskID, len(req.Inventory))

	// 1. Загружаем задачу и проверяем переход
	task, err := uc.loadForTransition(ctx, "Complete", req.TaskID, domain.StatusDone)
	if err != nil {
		return nil, err
	}

	// 2. Проверяем расход по актуальным остаткам
	if len(req.Inventory) > 0 {
		items, err := uc.inventory.ListInventory(ctx)
		if err != nil {
			uc.logger.Error("Complete: failed to list inventory: %v", err)
			return nil, fmt.Errorf("%w: list inventory: %w", ErrInternal, err)
		}
		if err := validateConsumption(req.Inventory, items); err != nil {
			uc.logger.Warn("Complete: task id=%d: %v", req.TaskID, err)
			return nil, err
		}

		// 3. Списываем материалы
		if err := uc.tasks.ConsumeInventory(ctx, req.TaskID, req.Inventory); err != nil {
			uc.logger.Error("Complete: failed to consume inventory for task id=%d: %v", req.TaskID, err)
			return nil, fmt.Errorf("%w: consume inventory: %w", ErrInternal, err)
		}
	}

	// 4. Завершаем
	if err := uc.tasks.CompleteTask(ctx, req.TaskID); err != nil {
		uc.logger.Error("Complete: failed to complete task id=%d: %v", req.TaskID, err)
		return nil, fmt.Errorf("%w: complete task: %w", ErrInternal, err)
	}

	task.Status = domain.StatusDone
	if len(req.Inventory) > 0 {
		task.Inventory = append([]domain.InventoryUsage{}, req.Inventory...)
	}
	uc.forget(ctx, "Complete", req.TaskID)
	uc.logger.Info("Complete: task id=%d completed", req.TaskID)
	return task, nil
}

// Delete удаляет задачу
func (uc *UseCase) Delete(ctx context.Context, taskID int64) error {
	uc.logger.Info("Delete: task id=%d", taskID)

	if err := uc.tasks.DeleteTask(ctx, taskID); err != nil {
		if errors.Is(err, fieldapi.ErrNotFound) {
			uc.logger.Warn("Delete: task id=%d not found", taskID)
			return ErrTaskNotFound
		}
		uc.logger.Error("Delete: failed to delete task id=%d: %v", taskID, err)
		return fmt.Errorf("%w: delete task: %w", ErrInternal, err)
	}
	uc.forget(ctx, "Delete", taskID)
	return nil
}

// Photos возвращает фото отчета по задаче
func (uc *UseCase) Photos(ctx context.Context, taskID int64) ([]domain.Photo, error) {
	photos, err := uc.tasks.ListTaskPhotos(ctx, taskID)
	if err != nil {
		if errors.Is(err, fieldapi.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		uc.logger.Error("Photos: failed to list photos for task id=%d: %v", taskID, err)
		return nil, fmt.Errorf("%w: list photos: %w", ErrInternal, err)
	}
	return photos, nil
}

// UploadPhoto прикладывает фото к задаче в работе или выполненной
func (uc *UseCase) UploadPhoto(ctx context.Context, req UploadPhotoRequest) (*domain.Photo, error) {
	uc.logger.Info("UploadPhoto: task id=%d, file=%s, size=%d", req.TaskID, req.Filename, req.Size)

	// 1. Валидация файла
	if err := validatePhoto(req); err != nil {
		uc.logger.Warn("UploadPhoto: validation failed: %v", err)
		return nil, err
	}

	// 2. Фото прикладываются только к задаче в работе или выполненной
	task, err := uc.load(ctx, "UploadPhoto", req.TaskID)
	if err != nil {
		return nil, err
	}
	if task.Status != domain.StatusInProgress && task.Status != domain.StatusDone {
		uc.logger.Warn("UploadPhoto: task id=%d has status %q", req.TaskID, task.Status)
		return nil, ErrPhotosNotAllowed
	}

	// 3. Загрузка
	photo, err := uc.tasks.UploadTaskPhoto(ctx, req.TaskID, req.Filename, req.Content)
	if err != nil {
		uc.logger.Error("UploadPhoto: failed to upload photo for task id=%d: %v", req.TaskID, err)
		return nil, fmt.Errorf("%w: upload photo: %w", ErrInternal, err)
	}
	return photo, nil
}

func (uc *UseCase) changeStatus(ctx context.Context, op string, taskID int64, to domain.TaskStatus) (*domain.Task, error) {
	uc.logger.Info("%s: task id=%d", op, taskID)

	task, err := uc.loadForTransition(ctx, op, taskID, to)
	if err != nil {
		return nil, err
	}

	task.Status = to
	updated, err := uc.tasks.UpdateTask(ctx, *task)
	if err != nil {
		uc.logger.Error("%s: failed to update task id=%d: %v", op, taskID, err)
		return nil, fmt.Errorf("%w: update task: %w", ErrInternal, err)
	}

	uc.logger.Info("%s: task id=%d is now %q", op, taskID, to)
	return updated, nil
}

// forget сбрасывает форму с этой задачей; операция над задачей уже выполнена, поэтому ошибка только логируется
func (uc *UseCase) forget(ctx context.Context, op string, taskID int64) {
	if err := uc.drafts.Forget(ctx, taskID); err != nil {
		uc.logger.Warn("%s: task id=%d done but form not reset: %v", op, taskID, err)
	}
}

func (uc *UseCase) loadForTransition(ctx context.Context, op string, taskID int64, to domain.TaskStatus) (*domain.Task, error) {
	task, err := uc.load(ctx, op, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := domain.Transition(task.Status, to); err != nil {
		uc.logger.Warn("%s: task id=%d: %v", op, taskID, err)
		return nil, fmt.Errorf("%w: %w", ErrIllegalTransition, err)
	}
	return task, nil
}

func (uc *UseCase) load(ctx context.Context, op string, taskID int64) (*domain.Task, error) {
	if taskID <= 0 {
		return nil, fmt.Errorf("%w: task id is required", ErrInvalidInput)
	}
	task, err := uc.tasks.GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, fieldapi.ErrNotFound) {
			uc.logger.Warn("%s: task id=%d not found", op, taskID)
			return nil, ErrTaskNotFound
		}
		uc.logger.Error("%s: failed to get task id=%d: %v", op, taskID, err)
		return nil, fmt.Errorf("%w: get task: %w", ErrInternal, err)
	}
	return task, nil
}

package selection

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-FieldService/internal/domain"
	"github.com/m04kA/SMC-FieldService/internal/usecase/taskform"
)

// UseCase применяет правила выбора склада и услуг к редактируемой форме
type UseCase struct {
	store   FormStore
	catalog CatalogClient
	logger  Logger

	// чтение формы и запись результата должны идти одной операцией
	mu sync.Mutex
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(store FormStore, catalog CatalogClient, logger Logger) *UseCase {
	return &UseCase{
		store:   store,
		catalog: catalog,
		logger:  logger,
	}
}

// Execute выполняет операцию и возвращает обновленную форму
func (uc *UseCase) Execute(ctx context.Context, req Request) (taskform.State, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if req.Op == OpToggleService {
		return uc.toggleService(ctx, req.ItemID)
	}

	// 1. Актуальные остатки склада
	items, err := uc.catalog.ListInventory(ctx)
	if err != nil {
		uc.logger.Error("Selection: failed to list inventory: %v", err)
		return taskform.State{}, fmt.Errorf("%w: list inventory: %v", ErrInternal, err)
	}

	// 2. Поджимаем уже выбранные позиции под свежие остатки
	lines := ClampToStock(uc.store.State().SelectedInventory, items)

	// 3. Применяем операцию
	switch req.Op {
	case OpSelect:
		item, ok := findItem(items, req.ItemID)
		if !ok {
			uc.logger.Warn("Selection: inventory item id=%d not found", req.ItemID)
			return taskform.State{}, ErrItemNotFound
		}
		lines = Select(lines, item)
	case OpIncrement:
		lines = Increment(lines, req.ItemID)
	case OpDecrement:
		lines = Decrement(lines, req.ItemID)
	case OpSetQuantity:
		lines = SetQuantity(lines, req.ItemID, req.Quantity)
	case OpRemove:
		lines = Remove(lines, req.ItemID)
	default:
		return taskform.State{}, fmt.Errorf("%w: %q", ErrUnknownOperation, req.Op)
	}

	// 4. Записываем выбор в форму
	return uc.store.Dispatch(taskform.UpdateForm{Patch: taskform.Patch{SelectedInventory: &lines}}), nil
}

func (uc *UseCase) toggleService(ctx context.Context, serviceID int64) (taskform.State, error) {
	services, err := uc.catalog.ListServices(ctx)
	if err != nil {
		uc.logger.Error("Selection: failed to list services: %v", err)
		return taskform.State{}, fmt.Errorf("%w: list services: %v", ErrInternal, err)
	}

	selected := ToggleService(uc.store.State().SelectedService, serviceID)
	cost := TotalCost(services, selected)

	return uc.store.Dispatch(taskform.UpdateForm{Patch: taskform.Patch{
		SelectedService: &selected,
		Cost:            &cost,
	}}), nil
}

func findItem(items []domain.InventoryItem, id int64) (domain.InventoryItem, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return domain.InventoryItem{}, false
}

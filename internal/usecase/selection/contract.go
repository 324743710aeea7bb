package selection

import (
	"context"

	"github.com/m04kA/SMC-FieldService/internal/domain"
	"github.com/m04kA/SMC-FieldService/internal/usecase/taskform"
)

// FormStore хранилище редактируемой формы
type FormStore interface {
	State() taskform.State
	Dispatch(action taskform.Action) taskform.State
}

// CatalogClient интерфейс клиента API для справочников склада и услуг
type CatalogClient interface {
	ListInventory(ctx context.Context) ([]domain.InventoryItem, error)
	ListServices(ctx context.Context) ([]domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

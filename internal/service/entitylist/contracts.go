package entitylist

import (
	"context"

	"github.com/m04kA/SMC-FieldService/internal/domain"
)

// Source удаленный источник сущностей списка
type Source[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, item T) (T, error)
	Delete(ctx context.Context, id int64) error
}

// ClientAPI методы API для клиентской базы
type ClientAPI interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	CreateClient(ctx context.Context, client domain.Client) (domain.Client, error)
	UpdateClient(ctx context.Context, client domain.Client) (domain.Client, error)
	DeleteClient(ctx context.Context, id int64) error
}

// EmployeeAPI методы API для сотрудников
type EmployeeAPI interface {
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	CreateEmployee(ctx context.Context, employee domain.Employee, password string) (domain.Employee, error)
	UpdateEmployee(ctx context.Context, employee domain.Employee, password string) (domain.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
}

// InventoryAPI методы API для склада
type InventoryAPI interface {
	ListInventory(ctx context.Context) ([]domain.InventoryItem, error)
	CreateInventoryItem(ctx context.Context, item domain.InventoryItem) (domain.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, item domain.InventoryItem) (domain.InventoryItem, error)
	DeleteInventoryItem(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

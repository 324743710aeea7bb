package entitylist

import (
	"context"
	"strings"

	"github.com/m04kA/SMC-FieldService/internal/domain"
)

type clientSource struct{ api ClientAPI }

func (s clientSource) List(ctx context.Context) ([]domain.Client, error) { return s.api.ListClients(ctx) }
func (s clientSource) Create(ctx context.Context, c domain.Client) (domain.Client, error) {
	return s.api.CreateClient(ctx, c)
}
func (s clientSource) Update(ctx context.Context, c domain.Client) (domain.Client, error) {
	return s.api.UpdateClient(ctx, c)
}
func (s clientSource) Delete(ctx context.Context, id int64) error { return s.api.DeleteClient(ctx, id) }

type employeeSource struct{ api EmployeeAPI }

func (s employeeSource) List(ctx context.Context) ([]domain.Employee, error) {
	return s.api.ListEmployees(ctx)
}

// Create без пароля: учетные данные сотрудник получает через регистрацию
func (s employeeSource) Create(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	return s.api.CreateEmployee(ctx, e, "")
}

// Update без пароля: пустой пароль сервер не меняет
func (s employeeSource) Update(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	return s.api.UpdateEmployee(ctx, e, "")
}
func (s employeeSource) Delete(ctx context.Context, id int64) error {
	return s.api.DeleteEmployee(ctx, id)
}

type inventorySource struct{ api InventoryAPI }

func (s inventorySource) List(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.api.ListInventory(ctx)
}
func (s inventorySource) Create(ctx context.Context, i domain.InventoryItem) (domain.InventoryItem, error) {
	return s.api.CreateInventoryItem(ctx, i)
}
func (s inventorySource) Update(ctx context.Context, i domain.InventoryItem) (domain.InventoryItem, error) {
	return s.api.UpdateInventoryItem(ctx, i)
}
func (s inventorySource) Delete(ctx context.Context, id int64) error {
	return s.api.DeleteInventoryItem(ctx, id)
}

// NewClients список клиентской базы, поиск по ФИО, телефону и адресу
func NewClients(api ClientAPI, logger Logger) *List[domain.Client] {
	return New[domain.Client](clientSource{api: api}, Schema[domain.Client]{
		Name: "Clients",
		Key:  func(c domain.Client) int64 { return c.ID },
		SearchText: func(c domain.Client) string {
			return strings.Join([]string{c.FullName, c.Phone, c.Address.Encode()}, " ")
		},
	}, logger)
}

// NewEmployees список сотрудников, поиск по ФИО, должности и логину
func NewEmployees(api EmployeeAPI, logger Logger) *List[domain.Employee] {
	return New[domain.Employee](employeeSource{api: api}, Schema[domain.Employee]{
		Name: "Employees",
		Key:  func(e domain.Employee) int64 { return e.ID },
		SearchText: func(e domain.Employee) string {
			return strings.Join([]string{e.FullName, e.Position, e.Username, e.Phone, e.Email}, " ")
		},
	}, logger)
}

// NewInventory список склада, поиск по названию
func NewInventory(api InventoryAPI, logger Logger) *List[domain.InventoryItem] {
	return New[domain.InventoryItem](inventorySource{api: api}, Schema[domain.InventoryItem]{
		Name:       "Inventory",
		Key:        func(i domain.InventoryItem) int64 { return i.ID },
		SearchText: func(i domain.InventoryItem) string { return i.Name },
	}, logger)
}

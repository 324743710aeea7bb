package fieldapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-FieldService/internal/domain"
)

// ListClients получает базу клиентов
func (c *Client) ListClients(ctx context.Context) ([]domain.Client, error) {
	var clients []ClientModel
	if err := c.doJSON(ctx, http.MethodGet, "/clients", "/clients", nil, &clients); err != nil {
		return nil, err
	}
	result := make([]domain.Client, len(clients))
	for i, cl := range clients {
		result[i] = cl.ToDomain()
	}
	return result, nil
}

// CreateClient создает клиента
func (c *Client) CreateClient(ctx context.Context, client domain.Client) (domain.Client, error) {
	var created ClientModel
	body := FromDomainClient(client)
	body.ID = 0
	if err := c.doJSON(ctx, http.MethodPost, "/clients", "/clients", body, &created); err != nil {
		return domain.Client{}, err
	}
	return created.ToDomain(), nil
}

// UpdateClient обновляет клиента
func (c *Client) UpdateClient(ctx context.Context, client domain.Client) (domain.Client, error) {
	path := fmt.Sprintf("/clients/%d", client.ID)
	if err := c.doJSON(ctx, http.MethodPut, "/clients/{id}", path, FromDomainClient(client), nil); err != nil {
		return domain.Client{}, err
	}
	return client, nil
}

// DeleteClient удаляет клиента
func (c *Client) DeleteClient(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/clients/%d", id)
	return c.doJSON(ctx, http.MethodDelete, "/clients/{id}", path, nil, nil)
}

// ListEmployees получает список сотрудников
func (c *Client) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	var employees []Employee
	if err := c.doJSON(ctx, http.MethodGet, "/employees", "/employees", nil, &employees); err != nil {
		return nil, err
	}
	return employeesToDomain(employees), nil
}

// CreateEmployee создает сотрудника с учетными данными
func (c *Client) CreateEmployee(ctx context.Context, employee domain.Employee, password string) (domain.Employee, error) {
	var created Employee
	body := FromDomainEmployee(employee, password)
	body.ID = 0
	if err := c.doJSON(ctx, http.MethodPost, "/employees", "/employees", body, &created); err != nil {
		return domain.Employee{}, err
	}
	return created.ToDomain(), nil
}

// UpdateEmployee обновляет сотрудника; пустой password не меняет пароль
func (c *Client) UpdateEmployee(ctx context.Context, employee domain.Employee, password string) (domain.Employee, error) {
	path := fmt.Sprintf("/employees/%d", employee.ID)
	body := FromDomainEmployee(employee, password)
	if err := c.doJSON(ctx, http.MethodPut, "/employees/{id}", path, body, nil); err != nil {
		return domain.Employee{}, err
	}
	return employee, nil
}

// DeleteEmployee удаляет сотрудника
func (c *Client) DeleteEmployee(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/employees/%d", id)
	return c.doJSON(ctx, http.MethodDelete, "/employees/{id}", path, nil, nil)
}

// ListInventory получает складские позиции
func (c *Client) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	var items []InventoryItem
	if err := c.doJSON(ctx, http.MethodGet, "/inventory", "/inventory", nil, &items); err != nil {
		return nil, err
	}
	result := make([]domain.InventoryItem, len(items))
	for i, it := range items {
		result[i] = it.ToDomain()
	}
	return result, nil
}

// CreateInventoryItem создает складскую позицию
func (c *Client) CreateInventoryItem(ctx context.Context, item domain.InventoryItem) (domain.InventoryItem, error) {
	var created InventoryItem
	body := FromDomainInventoryItem(item)
	body.ID = 0
	if err := c.doJSON(ctx, http.MethodPost, "/inventory", "/inventory", body, &created); err != nil {
		return domain.InventoryItem{}, err
	}
	return created.ToDomain(), nil
}

// UpdateInventoryItem обновляет складскую позицию
func (c *Client) UpdateInventoryItem(ctx context.Context, item domain.InventoryItem) (domain.InventoryItem, error) {
	path := fmt.Sprintf("/inventory/%d", item.ID)
	if err := c.doJSON(ctx, http.MethodPut, "/inventory/{id}", path, FromDomainInventoryItem(item), nil); err != nil {
		return domain.InventoryItem{}, err
	}
	return item, nil
}

// DeleteInventoryItem удаляет складскую позицию
func (c *Client) DeleteInventoryItem(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/inventory/%d", id)
	return c.doJSON(ctx, http.MethodDelete, "/inventory/{id}", path, nil, nil)
}

func employeesToDomain(employees []Employee) []domain.Employee {
	result := make([]domain.Employee, len(employees))
	for i, e := range employees {
		result[i] = e.ToDomain()
	}
	return result
}

package fieldapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-FieldService/internal/domain"
)

// ListServices получает справочник услуг
func (c *Client) ListServices(ctx context.Context) ([]domain.Service, error) {
	var services []Service
	if err := c.doJSON(ctx, http.MethodGet, "/services", "/services", nil, &services); err != nil {
		return nil, err
	}
	result := make([]domain.Service, len(services))
	for i, s := range services {
		result[i] = domain.Service{ID: s.ID, Name: s.Name, Cost: s.Cost}
	}
	return result, nil
}

// ListPaymentMethods получает способы оплаты
func (c *Client) ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	var methods []PaymentMethod
	if err := c.doJSON(ctx, http.MethodGet, "/paymentmethods", "/paymentmethods", nil, &methods); err != nil {
		return nil, err
	}
	result := make([]domain.PaymentMethod, len(methods))
	for i, m := range methods {
		result[i] = domain.PaymentMethod{ID: m.ID, Name: m.Name}
	}
	return result, nil
}

// ListResponsibles получает сотрудников, которых можно назначить ответственными
func (c *Client) ListResponsibles(ctx context.Context) ([]domain.Employee, error) {
	var employees []Employee
	if err := c.doJSON(ctx, http.MethodGet, "/responsibles", "/responsibles", nil, &employees); err != nil {
		return nil, err
	}
	return employeesToDomain(employees), nil
}

// TaskDates получает даты задач со статусами для отметок календаря
func (c *Client) TaskDates(ctx context.Context) ([]domain.DayStatus, error) {
	var dates []TaskDate
	if err := c.doJSON(ctx, http.MethodGet, "/task-dates", "/task-dates", nil, &dates); err != nil {
		return nil, err
	}
	result := make([]domain.DayStatus, len(dates))
	for i, d := range dates {
		result[i] = domain.DayStatus{Date: d.Date, Status: domain.TaskStatus(d.Status)}
	}
	return result, nil
}

// UserTasks получает задачи текущего пользователя
func (c *Client) UserTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []Task
	if err := c.doJSON(ctx, http.MethodGet, "/user_tasks", "/user_tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasksToDomain(tasks)
}

// TaskParticipants получает ID задач, в которых сотрудник участник
func (c *Client) TaskParticipants(ctx context.Context, employeeID int64) ([]int64, error) {
	var resp participantTasks
	path := fmt.Sprintf("/task-participants/%d", employeeID)
	if err := c.doJSON(ctx, http.MethodGet, "/task-participants/{id}", path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.TaskIDs, nil
}

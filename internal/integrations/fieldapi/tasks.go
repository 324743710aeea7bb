package fieldapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/m04kA/SMC-FieldService/internal/domain"
)

// ListTasks получает все задачи
func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []Task
	if err := c.doJSON(ctx, http.MethodGet, "/tasks", "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasksToDomain(tasks)
}

// GetTask получает задачу по ID (в т.ч. серверный черновик)
func (c *Client) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	var task Task
	path := fmt.Sprintf("/tasks/%d", id)
	if err := c.doJSON(ctx, http.MethodGet, "/tasks/{id}", path, nil, &task); err != nil {
		return nil, err
	}
	result, err := task.ToDomain()
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateTask создает задачу и возвращает ее с присвоенным ID
func (c *Client) CreateTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	body := FromDomainTask(task)
	body.ID = 0

	var created Task
	if err := c.doJSON(ctx, http.MethodPost, "/tasks", "/tasks", body, &created); err != nil {
		return nil, err
	}
	result, err := created.ToDomain()
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateTask обновляет задачу целиком (в т.ч. смена статуса)
func (c *Client) UpdateTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	if task.ID <= 0 {
		return nil, fmt.Errorf("%w: UpdateTask - task id is required", ErrInternal)
	}

	var updated Task
	path := fmt.Sprintf("/tasks/%d", task.ID)
	if err := c.doJSON(ctx, http.MethodPut, "/tasks/{id}", path, FromDomainTask(task), &updated); err != nil {
		return nil, err
	}
	// Некоторые версии API отвечают пустым телом
	if updated.ID == 0 {
		return &task, nil
	}
	result, err := updated.ToDomain()
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteTask удаляет задачу
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/tasks/%d", id)
	return c.doJSON(ctx, http.MethodDelete, "/tasks/{id}", path, nil, nil)
}

// CompleteTask отмечает задачу выполненной
func (c *Client) CompleteTask(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/tasks/%d/complete", id)
	return c.doJSON(ctx, http.MethodPut, "/tasks/{id}/complete", path, nil, nil)
}

// ConsumeInventory фиксирует расход материалов по задаче
func (c *Client) ConsumeInventory(ctx context.Context, id int64, usage []domain.InventoryUsage) error {
	body := inventoryConsumption{Inventory: make([]InventoryUsage, len(usage))}
	for i, u := range usage {
		body.Inventory[i] = InventoryUsage{ItemID: u.ItemID, Quantity: u.Quantity}
	}
	path := fmt.Sprintf("/tasks/%d/inventory", id)
	return c.doJSON(ctx, http.MethodPut, "/tasks/{id}/inventory", path, body, nil)
}

// ListTaskPhotos получает фото отчета по задаче
func (c *Client) ListTaskPhotos(ctx context.Context, id int64) ([]domain.Photo, error) {
	var photos []Photo
	path := fmt.Sprintf("/tasks/%d/photos", id)
	if err := c.doJSON(ctx, http.MethodGet, "/tasks/{id}/photos", path, nil, &photos); err != nil {
		return nil, err
	}
	result := make([]domain.Photo, len(photos))
	for i, p := range photos {
		result[i] = p.ToDomain()
	}
	return result, nil
}

// UploadTaskPhoto загружает фото отчета (multipart/form-data, поле "photo")
func (c *Client) UploadTaskPhoto(ctx context.Context, id int64, filename string, content io.Reader) (*domain.Photo, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("photo", filename)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create form file: %v", ErrInternal, err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("%w: failed to read photo: %v", ErrInternal, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%w: failed to finalize multipart body: %v", ErrInternal, err)
	}

	var photo Photo
	path := fmt.Sprintf("/tasks/%d/photos", id)
	err = c.roundTrip(ctx, http.MethodPost, "/tasks/{id}/photos", path,
		buf.Bytes(), writer.FormDataContentType(), c.newKey(), &photo)
	if err != nil {
		return nil, err
	}

	result := photo.ToDomain()
	return &result, nil
}

func tasksToDomain(tasks []Task) ([]domain.Task, error) {
	result := make([]domain.Task, 0, len(tasks))
	for i := range tasks {
		t, err := tasks[i].ToDomain()
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, nil
}

package fieldapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldService/internal/domain"
)

// ErrServiceDegraded возвращается при применении graceful degradation
// Данные не получены, но экран может отрисоваться без них
var ErrServiceDegraded = errors.New("fieldapi unavailable: graceful degradation applied")

// TaskDatesWithGracefulDegradation получает отметки календаря с graceful degradation
// При недоступности API возвращает пустой список и ErrServiceDegraded,
// календарь рисуется без точек, задачи дня по-прежнему показываются
func (c *Client) TaskDatesWithGracefulDegradation(ctx context.Context) ([]domain.DayStatus, error) {
	dates, err := c.TaskDates(ctx)
	if err != nil {
		// Ошибку авторизации пробрасываем как есть: без токена не отрисуется и остальное
		if errors.Is(err, ErrUnauthorized) {
			return nil, err
		}
		c.log.Error("fieldapi: /task-dates unavailable, applying graceful degradation: %v", err)
		return []domain.DayStatus{}, fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}
	return dates, nil
}

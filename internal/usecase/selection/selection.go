package selection

import (
	"strings"

	"github.com/m04kA/SMC-FieldService/internal/domain"
)

// Select добавляет позицию склада в выбор задачи
// Новая позиция получает количество 1 (0, если на складе пусто),
// повторный выбор увеличивает количество на 1, но не выше остатка
func Select(lines []domain.InventoryUsage, item domain.InventoryItem) []domain.InventoryUsage {
	out := clone(lines)
	if i := indexOf(out, item.ID); i >= 0 {
		out[i].Stock = item.Quantity
		out[i].Quantity = clamp(out[i].Quantity+1, out[i].Stock)
		return out
	}

	return append(out, domain.InventoryUsage{
		ItemID:   item.ID,
		Name:     item.Name,
		Unit:     item.Unit,
		Quantity: clamp(1, item.Quantity),
		Stock:    item.Quantity,
	})
}

// Increment увеличивает количество на 1; на границе остатка ничего не делает
func Increment(lines []domain.InventoryUsage, itemID int64) []domain.InventoryUsage {
	out := clone(lines)
	if i := indexOf(out, itemID); i >= 0 && out[i].Quantity+1 <= out[i].Stock {
		out[i].Quantity++
	}
	return out
}

// Decrement уменьшает количество на 1, не опускаясь ниже 0
// Позиция остается в списке даже с нулевым количеством
func Decrement(lines []domain.InventoryUsage, itemID int64) []domain.InventoryUsage {
	out := clone(lines)
	if i := indexOf(out, itemID); i >= 0 {
		out[i].Quantity = clamp(out[i].Quantity-1, out[i].Stock)
	}
	return out
}

// SetQuantity задает количество, приводя его к диапазону [0, остаток]
func SetQuantity(lines []domain.InventoryUsage, itemID int64, quantity float64) []domain.InventoryUsage {
	out := clone(lines)
	if i := indexOf(out, itemID); i >= 0 {
		out[i].Quantity = clamp(quantity, out[i].Stock)
	}
	return out
}

// Remove удаляет позицию из выбора целиком
func Remove(lines []domain.InventoryUsage, itemID int64) []domain.InventoryUsage {
	out := make([]domain.InventoryUsage, 0, len(lines))
	for _, line := range lines {
		if line.ItemID != itemID {
			out = append(out, line)
		}
	}
	return out
}

// ClampToStock обновляет остатки по свежим данным склада и поджимает количества
// Позиции, которых больше нет на складе, получают остаток 0
func ClampToStock(lines []domain.InventoryUsage, items []domain.InventoryItem) []domain.InventoryUsage {
	stock := make(map[int64]float64, len(items))
	for _, item := range items {
		stock[item.ID] = item.Quantity
	}

	out := clone(lines)
	for i := range out {
		out[i].Stock = stock[out[i].ItemID]
		out[i].Quantity = clamp(out[i].Quantity, out[i].Stock)
	}
	return out
}

// ToggleService добавляет услугу в выбор или убирает ее, если она уже выбрана
func ToggleService(selected []int64, serviceID int64) []int64 {
	out := make([]int64, 0, len(selected)+1)
	found := false
	for _, id := range selected {
		if id == serviceID {
			found = true
			continue
		}
		out = append(out, id)
	}
	if !found {
		out = append(out, serviceID)
	}
	return out
}

// TotalCost сумма стоимости выбранных услуг
// Значение справочное, стоимость задачи определяет сервер
func TotalCost(services []domain.Service, selected []int64) float64 {
	costs := make(map[int64]float64, len(services))
	for _, s := range services {
		costs[s.ID] = s.Cost
	}

	var total float64
	for _, id := range selected {
		total += costs[id]
	}
	return total
}

// FilterOptions оставляет варианты, подпись которых содержит строку поиска (без учета регистра)
func FilterOptions[T any](options []T, search string, label func(T) string) []T {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return append([]T(nil), options...)
	}

	out := make([]T, 0, len(options))
	for _, o := range options {
		if strings.Contains(strings.ToLower(label(o)), search) {
			out = append(out, o)
		}
	}
	return out
}

func indexOf(lines []domain.InventoryUsage, itemID int64) int {
	for i, line := range lines {
		if line.ItemID == itemID {
			return i
		}
	}
	return -1
}

func clamp(quantity, stock float64) float64 {
	if stock < 0 {
		stock = 0
	}
	if quantity < 0 {
		return 0
	}
	if quantity > stock {
		return stock
	}
	return quantity
}

func clone(lines []domain.InventoryUsage) []domain.InventoryUsage {
	out := make([]domain.InventoryUsage, len(lines))
	copy(out, lines)
	return out
}
